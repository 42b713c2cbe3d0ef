// Package audit records who changed dispute state, and when.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventCategory routes events to retention tiers.
type EventCategory string

const (
	// CategoryCompliance covers state transitions. Emission is fail-closed:
	// if the event cannot be persisted the transition must not commit.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers rejected signers and similar signals. Emission
	// is best-effort.
	CategorySecurity EventCategory = "security"
)

// Event is emitted from the service layer. Subject is the account that
// changed; Actor is the signer who changed it.
type Event struct {
	ID          uuid.UUID
	Category    EventCategory
	Timestamp   time.Time
	Action      string
	Subject     string
	Actor       string
	Ncn         string
	Slot        uint64
	Reason      string
	RequestID   string
	ClientIP    string
	ClientAgent string
}

type AuditEvent string

const (
	EventConfigInitialized       AuditEvent = "config_initialized"
	EventPolicyInitialized       AuditEvent = "policy_initialized"
	EventResolverInitialized     AuditEvent = "resolver_initialized"
	EventSlasherInitialized      AuditEvent = "slasher_initialized"
	EventSlasherAdminSet         AuditEvent = "slasher_admin_set"
	EventSlasherDelegateAdminSet AuditEvent = "slasher_delegate_admin_set"
	EventSlashProposed           AuditEvent = "slash_proposed"
	EventResolverAssigned        AuditEvent = "resolver_assigned"
	EventSlashVetoed             AuditEvent = "slash_vetoed"
	EventSlashExecuted           AuditEvent = "slash_executed"
	EventSlashProposalDeleted    AuditEvent = "slash_proposal_deleted"

	EventAuthorizationRejected AuditEvent = "authorization_rejected"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventAuthorizationRejected: CategorySecurity,
}

// Category returns the category for e. Anything not listed is a compliance
// event.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryCompliance
}

// Store persists events. Implementations may be an outbox (postgres) or a
// plain list (memory).
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Reader lists materialized events.
type Reader interface {
	ListBySubject(ctx context.Context, subject string) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
