package service

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"arbiter/internal/resolver/models"
	"arbiter/internal/restaking"
	"arbiter/internal/vault"
	"arbiter/pkg/domain"
	audit "arbiter/pkg/platform/audit"
)

// Store persists resolver program accounts. Implementations return
// sentinel.ErrNotFound for missing accounts and sentinel.ErrAlreadyUsed when
// a create hits an existing address.
type Store interface {
	CreateConfig(ctx context.Context, cfg *models.Config) error
	FindConfig(ctx context.Context, address domain.Address) (*models.Config, error)

	CreatePolicy(ctx context.Context, policy *models.NcnPolicy) error
	FindPolicy(ctx context.Context, address domain.Address) (*models.NcnPolicy, error)
	UpdatePolicy(ctx context.Context, policy *models.NcnPolicy) error

	CreateResolver(ctx context.Context, resolver *models.Resolver) error
	FindResolver(ctx context.Context, address domain.Address) (*models.Resolver, error)
	ListResolvers(ctx context.Context, ncn domain.Address) ([]*models.Resolver, error)

	CreateSlasher(ctx context.Context, slasher *models.Slasher) error
	FindSlasher(ctx context.Context, address domain.Address) (*models.Slasher, error)
	UpdateSlasher(ctx context.Context, slasher *models.Slasher) error
	ListSlashers(ctx context.Context, ncn domain.Address) ([]*models.Slasher, error)

	// CreateCase writes a proposal and its ticket together.
	CreateCase(ctx context.Context, proposal *models.SlashProposal, ticket *models.ProposalTicket) error
	FindProposal(ctx context.Context, address domain.Address) (*models.SlashProposal, error)
	FindTicket(ctx context.Context, address domain.Address) (*models.ProposalTicket, error)
	UpdateProposal(ctx context.Context, proposal *models.SlashProposal) error
	UpdateTicket(ctx context.Context, ticket *models.ProposalTicket) error
	// DeleteCase removes a proposal and its ticket together.
	DeleteCase(ctx context.Context, proposal, ticket domain.Address) error
	ListProposals(ctx context.Context, filter models.ProposalFilter) ([]*models.SlashProposal, error)
}

// Tx runs fn in one unit of work. The ctx handed to fn carries the
// transaction so outbox writes join it.
type Tx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}

// Registry reads the restaking program.
type Registry interface {
	Ncn(ctx context.Context, address domain.Address) (*restaking.Ncn, error)
	Operator(ctx context.Context, address domain.Address) (*restaking.Operator, error)
	Ticket(ctx context.Context, address domain.Address) (*restaking.Ticket, error)
}

// Vault reads the vault program and performs the slash.
type Vault interface {
	Vault(ctx context.Context, address domain.Address) (*vault.Vault, error)
	Ticket(ctx context.Context, address domain.Address) (*vault.Ticket, error)
	Slash(ctx context.Context, ix vault.SlashInstruction) error
}

type SlotClock interface {
	CurrentSlot(ctx context.Context) (uint64, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// DeadlineIndex tracks completed proposals by delete deadline.
type DeadlineIndex interface {
	Schedule(ctx context.Context, proposal domain.Address, deleteDeadline uint64) error
	Remove(ctx context.Context, proposal domain.Address) error
}
