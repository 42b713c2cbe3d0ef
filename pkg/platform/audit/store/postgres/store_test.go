package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "arbiter/pkg/platform/audit"
)

func TestPayloadRoundTripsEventFields(t *testing.T) {
	event := audit.Event{
		ID:        uuid.New(),
		Timestamp: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		Action:    string(audit.EventAuthorizationRejected),
		Subject:   "proposal",
		Actor:     "signer",
		Slot:      42,
		Reason:    "ticket resolver mismatch",
	}

	p := ToPayload(event)
	assert.Equal(t, "security", p.Category)

	got, err := p.Event()
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, audit.CategorySecurity, got.Category)
	assert.True(t, event.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, uint64(42), got.Slot)
}

func TestPayloadAssignsMissingID(t *testing.T) {
	p := ToPayload(audit.Event{Action: string(audit.EventSlashProposed)})
	_, err := uuid.Parse(p.ID)
	assert.NoError(t, err)

	_, err = Payload{ID: "nope"}.Event()
	assert.Error(t, err)
}
