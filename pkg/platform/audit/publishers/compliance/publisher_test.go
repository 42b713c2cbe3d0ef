package compliance

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "arbiter/pkg/platform/audit"
	"arbiter/pkg/platform/audit/store/memory"
)

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Event) error { return errors.New("disk full") }

func TestEmit(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and stamps", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		m := NewMetrics(prometheus.NewRegistry())
		p := New(store, WithMetrics(m))

		require.NoError(t, p.Emit(ctx, audit.Event{Action: string(audit.EventSlashProposed), Subject: "p"}))

		events, err := store.ListBySubject(ctx, "p")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.False(t, events[0].Timestamp.IsZero())
		assert.Equal(t, audit.CategoryCompliance, events[0].Category)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsEmitted))
	})

	t.Run("rejects incomplete events", func(t *testing.T) {
		p := New(memory.NewInMemoryStore())
		assert.ErrorIs(t, p.Emit(ctx, audit.Event{Subject: "p"}), errMissingAction)
		assert.ErrorIs(t, p.Emit(ctx, audit.Event{Action: "x"}), errMissingSubject)
	})

	t.Run("fails closed", func(t *testing.T) {
		m := NewMetrics(prometheus.NewRegistry())
		p := New(failingStore{}, WithMetrics(m))
		err := p.Emit(ctx, audit.Event{Action: string(audit.EventSlashExecuted), Subject: "p"})
		assert.ErrorContains(t, err, "disk full")
		assert.Equal(t, 1.0, testutil.ToFloat64(m.persistFailures))
	})
}
