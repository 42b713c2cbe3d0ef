package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbiter/pkg/platform/audit/store/postgres"
)

type fakeOutbox struct {
	entries []postgres.OutboxEntry
	marked  []uuid.UUID
}

func (f *fakeOutbox) Pending(context.Context, int) ([]postgres.OutboxEntry, error) {
	return f.entries, nil
}

func (f *fakeOutbox) MarkPublished(_ context.Context, ids []uuid.UUID) error {
	f.marked = append(f.marked, ids...)
	return nil
}

type fakePublisher struct {
	failOn int
	keys   []string
}

func (f *fakePublisher) Publish(_ context.Context, _ string, key, _ []byte) error {
	if f.failOn > 0 && len(f.keys)+1 == f.failOn {
		return errors.New("broker down")
	}
	f.keys = append(f.keys, string(key))
	return nil
}

func TestRelayOnce(t *testing.T) {
	entries := []postgres.OutboxEntry{
		{ID: uuid.New(), AggregateID: "a"},
		{ID: uuid.New(), AggregateID: "b"},
		{ID: uuid.New(), AggregateID: "c"},
	}

	t.Run("publishes and marks everything", func(t *testing.T) {
		outbox := &fakeOutbox{entries: entries}
		pub := &fakePublisher{}
		n, err := NewRelay(outbox, pub, "audit", 0, nil).RelayOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, []string{"a", "b", "c"}, pub.keys)
		assert.Len(t, outbox.marked, 3)
	})

	t.Run("marks only what was published before a failure", func(t *testing.T) {
		outbox := &fakeOutbox{entries: entries}
		pub := &fakePublisher{failOn: 2}
		n, err := NewRelay(outbox, pub, "audit", 0, nil).RelayOnce(context.Background())
		assert.ErrorContains(t, err, "broker down")
		assert.Equal(t, 1, n)
		assert.Equal(t, []uuid.UUID{entries[0].ID}, outbox.marked)
	})
}
