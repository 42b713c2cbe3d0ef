package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWall(t *testing.T) {
	genesis := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	w := NewWall(genesis, time.Second)

	w.now = func() time.Time { return genesis.Add(90*time.Second + 500*time.Millisecond) }
	slot, err := w.CurrentSlot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(90), slot)

	w.now = func() time.Time { return genesis.Add(-time.Second) }
	_, err = w.CurrentSlot(context.Background())
	assert.ErrorIs(t, err, ErrBeforeGenesis)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = w.CurrentSlot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestManual(t *testing.T) {
	m := NewManual(10)
	assert.Equal(t, uint64(15), m.Advance(5))
	m.Set(3)
	slot, err := m.CurrentSlot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(3), slot)
}
