// Package clock reports the current slot. Deadlines are slot numbers, so
// every operation reads the slot once and reasons in slots only.
package clock

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrBeforeGenesis is returned when the wall clock precedes the genesis time.
var ErrBeforeGenesis = errors.New("current time precedes slot genesis")

// Wall derives the slot from elapsed wall time since genesis.
type Wall struct {
	genesis  time.Time
	duration time.Duration
	now      func() time.Time
}

func NewWall(genesis time.Time, slotDuration time.Duration) *Wall {
	if slotDuration <= 0 {
		slotDuration = 400 * time.Millisecond
	}
	return &Wall{genesis: genesis, duration: slotDuration, now: time.Now}
}

func (w *Wall) CurrentSlot(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	elapsed := w.now().Sub(w.genesis)
	if elapsed < 0 {
		return 0, ErrBeforeGenesis
	}
	return uint64(elapsed / w.duration), nil
}

// Manual is a settable clock for tests and scripted scenarios.
type Manual struct {
	mu   sync.Mutex
	slot uint64
}

func NewManual(slot uint64) *Manual {
	return &Manual{slot: slot}
}

func (m *Manual) CurrentSlot(context.Context) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slot, nil
}

func (m *Manual) Set(slot uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slot = slot
}

// Advance moves the clock forward by n slots and returns the new slot.
func (m *Manual) Advance(n uint64) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slot += n
	return m.slot
}
