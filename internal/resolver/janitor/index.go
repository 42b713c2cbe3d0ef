// Package janitor deletes completed slash proposals once their delete
// deadline passes. Deletion is permissionless; the janitor is a convenience
// that keeps the store from accumulating settled cases.
package janitor

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"arbiter/pkg/domain"
)

// Index orders completed proposals by delete deadline slot.
type Index interface {
	Schedule(ctx context.Context, proposal domain.Address, deleteDeadline uint64) error
	Remove(ctx context.Context, proposal domain.Address) error
	// Due returns up to limit proposals whose deadline is at or before slot,
	// earliest first.
	Due(ctx context.Context, slot uint64, limit int) ([]domain.Address, error)
	Len(ctx context.Context) (int, error)
}

// MemoryIndex is an Index held in process.
type MemoryIndex struct {
	mu        sync.Mutex
	deadlines map[domain.Address]uint64
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{deadlines: make(map[domain.Address]uint64)}
}

func (m *MemoryIndex) Schedule(_ context.Context, proposal domain.Address, deleteDeadline uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deadlines[proposal] = deleteDeadline
	return nil
}

func (m *MemoryIndex) Remove(_ context.Context, proposal domain.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.deadlines, proposal)
	return nil
}

func (m *MemoryIndex) Due(_ context.Context, slot uint64, limit int) ([]domain.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	type entry struct {
		proposal domain.Address
		deadline uint64
	}
	var due []entry
	for p, d := range m.deadlines {
		if d <= slot {
			due = append(due, entry{proposal: p, deadline: d})
		}
	}
	slices.SortFunc(due, func(a, b entry) int {
		if c := cmp.Compare(a.deadline, b.deadline); c != 0 {
			return c
		}
		return cmp.Compare(a.proposal.String(), b.proposal.String())
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	out := make([]domain.Address, len(due))
	for i, e := range due {
		out[i] = e.proposal
	}
	return out, nil
}

func (m *MemoryIndex) Len(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.deadlines), nil
}
