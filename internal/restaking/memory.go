package restaking

import (
	"context"
	"fmt"
	"sync"

	"arbiter/pkg/domain"
	"arbiter/pkg/platform/sentinel"
)

// InMemory is a registry snapshot held in process. It backs tests and
// devnet deployments seeded from a file.
type InMemory struct {
	program domain.Address

	mu        sync.RWMutex
	ncns      map[domain.Address]Ncn
	operators map[domain.Address]Operator
	tickets   map[domain.Address]Ticket
}

func NewInMemory(program domain.Address) *InMemory {
	return &InMemory{
		program:   program,
		ncns:      make(map[domain.Address]Ncn),
		operators: make(map[domain.Address]Operator),
		tickets:   make(map[domain.Address]Ticket),
	}
}

// Program is the restaking program that owns accounts created here.
func (m *InMemory) Program() domain.Address { return m.program }

func (m *InMemory) PutNcn(address, admin domain.Address) Ncn {
	ncn := Ncn{Account: Account{Address: address, Owner: m.program}, Admin: admin}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ncns[address] = ncn
	return ncn
}

func (m *InMemory) PutOperator(address, admin domain.Address) Operator {
	op := Operator{Account: Account{Address: address, Owner: m.program}, Admin: admin}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operators[address] = op
	return op
}

// PutTicket stores a ticket as-is, including foreign owners. Tests use it to
// plant malformed linkage.
func (m *InMemory) PutTicket(t Ticket) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets[t.Address] = t
}

// Link creates an active ticket of kind at its derived address.
func (m *InMemory) Link(kind TicketKind, keys ...domain.Address) (Ticket, error) {
	addr, err := ticketAddress(m.program, kind, keys...)
	if err != nil {
		return Ticket{}, fmt.Errorf("derive %s: %w", kind, err)
	}
	t := Ticket{Account: Account{Address: addr, Owner: m.program}, Kind: kind, Active: true}
	m.PutTicket(t)
	return t, nil
}

// Deactivate flips an existing ticket to inactive.
func (m *InMemory) Deactivate(address domain.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tickets[address]
	if !ok {
		return sentinel.ErrNotFound
	}
	t.Active = false
	m.tickets[address] = t
	return nil
}

func (m *InMemory) Ncn(_ context.Context, address domain.Address) (*Ncn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ncn, ok := m.ncns[address]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &ncn, nil
}

func (m *InMemory) Operator(_ context.Context, address domain.Address) (*Operator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	op, ok := m.operators[address]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &op, nil
}

func (m *InMemory) Ticket(_ context.Context, address domain.Address) (*Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tickets[address]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &t, nil
}
