package vault

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sync"

	"arbiter/pkg/domain"
	"arbiter/pkg/platform/sentinel"
)

type applied struct {
	ix SlashInstruction
}

// InMemory is a vault program held in process.
type InMemory struct {
	program domain.Address

	mu      sync.RWMutex
	vaults  map[domain.Address]Vault
	tickets map[domain.Address]Ticket
	applied map[domain.Address]applied
}

func NewInMemory(program domain.Address) *InMemory {
	return &InMemory{
		program: program,
		vaults:  make(map[domain.Address]Vault),
		tickets: make(map[domain.Address]Ticket),
		applied: make(map[domain.Address]applied),
	}
}

func (m *InMemory) Program() domain.Address { return m.program }

func (m *InMemory) PutVault(address, admin domain.Address) Vault {
	v := Vault{Account: Account{Address: address, Owner: m.program}, Admin: admin}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vaults[address] = v
	return v
}

func (m *InMemory) PutTicket(t Ticket) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets[t.Address] = t
}

// Link stores an active ticket at the address derived from kind and keys.
// tweak may adjust stake or caps before it is stored.
func (m *InMemory) Link(kind TicketKind, tweak func(*Ticket), keys ...domain.Address) (Ticket, error) {
	addr, err := ticketAddress(m.program, kind, nil, keys...)
	if err != nil {
		return Ticket{}, fmt.Errorf("derive %s: %w", kind, err)
	}
	t := Ticket{Account: Account{Address: addr, Owner: m.program}, Kind: kind, Active: true}
	if tweak != nil {
		tweak(&t)
	}
	m.PutTicket(t)
	return t, nil
}

// LinkOperatorEpoch stores the per-epoch slasher operator ticket.
func (m *InMemory) LinkOperatorEpoch(vault, ncn, slasher, operator domain.Address, epoch uint64) (Ticket, error) {
	addr, err := VaultNcnSlasherOperatorTicketAddress(m.program, vault, ncn, slasher, operator, epoch)
	if err != nil {
		return Ticket{}, fmt.Errorf("derive %s: %w", KindVaultNcnSlasherOperatorTicket, err)
	}
	t := Ticket{
		Account: Account{Address: addr, Owner: m.program},
		Kind:    KindVaultNcnSlasherOperatorTicket,
		Active:  true,
		Epoch:   epoch,
	}
	m.PutTicket(t)
	return t, nil
}

func (m *InMemory) Vault(_ context.Context, address domain.Address) (*Vault, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vaults[address]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &v, nil
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

// Slash reduces the operator delegation by ix.Amount. The whole reduction is
// applied or nothing is.
func (m *InMemory) Slash(_ context.Context, ix SlashInstruction) error {
	authority, err := domain.CreateProgramAddress(ix.AuthorityProgram, ix.SignerSeeds...)
	if err != nil || authority != ix.Slasher {
		return ErrAuthorityInvalid
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.applied[ix.Reference]; ok {
		if sameTerms(prev.ix, ix) {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrReferenceReused, ix.Reference)
	}

	v, ok := m.vaults[ix.Vault]
	if !ok {
		return fmt.Errorf("vault %s: %w", ix.Vault, sentinel.ErrNotFound)
	}

	delegationAddr, err := VaultOperatorDelegationAddress(m.program, ix.Vault, ix.Operator)
	if err != nil {
		return fmt.Errorf("derive delegation: %w", err)
	}
	slasherAddr, err := VaultNcnSlasherTicketAddress(m.program, ix.Vault, ix.Ncn, ix.Slasher)
	if err != nil {
		return fmt.Errorf("derive slasher ticket: %w", err)
	}
	operatorAddr, err := VaultNcnSlasherOperatorTicketAddress(m.program, ix.Vault, ix.Ncn, ix.Slasher, ix.Operator, ix.Epoch)
	if err != nil {
		return fmt.Errorf("derive operator ticket: %w", err)
	}

	delegation, ok := m.tickets[delegationAddr]
	if !ok {
		return fmt.Errorf("delegation %s: %w", delegationAddr, sentinel.ErrNotFound)
	}
	slasherTicket, ok := m.tickets[slasherAddr]
	if !ok || !slasherTicket.Active {
		return fmt.Errorf("slasher ticket %s: %w", slasherAddr, sentinel.ErrInvalidState)
	}
	operatorTicket, ok := m.tickets[operatorAddr]
	if !ok {
		return fmt.Errorf("operator ticket %s: %w", operatorAddr, sentinel.ErrNotFound)
	}

	if delegation.Staked < ix.Amount {
		return fmt.Errorf("%w: staked %d, amount %d", ErrInsufficientStake, delegation.Staked, ix.Amount)
	}
	if slasherTicket.MaxPerEpoch > 0 && ix.Amount > slasherTicket.MaxPerEpoch-min(operatorTicket.Slashed, slasherTicket.MaxPerEpoch) {
		return fmt.Errorf("%w: cap %d, already %d", ErrEpochCapExceeded, slasherTicket.MaxPerEpoch, operatorTicket.Slashed)
	}

	delegation.Staked -= ix.Amount
	delegation.Slashed += ix.Amount
	operatorTicket.Slashed += ix.Amount
	v.SlashedTotal += ix.Amount

	m.tickets[delegationAddr] = delegation
	m.tickets[operatorAddr] = operatorTicket
	m.vaults[ix.Vault] = v
	m.applied[ix.Reference] = applied{ix: cloneInstruction(ix)}
	return nil
}

// Applied reports whether a reference has been slashed.
func (m *InMemory) Applied(reference domain.Address) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.applied[reference]
	return ok
}

func sameTerms(a, b SlashInstruction) bool {
	return a.Vault == b.Vault && a.Ncn == b.Ncn && a.Operator == b.Operator &&
		a.Slasher == b.Slasher && a.Amount == b.Amount && a.Epoch == b.Epoch
}

func cloneInstruction(ix SlashInstruction) SlashInstruction {
	ix.SignerSeeds = slices.Clone(ix.SignerSeeds)
	for i, s := range ix.SignerSeeds {
		ix.SignerSeeds[i] = bytes.Clone(s)
	}
	return ix
}
