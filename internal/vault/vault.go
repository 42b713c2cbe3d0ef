// Package vault models the vault program state the resolver checks before a
// slash, and the reduction it asks the vault to perform.
package vault

import (
	"errors"

	"arbiter/pkg/domain"
)

var (
	// ErrAuthorityInvalid reports signer seeds that do not re-derive the
	// slasher named in the instruction.
	ErrAuthorityInvalid = errors.New("slash authority does not match slasher")
	// ErrInsufficientStake reports a delegation smaller than the requested amount.
	ErrInsufficientStake = errors.New("delegation stake below slash amount")
	// ErrEpochCapExceeded reports a slash above the per-epoch cap of the slasher ticket.
	ErrEpochCapExceeded = errors.New("slash exceeds per-epoch cap")
	// ErrReferenceReused reports a reference already applied with a different instruction.
	ErrReferenceReused = errors.New("slash reference already applied with different terms")
)

type Account struct {
	Address domain.Address `json:"address"`
	Owner   domain.Address `json:"owner"`
}

type Vault struct {
	Account
	Admin        domain.Address `json:"admin"`
	SlashedTotal uint64         `json:"slashed_total"`
}

type TicketKind string

const (
	KindVaultNcnTicket                TicketKind = "vault_ncn_ticket"
	KindVaultOperatorDelegation       TicketKind = "vault_operator_delegation"
	KindVaultNcnSlasherTicket         TicketKind = "vault_ncn_slasher_ticket"
	KindVaultNcnSlasherOperatorTicket TicketKind = "vault_ncn_slasher_operator_ticket"
)

// seed is the derivation tag for k. The per-epoch operator ticket uses the
// vault program's shorter tag; its kind label exceeds domain.MaxSeedLen.
func (k TicketKind) seed() []byte {
	if k == KindVaultNcnSlasherOperatorTicket {
		return []byte("vault_ncn_slasher_operator")
	}
	return []byte(k)
}

// Ticket is any vault-side linkage. Staked applies to delegations, MaxPerEpoch
// to slasher tickets, Epoch and Slashed to per-epoch operator tickets.
type Ticket struct {
	Account
	Kind        TicketKind `json:"kind"`
	Active      bool       `json:"active"`
	Epoch       uint64     `json:"epoch,omitempty"`
	Staked      uint64     `json:"staked,omitempty"`
	MaxPerEpoch uint64     `json:"max_per_epoch,omitempty"`
	Slashed     uint64     `json:"slashed,omitempty"`
}

// SlashInstruction is the reduction request. Reference makes it idempotent:
// a second instruction with the same reference and terms is a no-op.
type SlashInstruction struct {
	Vault    domain.Address
	Ncn      domain.Address
	Operator domain.Address
	Slasher  domain.Address
	Amount   uint64
	Epoch    uint64

	// AuthorityProgram and SignerSeeds must re-derive Slasher.
	AuthorityProgram domain.Address
	SignerSeeds      [][]byte

	Reference domain.Address
}

func ticketAddress(program domain.Address, kind TicketKind, tail []byte, keys ...domain.Address) (domain.Address, error) {
	seeds := make([][]byte, 0, len(keys)+2)
	seeds = append(seeds, kind.seed())
	for _, k := range keys {
		seeds = append(seeds, k.Bytes())
	}
	if tail != nil {
		seeds = append(seeds, tail)
	}
	addr, _, err := domain.FindProgramAddress(program, seeds...)
	return addr, err
}

func VaultNcnTicketAddress(program, vault, ncn domain.Address) (domain.Address, error) {
	return ticketAddress(program, KindVaultNcnTicket, nil, vault, ncn)
}

func VaultOperatorDelegationAddress(program, vault, operator domain.Address) (domain.Address, error) {
	return ticketAddress(program, KindVaultOperatorDelegation, nil, vault, operator)
}

func VaultNcnSlasherTicketAddress(program, vault, ncn, slasher domain.Address) (domain.Address, error) {
	return ticketAddress(program, KindVaultNcnSlasherTicket, nil, vault, ncn, slasher)
}

// VaultNcnSlasherOperatorTicketAddress is scoped to one epoch.
func VaultNcnSlasherOperatorTicketAddress(program, vault, ncn, slasher, operator domain.Address, epoch uint64) (domain.Address, error) {
	return ticketAddress(program, KindVaultNcnSlasherOperatorTicket, domain.U64Seed(epoch), vault, ncn, slasher, operator)
}
