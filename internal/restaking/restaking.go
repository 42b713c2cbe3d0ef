// Package restaking models the slice of the restaking registry the resolver
// reads: NCNs, operators and the linkage tickets that tie them to vaults.
package restaking

import (
	"arbiter/pkg/domain"
)

// Account is registry state owned by a program.
type Account struct {
	Address domain.Address `json:"address"`
	Owner   domain.Address `json:"owner"`
}

// Ncn is a governed domain. Admin signs policy and registration changes.
type Ncn struct {
	Account
	Admin domain.Address `json:"admin"`
}

// Operator is a participant whose delegated stake may be slashed.
type Operator struct {
	Account
	Admin domain.Address `json:"admin"`
}

// TicketKind names a registry linkage ticket.
type TicketKind string

const (
	KindNcnOperatorState      TicketKind = "ncn_operator_state"
	KindNcnVaultTicket        TicketKind = "ncn_vault_ticket"
	KindOperatorVaultTicket   TicketKind = "operator_vault_ticket"
	KindNcnVaultSlasherTicket TicketKind = "ncn_vault_slasher_ticket"
)

// Ticket is a linkage between registry entries. Inactive tickets exist but
// no longer authorize anything.
type Ticket struct {
	Account
	Kind   TicketKind `json:"kind"`
	Active bool       `json:"active"`
}

func ticketAddress(program domain.Address, kind TicketKind, keys ...domain.Address) (domain.Address, error) {
	seeds := make([][]byte, 0, len(keys)+1)
	seeds = append(seeds, []byte(kind))
	for _, k := range keys {
		seeds = append(seeds, k.Bytes())
	}
	addr, _, err := domain.FindProgramAddress(program, seeds...)
	return addr, err
}

func NcnOperatorStateAddress(program, ncn, operator domain.Address) (domain.Address, error) {
	return ticketAddress(program, KindNcnOperatorState, ncn, operator)
}

func NcnVaultTicketAddress(program, ncn, vault domain.Address) (domain.Address, error) {
	return ticketAddress(program, KindNcnVaultTicket, ncn, vault)
}

func OperatorVaultTicketAddress(program, operator, vault domain.Address) (domain.Address, error) {
	return ticketAddress(program, KindOperatorVaultTicket, operator, vault)
}

func NcnVaultSlasherTicketAddress(program, ncn, vault, slasher domain.Address) (domain.Address, error) {
	return ticketAddress(program, KindNcnVaultSlasherTicket, ncn, vault, slasher)
}
