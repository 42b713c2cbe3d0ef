package models

import (
	"time"

	"arbiter/pkg/domain"
)

// ProposalTicket routes a slash proposal to the resolver that may veto it.
// It is created and destroyed together with its proposal. Resolver is the
// only mutable field; the zero address means no resolver is assigned.
type ProposalTicket struct {
	Address       domain.Address `json:"address"`
	Ncn           domain.Address `json:"ncn"`
	SlashProposal domain.Address `json:"slash_proposal"`
	Resolver      domain.Address `json:"resolver"`
	Bump          uint8          `json:"bump"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func NewProposalTicket(at Derived, ncn, proposal domain.Address, now time.Time) *ProposalTicket {
	return &ProposalTicket{
		Address:       at.Address,
		Ncn:           ncn,
		SlashProposal: proposal,
		Bump:          at.Bump,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (t *ProposalTicket) HasResolver() bool {
	return !t.Resolver.IsZero()
}

func (t *ProposalTicket) CheckResolver(resolver domain.Address) error {
	if t.Resolver != resolver {
		return ErrorTicketResolverMismatch.Errorf("assigned %s", t.Resolver)
	}
	return nil
}

func (t *ProposalTicket) CheckSlashProposal(proposal domain.Address) error {
	if t.SlashProposal != proposal {
		return ErrorTicketProposalMismatch.Errorf("ticket references %s", t.SlashProposal)
	}
	return nil
}

func (t *ProposalTicket) AssignResolver(resolver domain.Address, now time.Time) {
	t.Resolver = resolver
	t.UpdatedAt = now
}

// Case is a proposal read together with its routing ticket.
type Case struct {
	Proposal *SlashProposal  `json:"proposal"`
	Ticket   *ProposalTicket `json:"ticket"`
}

// ProposalFilter narrows ListProposals. Zero fields match everything.
type ProposalFilter struct {
	Ncn      domain.Address
	Operator domain.Address
	Statuses []ProposalStatus
	Limit    int
}
