package models

import (
	"math/bits"
	"time"

	"arbiter/pkg/domain"
)

// NcnPolicy is the per-NCN resolver configuration.
//
// Invariants:
//   - VetoDuration, DeleteSlashProposalDuration and ResolverAdmin are fixed at creation
//   - ResolverCount and SlasherCount only grow, one per registration
//   - ResolverAdmin is the only identity that may reassign a proposal's resolver
type NcnPolicy struct {
	Address                     domain.Address `json:"address"`
	Ncn                         domain.Address `json:"ncn"`
	VetoDuration                uint64         `json:"veto_duration"`
	DeleteSlashProposalDuration uint64         `json:"delete_slash_proposal_duration"`
	ResolverCount               uint64         `json:"resolver_count"`
	SlasherCount                uint64         `json:"slasher_count"`
	ResolverAdmin               domain.Address `json:"resolver_admin"`
	Bump                        uint8          `json:"bump"`
	CreatedAt                   time.Time      `json:"created_at"`
	UpdatedAt                   time.Time      `json:"updated_at"`
}

func NewNcnPolicy(at Derived, ncn domain.Address, vetoDuration, deleteDuration uint64, resolverAdmin domain.Address, now time.Time) *NcnPolicy {
	return &NcnPolicy{
		Address:                     at.Address,
		Ncn:                         ncn,
		VetoDuration:                vetoDuration,
		DeleteSlashProposalDuration: deleteDuration,
		ResolverAdmin:               resolverAdmin,
		Bump:                        at.Bump,
		CreatedAt:                   now,
		UpdatedAt:                   now,
	}
}

func (p *NcnPolicy) CheckResolverAdmin(signer domain.Address) error {
	if p.ResolverAdmin != signer {
		return ErrorPolicyAuthorityInvalid.Err()
	}
	return nil
}

// NextResolverIndex returns the index for the next resolver and advances
// the counter.
func (p *NcnPolicy) NextResolverIndex(now time.Time) (uint64, error) {
	idx := p.ResolverCount
	next, err := checkedAdd(idx, 1)
	if err != nil {
		return 0, err
	}
	p.ResolverCount = next
	p.UpdatedAt = now
	return idx, nil
}

// NextSlasherIndex is NextResolverIndex for the slasher counter.
func (p *NcnPolicy) NextSlasherIndex(now time.Time) (uint64, error) {
	idx := p.SlasherCount
	next, err := checkedAdd(idx, 1)
	if err != nil {
		return 0, err
	}
	p.SlasherCount = next
	p.UpdatedAt = now
	return idx, nil
}

func checkedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrorArithmeticOverflow.Err()
	}
	return sum, nil
}
