package models

import (
	"time"

	"arbiter/pkg/domain"
)

// Resolver is a registered judge. The Nth resolver registered under an NCN
// carries Index N-1.
type Resolver struct {
	Address   domain.Address `json:"address"`
	Base      domain.Address `json:"base"`
	Ncn       domain.Address `json:"ncn"`
	Admin     domain.Address `json:"admin"`
	Index     uint64         `json:"index"`
	Bump      uint8          `json:"bump"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewResolver(at Derived, base, ncn, admin domain.Address, index uint64, now time.Time) *Resolver {
	return &Resolver{
		Address:   at.Address,
		Base:      base,
		Ncn:       ncn,
		Admin:     admin,
		Index:     index,
		Bump:      at.Bump,
		CreatedAt: now,
	}
}

func (r *Resolver) CheckAdmin(signer domain.Address) error {
	if r.Admin != signer {
		return ErrorResolverAdminInvalid.Err()
	}
	return nil
}
