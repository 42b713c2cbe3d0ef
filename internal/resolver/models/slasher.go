package models

import (
	"time"

	"arbiter/pkg/domain"
)

// Slasher is a registered accuser.
//
// Invariants:
//   - DelegateAdmin starts equal to Admin
//   - Only Admin may rotate Admin or DelegateAdmin
//   - The program-derived authority (SigningSeeds) is what the vault trusts,
//     never the admin key directly
type Slasher struct {
	Address       domain.Address `json:"address"`
	Base          domain.Address `json:"base"`
	Ncn           domain.Address `json:"ncn"`
	Admin         domain.Address `json:"admin"`
	DelegateAdmin domain.Address `json:"delegate_admin"`
	Index         uint64         `json:"index"`
	Bump          uint8          `json:"bump"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func NewSlasher(at Derived, base, ncn, admin domain.Address, index uint64, now time.Time) *Slasher {
	return &Slasher{
		Address:       at.Address,
		Base:          base,
		Ncn:           ncn,
		Admin:         admin,
		DelegateAdmin: admin,
		Index:         index,
		Bump:          at.Bump,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (s *Slasher) CheckAdmin(signer domain.Address) error {
	if s.Admin != signer {
		return ErrorSlasherAdminInvalid.Err()
	}
	return nil
}

// ApplyAdmin rotates the primary admin. A delegate that still pointed at the
// old admin follows the rotation.
func (s *Slasher) ApplyAdmin(newAdmin domain.Address, now time.Time) {
	if s.DelegateAdmin == s.Admin {
		s.DelegateAdmin = newAdmin
	}
	s.Admin = newAdmin
	s.UpdatedAt = now
}

func (s *Slasher) ApplyDelegateAdmin(delegate domain.Address, now time.Time) {
	s.DelegateAdmin = delegate
	s.UpdatedAt = now
}

// SigningSeeds are the seeds, bump included, that authorize vault calls on
// this slasher's behalf.
func (s *Slasher) SigningSeeds() [][]byte {
	return [][]byte{[]byte(SeedSlasher), s.Base.Bytes(), {s.Bump}}
}
