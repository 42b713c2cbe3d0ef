package models

import (
	"time"

	"arbiter/pkg/domain"
	dErrors "arbiter/pkg/domain-errors"
)

// Config is the program-wide singleton.
//
// Invariants:
//   - Created once; immutable afterwards
//   - EpochLength is the slot count of one settlement epoch
type Config struct {
	Address          domain.Address `json:"address"`
	Admin            domain.Address `json:"admin"`
	RestakingProgram domain.Address `json:"restaking_program"`
	VaultProgram     domain.Address `json:"vault_program"`
	EpochLength      uint64         `json:"epoch_length"`
	Bump             uint8          `json:"bump"`
	CreatedAt        time.Time      `json:"created_at"`
}

func NewConfig(at Derived, admin, restaking, vault domain.Address, epochLength uint64, now time.Time) (*Config, error) {
	if admin.IsZero() || restaking.IsZero() || vault.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "config admin and program addresses are required")
	}
	if epochLength == 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "epoch length must be positive")
	}
	return &Config{
		Address:          at.Address,
		Admin:            admin,
		RestakingProgram: restaking,
		VaultProgram:     vault,
		EpochLength:      epochLength,
		Bump:             at.Bump,
		CreatedAt:        now,
	}, nil
}

// Epoch returns the settlement epoch containing slot.
func (c *Config) Epoch(slot uint64) (uint64, error) {
	if c.EpochLength == 0 {
		return 0, ErrorDivisionByZero.Err()
	}
	return slot / c.EpochLength, nil
}

func (c *Config) CheckAdmin(signer domain.Address) error {
	if c.Admin != signer {
		return ErrorConfigAdminInvalid.Err()
	}
	return nil
}
