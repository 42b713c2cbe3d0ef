package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
)

const (
	// MaxSeeds bounds the seed count, bump included.
	MaxSeeds = 16
	// MaxSeedLen bounds each seed.
	MaxSeedLen = 32
)

var pdaMarker = []byte("ProgramDerivedAddress")

var (
	// ErrSeedsInvalid reports seeds outside the MaxSeeds/MaxSeedLen bounds.
	ErrSeedsInvalid = errors.New("program address seeds invalid")
	// ErrOnCurve reports a candidate that is a valid ed25519 point and so could
	// have a private key.
	ErrOnCurve = errors.New("program address lies on the ed25519 curve")
	// ErrNoViableBump reports that every bump produced an on-curve candidate.
	ErrNoViableBump = errors.New("no viable bump seed for program address")
)

// CreateProgramAddress hashes seeds under program and rejects results that
// lie on the ed25519 curve. Callers normally pass the bump as the last seed.
func CreateProgramAddress(program Address, seeds ...[]byte) (Address, error) {
	if len(seeds) > MaxSeeds {
		return Address{}, fmt.Errorf("%w: %d seeds", ErrSeedsInvalid, len(seeds))
	}
	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return Address{}, fmt.Errorf("%w: seed of %d bytes", ErrSeedsInvalid, len(seed))
		}
		h.Write(seed)
	}
	h.Write(program[:])
	h.Write(pdaMarker)

	var out Address
	copy(out[:], h.Sum(nil))
	if isOnCurve(out) {
		return Address{}, ErrOnCurve
	}
	return out, nil
}

// FindProgramAddress searches bumps from 255 down and returns the first
// off-curve address with its bump.
func FindProgramAddress(program Address, seeds ...[]byte) (Address, uint8, error) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump > 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}
		addr, err := CreateProgramAddress(program, withBump...)
		if err == nil {
			return addr, uint8(bump), nil
		}
		if !errors.Is(err, ErrOnCurve) {
			return Address{}, 0, err
		}
	}
	return Address{}, 0, ErrNoViableBump
}

// U64Seed encodes v little-endian, the layout used for epoch seeds.
func U64Seed(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func isOnCurve(a Address) bool {
	_, err := new(edwards25519.Point).SetBytes(a[:])
	return err == nil
}
