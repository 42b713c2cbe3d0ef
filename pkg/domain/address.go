// Package domain holds the identity primitives shared by every module.
package domain

import (
	"crypto/ed25519"
	"database/sql/driver"
	"fmt"

	"github.com/mr-tron/base58"

	dErrors "arbiter/pkg/domain-errors"
)

// AddressLen is the byte length of an account address.
const AddressLen = 32

// Address identifies an account: either an ed25519 public key (signers,
// NCNs, operators, programs) or a program-derived address. The text form is
// base58.
//
// The zero Address is the unset sentinel used by routing tickets before a
// resolver is assigned.
type Address [AddressLen]byte

// ParseAddress decodes a base58 address. It rejects empty input and any
// decoding that is not exactly 32 bytes.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address is required")
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("address %q is not base58", s))
	}
	return AddressFromBytes(raw)
}

// MustParseAddress is ParseAddress for constants and tests.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// AddressFromBytes copies b into an Address.
func AddressFromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLen {
		return a, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("address must be %d bytes, got %d", AddressLen, len(b)))
	}
	copy(a[:], b)
	return a, nil
}

// AddressFromPublicKey converts an ed25519 public key.
func AddressFromPublicKey(pub ed25519.PublicKey) Address {
	var a Address
	copy(a[:], pub)
	return a
}

func (a Address) String() string { return base58.Encode(a[:]) }

// Bytes returns a copy of the raw key, suitable as a derivation seed.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressLen)
	copy(b, a[:])
	return b
}

func (a Address) IsZero() bool { return a == Address{} }

// PublicKey views the address as an ed25519 verification key.
func (a Address) PublicKey() ed25519.PublicKey {
	return ed25519.PublicKey(a.Bytes())
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value stores the base58 form.
func (a Address) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan reads the base58 form written by Value.
func (a *Address) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return a.UnmarshalText([]byte(v))
	case []byte:
		return a.UnmarshalText(v)
	case nil:
		*a = Address{}
		return nil
	default:
		return fmt.Errorf("scan address: unsupported type %T", src)
	}
}
