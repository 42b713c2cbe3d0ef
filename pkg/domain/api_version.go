package domain

import (
	"fmt"
	"slices"
)

// APIVersion names a route generation. Signer tokens carry the version they
// were minted for so a token cannot be replayed against an older surface.
type APIVersion string

const APIVersionV1 APIVersion = "v1"

// supported is ordered oldest first.
var supported = []APIVersion{APIVersionV1}

// ParseAPIVersion accepts only supported versions.
func ParseAPIVersion(s string) (APIVersion, error) {
	v := APIVersion(s)
	if !slices.Contains(supported, v) {
		return "", fmt.Errorf("unknown API version: %s", s)
	}
	return v, nil
}

func (v APIVersion) String() string { return string(v) }

func (v APIVersion) IsNil() bool { return v == "" }

// IsAtLeast reports whether v is the same generation as other or newer.
// Unknown versions rank below every known one.
func (v APIVersion) IsAtLeast(other APIVersion) bool {
	mine := slices.Index(supported, v)
	if mine < 0 {
		return false
	}
	return mine >= slices.Index(supported, other)
}

// DefaultVersion is stamped on tokens that do not ask for one.
func DefaultVersion() APIVersion {
	return supported[len(supported)-1]
}
