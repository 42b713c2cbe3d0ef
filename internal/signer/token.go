// Package signer issues and verifies the bearer tokens that prove which key
// signs a request. A token is an EdDSA JWT whose subject is the base58
// signer address, so the verification key travels with the token and no key
// registry is needed.
package signer

import (
	"crypto/ed25519"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"arbiter/pkg/domain"
	dErrors "arbiter/pkg/domain-errors"
)

const Issuer = "resolverctl"

// Claims are the token claims. IssuedAt and ExpiresAt are required.
type Claims struct {
	APIVersion string `json:"api_version,omitempty"`
	jwt.RegisteredClaims
}

// Verified is what a valid token proves.
type Verified struct {
	Signer     domain.Address
	APIVersion domain.APIVersion
	ID         string
}

// Issue signs a token for key's address valid for ttl from now.
func Issue(key ed25519.PrivateKey, version domain.APIVersion, ttl time.Duration, now time.Time) (string, error) {
	pub, ok := key.Public().(ed25519.PublicKey)
	if !ok {
		return "", errors.New("signer key is not ed25519")
	}
	claims := Claims{
		APIVersion: version.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   domain.AddressFromPublicKey(pub).String(),
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-30 * time.Second)),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(key)
}

// Verifier checks tokens. Tokens whose lifetime exceeds maxAge are rejected
// even when unexpired, which bounds the replay window.
type Verifier struct {
	maxAge time.Duration
	now    func() time.Time
}

func NewVerifier(maxAge time.Duration) *Verifier {
	if maxAge <= 0 {
		maxAge = 5 * time.Minute
	}
	return &Verifier{maxAge: maxAge, now: time.Now}
}

func (v *Verifier) ValidateToken(token string) (*Verified, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		sub, err := t.Claims.GetSubject()
		if err != nil {
			return nil, err
		}
		addr, err := domain.ParseAddress(sub)
		if err != nil {
			return nil, err
		}
		return addr.PublicKey(), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid || claims.IssuedAt == nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if claims.ExpiresAt.Sub(claims.IssuedAt.Time) > v.maxAge {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token lifetime exceeds the allowed maximum")
	}

	signer, err := domain.ParseAddress(claims.Subject)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token subject")
	}
	var version domain.APIVersion
	if claims.APIVersion != "" {
		if version, err = domain.ParseAPIVersion(claims.APIVersion); err != nil {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "unsupported token api version")
		}
	}
	return &Verified{Signer: signer, APIVersion: version, ID: claims.ID}, nil
}
