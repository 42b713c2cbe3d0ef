package signer

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbiter/pkg/domain"
	dErrors "arbiter/pkg/domain-errors"
)

func newKey(t *testing.T) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return pub, priv
}

func TestIssueAndValidate(t *testing.T) {
	pub, priv := newKey(t)
	now := time.Now()
	v := NewVerifier(5 * time.Minute)

	token, err := Issue(priv, domain.APIVersionV1, time.Minute, now)
	require.NoError(t, err)

	got, err := v.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.AddressFromPublicKey(pub), got.Signer)
	assert.Equal(t, domain.APIVersionV1, got.APIVersion)
	assert.NotEmpty(t, got.ID)
}

func TestValidateRejects(t *testing.T) {
	_, priv := newKey(t)
	otherPub, _ := newKey(t)
	now := time.Now()
	v := NewVerifier(5 * time.Minute)

	t.Run("expired", func(t *testing.T) {
		token, err := Issue(priv, domain.APIVersionV1, time.Minute, now.Add(-2*time.Minute))
		require.NoError(t, err)
		_, err = v.ValidateToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("lifetime over max age", func(t *testing.T) {
		token, err := Issue(priv, domain.APIVersionV1, time.Hour, now)
		require.NoError(t, err)
		_, err = v.ValidateToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("subject of another key", func(t *testing.T) {
		claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   domain.AddressFromPublicKey(otherPub).String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(priv)
		require.NoError(t, err)
		_, err = v.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("hmac token", func(t *testing.T) {
		claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   domain.AddressFromPublicKey(otherPub).String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = v.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("missing expiry", func(t *testing.T) {
		pub, _ := priv.Public().(ed25519.PublicKey)
		claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:  domain.AddressFromPublicKey(pub).String(),
			IssuedAt: jwt.NewNumericDate(now),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(priv)
		require.NoError(t, err)
		_, err = v.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.ValidateToken("not.a.token")
		require.Error(t, err)
	})
}
