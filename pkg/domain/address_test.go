package domain

import (
	"crypto/ed25519"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "arbiter/pkg/domain-errors"
)

// TestParseAddress_Invariants covers the trust-boundary parsing rules:
// base58 text that decodes to exactly 32 bytes.
func TestParseAddress_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseAddress("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects non-base58 characters", func(t *testing.T) {
		_, err := ParseAddress("0OIl")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := ParseAddress("3mJr7AoUXx2Wqd")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("zero address renders as all ones", func(t *testing.T) {
		assert.Equal(t, "11111111111111111111111111111111", Address{}.String())
		parsed, err := ParseAddress("11111111111111111111111111111111")
		require.NoError(t, err)
		assert.True(t, parsed.IsZero())
	})

	t.Run("round-trips a public key", func(t *testing.T) {
		pub, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		addr := AddressFromPublicKey(pub)
		parsed, err := ParseAddress(addr.String())
		require.NoError(t, err)
		assert.Equal(t, addr, parsed)
		assert.Equal(t, pub, parsed.PublicKey())
	})
}

func TestAddressEncoding(t *testing.T) {
	addr := Address{1, 2, 3}

	t.Run("json uses base58 text", func(t *testing.T) {
		raw, err := json.Marshal(struct {
			A Address `json:"a"`
		}{addr})
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":"`+addr.String()+`"}`, string(raw))

		var out struct {
			A Address `json:"a"`
		}
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, addr, out.A)
	})

	t.Run("sql value and scan agree", func(t *testing.T) {
		v, err := addr.Value()
		require.NoError(t, err)

		var scanned Address
		require.NoError(t, scanned.Scan(v))
		assert.Equal(t, addr, scanned)

		require.NoError(t, scanned.Scan([]byte(addr.String())))
		assert.Equal(t, addr, scanned)

		assert.Error(t, scanned.Scan(42))
	})

	t.Run("bytes is a copy", func(t *testing.T) {
		b := addr.Bytes()
		b[0] = 9
		assert.Equal(t, byte(1), addr[0])
	})
}
