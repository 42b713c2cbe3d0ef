package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbiter/internal/resolver/models"
	"arbiter/internal/signer"
	"arbiter/pkg/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ARBITER_URL", "")
	t.Setenv("ARBITER_KEY", "")
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signer.key")

	generated, err := run(t, "keys", "generate", path)
	require.NoError(t, err)
	_, err = domain.ParseAddress(generated)
	require.NoError(t, err)

	shown, err := run(t, "--key", path, "keys", "show")
	require.NoError(t, err)
	assert.Equal(t, generated, shown)

	t.Run("generate refuses to overwrite", func(t *testing.T) {
		_, err := run(t, "keys", "generate", path)
		assert.Error(t, err)
	})

	t.Run("show needs a key", func(t *testing.T) {
		_, err := run(t, "keys", "show")
		assert.ErrorContains(t, err, "no signer key")
	})
}

func TestTokenVerifies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signer.key")
	address, err := run(t, "keys", "generate", path)
	require.NoError(t, err)

	token, err := run(t, "--key", path, "token", "--ttl", "30s")
	require.NoError(t, err)

	verified, err := signer.NewVerifier(0).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, address, verified.Signer.String())
	assert.Equal(t, domain.APIVersionV1, verified.APIVersion)
}

func TestDerive(t *testing.T) {
	program := domain.Address{0xF0}
	ncn, operator, slasher := domain.Address{1}, domain.Address{2}, domain.Address{3}

	want, err := models.SlashProposalAddress(program, ncn, operator, slasher)
	require.NoError(t, err)

	out, err := run(t, "--program", program.String(), "derive", "proposal", ncn.String(), operator.String(), slasher.String())
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s bump=%d", want.Address, want.Bump), out)

	t.Run("rejects malformed addresses", func(t *testing.T) {
		_, err := run(t, "derive", "policy", "not-base58!")
		assert.Error(t, err)
	})

	t.Run("arity is enforced", func(t *testing.T) {
		_, err := run(t, "derive", "ticket", ncn.String())
		assert.Error(t, err)
	})
}

func TestProposalGet(t *testing.T) {
	proposal := domain.Address{9}
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotAuth = r.URL.Path, r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"proposal":{"status":"open"}}`))
	}))
	defer srv.Close()

	out, err := run(t, "--server", srv.URL, "proposal", "get", proposal.String())
	require.NoError(t, err)
	assert.Equal(t, "/v1/proposals/"+proposal.String(), gotPath)
	assert.Empty(t, gotAuth)
	assert.Contains(t, out, `"status": "open"`)
}

func TestProposalVetoIsSigned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signer.key")
	_, err := run(t, "keys", "generate", path)
	require.NoError(t, err)

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"conflict","code":1}`))
	}))
	defer srv.Close()

	out, err := run(t, "--server", srv.URL, "--key", path, "proposal", "veto", domain.Address{9}.String(), domain.Address{8}.String())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(gotAuth, "Bearer "))
	assert.Contains(t, out, `"code": 1`)
}
