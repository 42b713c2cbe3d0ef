package seed

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbiter/internal/restaking"
	"arbiter/internal/vault"
	"arbiter/pkg/domain"
)

func TestLoadAndApply(t *testing.T) {
	ncn, operator, vaultAddr, slasher := domain.Address{1}, domain.Address{2}, domain.Address{3}, domain.Address{4}
	f := File{
		Ncns:           []Account{{Address: ncn, Admin: domain.Address{11}}},
		Operators:      []Account{{Address: operator, Admin: domain.Address{12}}},
		Vaults:         []Account{{Address: vaultAddr, Admin: domain.Address{13}}},
		Pairs:          []Pair{{Ncn: ncn, Operator: operator, Vault: vaultAddr}},
		Delegations:    []Delegation{{Vault: vaultAddr, Operator: operator, Staked: 500}},
		Slashers:       []SlasherLink{{Ncn: ncn, Vault: vaultAddr, Slasher: slasher, MaxPerEpoch: 50}},
		OperatorEpochs: []OperatorEpoch{{Vault: vaultAddr, Ncn: ncn, Slasher: slasher, Operator: operator, Epoch: 3}},
	}
	raw, err := json.Marshal(f)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	loaded, err := Load(path)
	require.NoError(t, err)

	registry := restaking.NewInMemory(domain.Address{0xA1})
	vaults := vault.NewInMemory(domain.Address{0xA2})
	require.NoError(t, loaded.Apply(registry, vaults))

	ctx := context.Background()
	got, err := registry.Ncn(ctx, ncn)
	require.NoError(t, err)
	assert.Equal(t, domain.Address{11}, got.Admin)

	addr, err := restaking.NcnOperatorStateAddress(registry.Program(), ncn, operator)
	require.NoError(t, err)
	ticket, err := registry.Ticket(ctx, addr)
	require.NoError(t, err)
	assert.True(t, ticket.Active)

	addr, err = vault.VaultOperatorDelegationAddress(vaults.Program(), vaultAddr, operator)
	require.NoError(t, err)
	delegation, err := vaults.Ticket(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), delegation.Staked)

	addr, err = vault.VaultNcnSlasherOperatorTicketAddress(vaults.Program(), vaultAddr, ncn, slasher, operator, 3)
	require.NoError(t, err)
	epochTicket, err := vaults.Ticket(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), epochTicket.Epoch)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ncns":[{"address":"not-base58-0OIl"}]}`), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}
