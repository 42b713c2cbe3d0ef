// Package seed loads a devnet snapshot of the restaking registry and the
// vault program from a JSON file into the in-memory adapters.
package seed

import (
	"encoding/json"
	"fmt"
	"os"

	"arbiter/internal/restaking"
	"arbiter/internal/vault"
	"arbiter/pkg/domain"
)

type Account struct {
	Address domain.Address `json:"address"`
	Admin   domain.Address `json:"admin"`
}

type Delegation struct {
	Vault    domain.Address `json:"vault"`
	Operator domain.Address `json:"operator"`
	Staked   uint64         `json:"staked"`
}

// SlasherLink connects a slasher to an NCN and vault on both programs.
type SlasherLink struct {
	Ncn         domain.Address `json:"ncn"`
	Vault       domain.Address `json:"vault"`
	Slasher     domain.Address `json:"slasher"`
	MaxPerEpoch uint64         `json:"max_per_epoch"`
}

type OperatorEpoch struct {
	Vault    domain.Address `json:"vault"`
	Ncn      domain.Address `json:"ncn"`
	Slasher  domain.Address `json:"slasher"`
	Operator domain.Address `json:"operator"`
	Epoch    uint64         `json:"epoch"`
}

type Pair struct {
	Ncn      domain.Address `json:"ncn"`
	Operator domain.Address `json:"operator"`
	Vault    domain.Address `json:"vault"`
}

// File is the on-disk snapshot. Pairs link ncn, operator and vault on both
// programs; entries may leave one side zero to create only the links that
// apply.
type File struct {
	Ncns           []Account       `json:"ncns"`
	Operators      []Account       `json:"operators"`
	Vaults         []Account       `json:"vaults"`
	Pairs          []Pair          `json:"pairs"`
	Delegations    []Delegation    `json:"delegations"`
	Slashers       []SlasherLink   `json:"slashers"`
	OperatorEpochs []OperatorEpoch `json:"operator_epochs"`
}

// Load reads path and decodes it.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &f, nil
}

// Apply writes the snapshot into registry and vaults. It stops at the first
// derivation error; earlier writes stay applied.
func (f *File) Apply(registry *restaking.InMemory, vaults *vault.InMemory) error {
	for _, n := range f.Ncns {
		registry.PutNcn(n.Address, n.Admin)
	}
	for _, o := range f.Operators {
		registry.PutOperator(o.Address, o.Admin)
	}
	for _, v := range f.Vaults {
		vaults.PutVault(v.Address, v.Admin)
	}

	for _, p := range f.Pairs {
		if err := applyPair(registry, vaults, p); err != nil {
			return err
		}
	}

	for _, d := range f.Delegations {
		staked := d.Staked
		if _, err := vaults.Link(vault.KindVaultOperatorDelegation, func(t *vault.Ticket) { t.Staked = staked }, d.Vault, d.Operator); err != nil {
			return fmt.Errorf("seed delegation: %w", err)
		}
	}

	for _, s := range f.Slashers {
		if _, err := registry.Link(restaking.KindNcnVaultSlasherTicket, s.Ncn, s.Vault, s.Slasher); err != nil {
			return fmt.Errorf("seed slasher ticket: %w", err)
		}
		capacity := s.MaxPerEpoch
		if _, err := vaults.Link(vault.KindVaultNcnSlasherTicket, func(t *vault.Ticket) { t.MaxPerEpoch = capacity }, s.Vault, s.Ncn, s.Slasher); err != nil {
			return fmt.Errorf("seed vault slasher ticket: %w", err)
		}
	}

	for _, e := range f.OperatorEpochs {
		if _, err := vaults.LinkOperatorEpoch(e.Vault, e.Ncn, e.Slasher, e.Operator, e.Epoch); err != nil {
			return fmt.Errorf("seed operator epoch ticket: %w", err)
		}
	}
	return nil
}

func applyPair(registry *restaking.InMemory, vaults *vault.InMemory, p Pair) error {
	link := func(kind restaking.TicketKind, keys ...domain.Address) error {
		if _, err := registry.Link(kind, keys...); err != nil {
			return fmt.Errorf("seed %s: %w", kind, err)
		}
		return nil
	}
	if !p.Ncn.IsZero() && !p.Operator.IsZero() {
		if err := link(restaking.KindNcnOperatorState, p.Ncn, p.Operator); err != nil {
			return err
		}
	}
	if p.Vault.IsZero() {
		return nil
	}
	if !p.Ncn.IsZero() {
		if err := link(restaking.KindNcnVaultTicket, p.Ncn, p.Vault); err != nil {
			return err
		}
		if _, err := vaults.Link(vault.KindVaultNcnTicket, nil, p.Vault, p.Ncn); err != nil {
			return fmt.Errorf("seed %s: %w", vault.KindVaultNcnTicket, err)
		}
	}
	if !p.Operator.IsZero() {
		if err := link(restaking.KindOperatorVaultTicket, p.Operator, p.Vault); err != nil {
			return err
		}
	}
	return nil
}
