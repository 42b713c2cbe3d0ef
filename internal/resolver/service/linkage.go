package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"arbiter/internal/resolver/models"
	"arbiter/internal/restaking"
	"arbiter/internal/vault"
	"arbiter/pkg/domain"
	"arbiter/pkg/platform/sentinel"
)

type linkageKey struct {
	ncn, operator, slasher, vault domain.Address
	epoch                         uint64
}

// ticketCheck is one linkage ticket to load and validate.
type ticketCheck struct {
	name     string
	supplied domain.Address
	derive   func() (domain.Address, error)
	check    func(ctx context.Context, address domain.Address) error
}

// verifyLinkage checks every registry and vault ticket that ties the
// slasher, operator and vault to the NCN for epoch. Addresses are derived in
// order and tickets fetched in parallel; the first failure in check order is
// returned.
func (s *Service) verifyLinkage(ctx context.Context, cfg *models.Config, k linkageKey, supplied Linkage) error {
	rp, vp := cfg.RestakingProgram, cfg.VaultProgram

	checks := []ticketCheck{
		{
			name:     string(restaking.KindNcnOperatorState),
			supplied: supplied.NcnOperatorState,
			derive:   func() (domain.Address, error) { return restaking.NcnOperatorStateAddress(rp, k.ncn, k.operator) },
			check:    s.registryTicket(rp, restaking.KindNcnOperatorState),
		},
		{
			name:     string(restaking.KindNcnVaultTicket),
			supplied: supplied.NcnVaultTicket,
			derive:   func() (domain.Address, error) { return restaking.NcnVaultTicketAddress(rp, k.ncn, k.vault) },
			check:    s.registryTicket(rp, restaking.KindNcnVaultTicket),
		},
		{
			name:     string(restaking.KindOperatorVaultTicket),
			supplied: supplied.OperatorVaultTicket,
			derive:   func() (domain.Address, error) { return restaking.OperatorVaultTicketAddress(rp, k.operator, k.vault) },
			check:    s.registryTicket(rp, restaking.KindOperatorVaultTicket),
		},
		{
			name:     string(restaking.KindNcnVaultSlasherTicket),
			supplied: supplied.NcnVaultSlasherTicket,
			derive: func() (domain.Address, error) {
				return restaking.NcnVaultSlasherTicketAddress(rp, k.ncn, k.vault, k.slasher)
			},
			check: s.registryTicket(rp, restaking.KindNcnVaultSlasherTicket),
		},
		{
			name:     string(vault.KindVaultNcnTicket),
			supplied: supplied.VaultNcnTicket,
			derive:   func() (domain.Address, error) { return vault.VaultNcnTicketAddress(vp, k.vault, k.ncn) },
			check:    s.vaultTicket(vp, vault.KindVaultNcnTicket, nil),
		},
		{
			name:     string(vault.KindVaultOperatorDelegation),
			supplied: supplied.VaultOperatorDelegation,
			derive:   func() (domain.Address, error) { return vault.VaultOperatorDelegationAddress(vp, k.vault, k.operator) },
			check:    s.vaultTicket(vp, vault.KindVaultOperatorDelegation, nil),
		},
		{
			name:     string(vault.KindVaultNcnSlasherTicket),
			supplied: supplied.VaultNcnSlasherTicket,
			derive: func() (domain.Address, error) {
				return vault.VaultNcnSlasherTicketAddress(vp, k.vault, k.ncn, k.slasher)
			},
			check: s.vaultTicket(vp, vault.KindVaultNcnSlasherTicket, nil),
		},
		{
			name:     string(vault.KindVaultNcnSlasherOperatorTicket),
			supplied: supplied.VaultNcnSlasherOperatorTicket,
			derive: func() (domain.Address, error) {
				return vault.VaultNcnSlasherOperatorTicketAddress(vp, k.vault, k.ncn, k.slasher, k.operator, k.epoch)
			},
			check: s.vaultTicket(vp, vault.KindVaultNcnSlasherOperatorTicket, &k.epoch),
		},
	}

	addresses := make([]domain.Address, len(checks))
	for i, c := range checks {
		address, err := c.derive()
		if err != nil {
			return models.ErrorInvalidAccountAddress.Wrap(err)
		}
		if !c.supplied.IsZero() && c.supplied != address {
			return models.ErrorInvalidAccountAddress.Errorf("%s %s, expected %s", c.name, c.supplied, address)
		}
		addresses[i] = address
	}

	failures := make([]error, len(checks))
	var g errgroup.Group
	for i, c := range checks {
		g.Go(func() error {
			failures[i] = c.check(ctx, addresses[i])
			return nil
		})
	}
	_ = g.Wait()
	for _, err := range failures {
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) registryTicket(owner domain.Address, kind restaking.TicketKind) func(context.Context, domain.Address) error {
	return func(ctx context.Context, address domain.Address) error {
		t, err := s.registry.Ticket(ctx, address)
		if err != nil {
			return linkageErr(err, string(kind), address)
		}
		switch {
		case t.Owner != owner:
			return models.ErrorInvalidAccountOwner.Errorf("%s %s owned by %s", kind, address, t.Owner)
		case t.Kind != kind:
			return models.ErrorLinkageInvalid.Errorf("%s %s is a %s", kind, address, t.Kind)
		case !t.Active:
			return models.ErrorLinkageInvalid.Errorf("%s %s is inactive", kind, address)
		}
		return nil
	}
}

func (s *Service) vaultTicket(owner domain.Address, kind vault.TicketKind, epoch *uint64) func(context.Context, domain.Address) error {
	return func(ctx context.Context, address domain.Address) error {
		t, err := s.vault.Ticket(ctx, address)
		if err != nil {
			return linkageErr(err, string(kind), address)
		}
		switch {
		case t.Owner != owner:
			return models.ErrorInvalidAccountOwner.Errorf("%s %s owned by %s", kind, address, t.Owner)
		case t.Kind != kind:
			return models.ErrorLinkageInvalid.Errorf("%s %s is a %s", kind, address, t.Kind)
		case !t.Active:
			return models.ErrorLinkageInvalid.Errorf("%s %s is inactive", kind, address)
		case epoch != nil && t.Epoch != *epoch:
			return models.ErrorLinkageInvalid.Errorf("%s %s is for epoch %d, want %d", kind, address, t.Epoch, *epoch)
		}
		return nil
	}
}

func linkageErr(err error, kind string, address domain.Address) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.ErrorLinkageInvalid.Errorf("%s %s not found", kind, address)
	}
	return registryErr(err, kind, address)
}
