//go:build e2e

package deployment

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"

	"arbiter/internal/clock"
	"arbiter/internal/restaking"
	"arbiter/internal/vault"
	"arbiter/pkg/domain"
)

const (
	epochLength = 1_000
	staked      = 10_000
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Request(ctx context.Context, method, path, role string, body any) error
	Status() int
	Body() string
	Field(path string) (any, error)
	Signer(role string) domain.Address
	Account(name string) domain.Address
	SetAccount(name string, a domain.Address)
	Registry() *restaking.InMemory
	Vaults() *vault.InMemory
	Clock() *clock.Manual
	RestakingProgram() domain.Address
	VaultProgram() domain.Address
}

// RegisterSteps registers deployment and clock step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &deploymentSteps{tc: tc}

	ctx.Step(`^an ncn, an operator and a vault in the registry$`, steps.registryAccounts)
	ctx.Step(`^the resolver program is initialized$`, steps.initializeConfig)
	ctx.Step(`^the ncn policy has veto duration (\d+) and delete duration (\d+)$`, steps.initializePolicy)
	ctx.Step(`^"([^"]*)" registers a resolver administered by "([^"]*)"$`, steps.registerResolver)
	ctx.Step(`^"([^"]*)" registers a slasher administered by "([^"]*)"$`, steps.registerSlasher)
	ctx.Step(`^the slasher is linked to the vault for epoch (\d+)$`, steps.linkSlasher)
	ctx.Step(`^a deployment with veto duration (\d+) and delete duration (\d+)$`, steps.deployment)

	ctx.Step(`^the current slot is (\d+)$`, steps.currentSlotIs)
	ctx.Step(`^(\d+) slots pass$`, steps.slotsPass)
}

type deploymentSteps struct {
	tc TestContext
}

func (s *deploymentSteps) registryAccounts() error {
	s.tc.Registry().PutNcn(s.tc.Account("ncn"), s.tc.Signer("ncn admin"))
	s.tc.Registry().PutOperator(s.tc.Account("operator"), s.tc.Account("operator admin"))
	s.tc.Vaults().PutVault(s.tc.Account("vault"), s.tc.Account("vault admin"))
	return nil
}

func (s *deploymentSteps) initializeConfig(ctx context.Context) error {
	return s.created(ctx, "/v1/config", "config admin", map[string]any{
		"restaking_program": s.tc.RestakingProgram(),
		"vault_program":     s.tc.VaultProgram(),
		"epoch_length":      epochLength,
	})
}

func (s *deploymentSteps) initializePolicy(ctx context.Context, veto, del int) error {
	return s.created(ctx, s.ncnPath("/policy"), "ncn admin", map[string]any{
		"veto_duration":                  veto,
		"delete_slash_proposal_duration": del,
		"resolver_admin":                 s.tc.Signer("policy admin"),
	})
}

func (s *deploymentSteps) registerResolver(ctx context.Context, role, admin string) error {
	return s.register(ctx, "resolver", s.ncnPath("/resolvers"), role, admin)
}

func (s *deploymentSteps) registerSlasher(ctx context.Context, role, admin string) error {
	return s.register(ctx, "slasher", s.ncnPath("/slashers"), role, admin)
}

func (s *deploymentSteps) register(ctx context.Context, name, path, role, admin string) error {
	body := map[string]any{
		"base":  s.tc.Account(name + " base for " + admin),
		"admin": s.tc.Signer(admin),
	}
	if err := s.tc.Request(ctx, http.MethodPost, path, role, body); err != nil {
		return err
	}
	if s.tc.Status() != http.StatusCreated {
		// Rejections are asserted by the scenario.
		return nil
	}
	v, err := s.tc.Field("address")
	if err != nil {
		return err
	}
	addr, err := domain.ParseAddress(fmt.Sprint(v))
	if err != nil {
		return err
	}
	s.tc.SetAccount(name, addr)
	return nil
}

// linkSlasher creates every registry and vault ticket execution checks.
func (s *deploymentSteps) linkSlasher(epoch int) error {
	ncn, operator, vlt, slasher := s.tc.Account("ncn"), s.tc.Account("operator"), s.tc.Account("vault"), s.tc.Account("slasher")

	for _, l := range []struct {
		kind restaking.TicketKind
		keys []domain.Address
	}{
		{restaking.KindNcnOperatorState, []domain.Address{ncn, operator}},
		{restaking.KindNcnVaultTicket, []domain.Address{ncn, vlt}},
		{restaking.KindOperatorVaultTicket, []domain.Address{operator, vlt}},
		{restaking.KindNcnVaultSlasherTicket, []domain.Address{ncn, vlt, slasher}},
	} {
		if _, err := s.tc.Registry().Link(l.kind, l.keys...); err != nil {
			return err
		}
	}

	vaults := s.tc.Vaults()
	if _, err := vaults.Link(vault.KindVaultNcnTicket, nil, vlt, ncn); err != nil {
		return err
	}
	if _, err := vaults.Link(vault.KindVaultOperatorDelegation, func(t *vault.Ticket) { t.Staked = staked }, vlt, operator); err != nil {
		return err
	}
	if _, err := vaults.Link(vault.KindVaultNcnSlasherTicket, nil, vlt, ncn, slasher); err != nil {
		return err
	}
	_, err := vaults.LinkOperatorEpoch(vlt, ncn, slasher, operator, uint64(epoch))
	return err
}

func (s *deploymentSteps) deployment(ctx context.Context, veto, del int) error {
	for _, step := range []func() error{
		s.registryAccounts,
		func() error { return s.initializeConfig(ctx) },
		func() error { return s.initializePolicy(ctx, veto, del) },
		func() error { return s.registerResolver(ctx, "ncn admin", "resolver admin") },
		func() error { return s.expect(http.StatusCreated) },
		func() error { return s.registerSlasher(ctx, "ncn admin", "slasher admin") },
		func() error { return s.expect(http.StatusCreated) },
		func() error { return s.linkSlasher(0) },
	} {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (s *deploymentSteps) currentSlotIs(slot int) error {
	s.tc.Clock().Set(uint64(slot))
	return nil
}

func (s *deploymentSteps) slotsPass(n int) error {
	s.tc.Clock().Advance(uint64(n))
	return nil
}

func (s *deploymentSteps) created(ctx context.Context, path, role string, body any) error {
	if err := s.tc.Request(ctx, http.MethodPost, path, role, body); err != nil {
		return err
	}
	return s.expect(http.StatusCreated)
}

func (s *deploymentSteps) expect(status int) error {
	if s.tc.Status() != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, s.tc.Status(), s.tc.Body())
	}
	return nil
}

func (s *deploymentSteps) ncnPath(suffix string) string {
	return "/v1/ncns/" + s.tc.Account("ncn").String() + suffix
}
