//go:build e2e

package dispute

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"

	"arbiter/internal/vault"
	"arbiter/pkg/domain"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Request(ctx context.Context, method, path, role string, body any) error
	Status() int
	Body() string
	Field(path string) (any, error)
	Account(name string) domain.Address
	SetAccount(name string, a domain.Address)
	Vaults() *vault.InMemory
	VaultProgram() domain.Address
}

// RegisterSteps registers dispute lifecycle step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &disputeSteps{tc: tc}

	ctx.Step(`^"([^"]*)" proposes a slash of (\d+)$`, steps.propose)
	ctx.Step(`^"([^"]*)" assigns the resolver$`, steps.assignResolver)
	ctx.Step(`^"([^"]*)" vetoes the slash$`, steps.veto)
	ctx.Step(`^"([^"]*)" executes the slash$`, steps.execute)
	ctx.Step(`^"([^"]*)" executes the slash without signing$`, steps.executeUnsigned)
	ctx.Step(`^anyone deletes the proposal$`, steps.deleteProposal)
	ctx.Step(`^I fetch the proposal$`, steps.fetchProposal)

	ctx.Step(`^the proposal status should be "([^"]*)"$`, steps.statusShouldBe)
	ctx.Step(`^the proposal should no longer exist$`, steps.shouldNotExist)
	ctx.Step(`^the operator's delegated stake should be (\d+)$`, steps.stakeShouldBe)
}

type disputeSteps struct {
	tc TestContext
}

func (s *disputeSteps) propose(ctx context.Context, role string, amount int) error {
	err := s.tc.Request(ctx, http.MethodPost, "/v1/proposals", role, map[string]any{
		"ncn":      s.tc.Account("ncn"),
		"operator": s.tc.Account("operator"),
		"slasher":  s.tc.Account("slasher"),
		"amount":   amount,
	})
	if err != nil || s.tc.Status() != http.StatusCreated {
		return err
	}
	v, err := s.tc.Field("proposal.address")
	if err != nil {
		return err
	}
	addr, err := domain.ParseAddress(fmt.Sprint(v))
	if err != nil {
		return err
	}
	s.tc.SetAccount("proposal", addr)
	return nil
}

func (s *disputeSteps) assignResolver(ctx context.Context, role string) error {
	return s.tc.Request(ctx, http.MethodPut, s.proposalPath("/resolver"), role, map[string]any{
		"resolver": s.tc.Account("resolver"),
	})
}

func (s *disputeSteps) veto(ctx context.Context, role string) error {
	return s.tc.Request(ctx, http.MethodPost, s.proposalPath("/veto"), role, map[string]any{
		"resolver": s.tc.Account("resolver"),
	})
}

func (s *disputeSteps) execute(ctx context.Context, role string) error {
	return s.tc.Request(ctx, http.MethodPost, s.proposalPath("/execute"), role, map[string]any{
		"vault": s.tc.Account("vault"),
	})
}

func (s *disputeSteps) executeUnsigned(ctx context.Context, _ string) error {
	return s.execute(ctx, "")
}

func (s *disputeSteps) deleteProposal(ctx context.Context) error {
	return s.tc.Request(ctx, http.MethodDelete, s.proposalPath(""), "", nil)
}

func (s *disputeSteps) fetchProposal(ctx context.Context) error {
	return s.tc.Request(ctx, http.MethodGet, s.proposalPath(""), "", nil)
}

func (s *disputeSteps) statusShouldBe(ctx context.Context, expected string) error {
	if err := s.fetchProposal(ctx); err != nil {
		return err
	}
	if s.tc.Status() != http.StatusOK {
		return fmt.Errorf("fetch proposal: status %d: %s", s.tc.Status(), s.tc.Body())
	}
	v, err := s.tc.Field("proposal.status")
	if err != nil {
		return err
	}
	if got := fmt.Sprint(v); got != expected {
		return fmt.Errorf("expected proposal status %q, got %q", expected, got)
	}
	return nil
}

func (s *disputeSteps) shouldNotExist(ctx context.Context) error {
	if err := s.fetchProposal(ctx); err != nil {
		return err
	}
	if s.tc.Status() != http.StatusNotFound {
		return fmt.Errorf("expected 404 for deleted proposal, got %d: %s", s.tc.Status(), s.tc.Body())
	}
	return nil
}

func (s *disputeSteps) stakeShouldBe(ctx context.Context, expected int) error {
	addr, err := vault.VaultOperatorDelegationAddress(s.tc.VaultProgram(), s.tc.Account("vault"), s.tc.Account("operator"))
	if err != nil {
		return err
	}
	t, err := s.tc.Vaults().Ticket(ctx, addr)
	if err != nil {
		return err
	}
	if t.Staked != uint64(expected) {
		return fmt.Errorf("expected delegated stake %d, got %d", expected, t.Staked)
	}
	return nil
}

func (s *disputeSteps) proposalPath(suffix string) string {
	return "/v1/proposals/" + s.tc.Account("proposal").String() + suffix
}
