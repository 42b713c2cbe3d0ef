//go:build e2e

package common

import (
	"fmt"
	"slices"

	"github.com/cucumber/godog"

	"arbiter/pkg/domain"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Status() int
	Body() string
	Field(path string) (any, error)
	Account(name string) domain.Address
	Signer(role string) domain.Address
	AuditActions() []string
}

// RegisterSteps registers response and audit assertions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be (\d+)$`, steps.numericFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be the account "([^"]*)"$`, steps.fieldShouldBeAccount)
	ctx.Step(`^the response field "([^"]*)" should be the signer "([^"]*)"$`, steps.fieldShouldBeSigner)
	ctx.Step(`^the program error code should be (\d+)$`, steps.programCodeShouldBe)
	ctx.Step(`^the audit trail should include "([^"]*)"$`, steps.auditShouldInclude)
	ctx.Step(`^the audit trail should not include "([^"]*)"$`, steps.auditShouldNotInclude)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) statusShouldBe(expected int) error {
	if got := s.tc.Status(); got != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, got, s.tc.Body())
	}
	return nil
}

func (s *commonSteps) fieldShouldBe(field, expected string) error {
	v, err := s.tc.Field(field)
	if err != nil {
		return err
	}
	if got := fmt.Sprint(v); got != expected {
		return fmt.Errorf("expected %s to be %q, got %q", field, expected, got)
	}
	return nil
}

func (s *commonSteps) numericFieldShouldBe(field string, expected int) error {
	v, err := s.tc.Field(field)
	if err != nil {
		return err
	}
	n, ok := v.(float64)
	if !ok || n != float64(expected) {
		return fmt.Errorf("expected %s to be %d, got %v", field, expected, v)
	}
	return nil
}

func (s *commonSteps) fieldShouldBeAccount(field, name string) error {
	return s.fieldShouldBe(field, s.tc.Account(name).String())
}

func (s *commonSteps) fieldShouldBeSigner(field, role string) error {
	return s.fieldShouldBe(field, s.tc.Signer(role).String())
}

func (s *commonSteps) programCodeShouldBe(expected int) error {
	return s.numericFieldShouldBe("code", expected)
}

func (s *commonSteps) auditShouldInclude(action string) error {
	if !slices.Contains(s.tc.AuditActions(), action) {
		return fmt.Errorf("audit trail %v lacks %q", s.tc.AuditActions(), action)
	}
	return nil
}

func (s *commonSteps) auditShouldNotInclude(action string) error {
	if slices.Contains(s.tc.AuditActions(), action) {
		return fmt.Errorf("audit trail %v unexpectedly has %q", s.tc.AuditActions(), action)
	}
	return nil
}
