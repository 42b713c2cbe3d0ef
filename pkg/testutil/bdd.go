package testutil

import (
	"fmt"
	"testing"
)

// Scenario runs Given/When/Then steps as subtests in order. Once a step
// fails the remaining steps are skipped, since they would only report
// follow-on failures.
type Scenario struct {
	t      *testing.T
	failed bool
}

func NewScenario(t *testing.T) *Scenario {
	return &Scenario{t: t}
}

func (s *Scenario) Given(desc string, fn func(t *testing.T)) *Scenario {
	s.t.Helper()
	return s.step("Given "+desc, fn)
}

func (s *Scenario) When(desc string, fn func(t *testing.T)) *Scenario {
	s.t.Helper()
	return s.step("When "+desc, fn)
}

func (s *Scenario) Then(desc string, fn func(t *testing.T)) *Scenario {
	s.t.Helper()
	return s.step("Then "+desc, fn)
}

func (s *Scenario) step(name string, fn func(t *testing.T)) *Scenario {
	s.t.Helper()
	ok := s.t.Run(name, func(t *testing.T) {
		if s.failed {
			t.Skip("earlier step failed")
		}
		fn(t)
	})
	s.failed = s.failed || !ok
	return s
}

// AtSlot prefixes a step description with the slot it happens at.
func AtSlot(slot uint64, desc string) string {
	return fmt.Sprintf("at slot %d %s", slot, desc)
}
