//go:build e2e

package e2e

import (
	"github.com/cucumber/godog"

	"arbiter/e2e/steps/common"
	"arbiter/e2e/steps/deployment"
	"arbiter/e2e/steps/dispute"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, w *World) {
	// Responses, status codes and the audit trail
	common.RegisterSteps(ctx, w)

	// Accounts, registry links and the slot clock
	deployment.RegisterSteps(ctx, w)

	// Propose, assign, veto, execute, delete
	dispute.RegisterSteps(ctx, w)
}
