package service_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"arbiter/internal/clock"
	"arbiter/internal/resolver/metrics"
	"arbiter/internal/resolver/models"
	"arbiter/internal/resolver/service"
	"arbiter/internal/resolver/store"
	"arbiter/internal/restaking"
	"arbiter/internal/vault"
	"arbiter/pkg/domain"
	"arbiter/pkg/platform/audit/publishers/compliance"
	"arbiter/pkg/platform/audit/publishers/security"
	auditmemory "arbiter/pkg/platform/audit/store/memory"
	"arbiter/pkg/requestcontext"
)

const (
	vetoDuration   = 100
	deleteDuration = 50
	epochLength    = 1_000
	staked         = 10_000
	proposeSlot    = 10
)

var (
	program          = domain.Address{0xF0}
	restakingProgram = domain.Address{0xF1}
	vaultProgram     = domain.Address{0xF2}

	configAdmin   = domain.Address{0xA0}
	ncnAdmin      = domain.Address{0xA1}
	policyAdmin   = domain.Address{0xA2}
	slasherAdmin  = domain.Address{0xA3}
	resolverAdmin = domain.Address{0xA4}
	stranger      = domain.Address{0xAF}

	ncnKey      = domain.Address{0xB1}
	operatorKey = domain.Address{0xB2}
	vaultKey    = domain.Address{0xB3}
	slasherBase = domain.Address{0xB4}
	judgeBase   = domain.Address{0xB5}
)

// world is a fully linked deployment: config, one NCN policy, one resolver,
// one slasher, and every registry and vault ticket for epoch 0.
type world struct {
	suite.Suite

	ctx      context.Context
	store    *store.InMemory
	registry *restaking.InMemory
	vaults   *vault.InMemory
	clock    *clock.Manual
	audit    *auditmemory.InMemoryStore
	secStore *auditmemory.InMemoryStore
	security *security.Publisher
	svc      *service.Service

	policy   *models.NcnPolicy
	slasher  *models.Slasher
	resolver *models.Resolver
}

func (w *world) SetupTest() {
	w.ctx = context.Background()
	w.store = store.NewInMemory()
	w.registry = restaking.NewInMemory(restakingProgram)
	w.vaults = vault.NewInMemory(vaultProgram)
	w.clock = clock.NewManual(0)
	w.audit = auditmemory.NewInMemoryStore()
	w.secStore = auditmemory.NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w.security = security.New(w.secStore, security.WithLogger(logger))

	w.svc = service.New(program, w.store, w.store, w.registry, w.vaults, w.clock,
		service.WithLogger(logger),
		service.WithMetrics(metrics.New(prometheus.NewRegistry())),
		service.WithAuditPublisher(compliance.New(w.audit)),
		service.WithSecurityPublisher(w.security),
	)

	w.registry.PutNcn(ncnKey, ncnAdmin)
	w.registry.PutOperator(operatorKey, domain.Address{0xC0})
	w.vaults.PutVault(vaultKey, domain.Address{0xC1})

	var err error
	_, err = w.svc.InitializeConfig(w.as(configAdmin), service.InitializeConfigCommand{
		RestakingProgram: restakingProgram,
		VaultProgram:     vaultProgram,
		EpochLength:      epochLength,
	})
	w.Require().NoError(err)

	w.policy, err = w.svc.InitializeNcnPolicy(w.as(ncnAdmin), service.InitializePolicyCommand{
		Ncn:                         ncnKey,
		VetoDuration:                vetoDuration,
		DeleteSlashProposalDuration: deleteDuration,
		ResolverAdmin:               policyAdmin,
	})
	w.Require().NoError(err)

	w.resolver, err = w.svc.InitializeResolver(w.as(ncnAdmin), service.RegisterCommand{Ncn: ncnKey, Base: judgeBase, Admin: resolverAdmin})
	w.Require().NoError(err)
	w.slasher, err = w.svc.InitializeSlasher(w.as(ncnAdmin), service.RegisterCommand{Ncn: ncnKey, Base: slasherBase, Admin: slasherAdmin})
	w.Require().NoError(err)

	w.link(0)
	w.audit.Clear()
	w.clock.Set(proposeSlot)
}

// link creates every ticket execute checks, with the operator ticket for
// epoch.
func (w *world) link(epoch uint64) {
	sl := w.slasher.Address
	for _, l := range []struct {
		kind restaking.TicketKind
		keys []domain.Address
	}{
		{restaking.KindNcnOperatorState, []domain.Address{ncnKey, operatorKey}},
		{restaking.KindNcnVaultTicket, []domain.Address{ncnKey, vaultKey}},
		{restaking.KindOperatorVaultTicket, []domain.Address{operatorKey, vaultKey}},
		{restaking.KindNcnVaultSlasherTicket, []domain.Address{ncnKey, vaultKey, sl}},
	} {
		_, err := w.registry.Link(l.kind, l.keys...)
		w.Require().NoError(err)
	}

	_, err := w.vaults.Link(vault.KindVaultNcnTicket, nil, vaultKey, ncnKey)
	w.Require().NoError(err)
	_, err = w.vaults.Link(vault.KindVaultOperatorDelegation, func(t *vault.Ticket) { t.Staked = staked }, vaultKey, operatorKey)
	w.Require().NoError(err)
	_, err = w.vaults.Link(vault.KindVaultNcnSlasherTicket, nil, vaultKey, ncnKey, sl)
	w.Require().NoError(err)
	_, err = w.vaults.LinkOperatorEpoch(vaultKey, ncnKey, sl, operatorKey, epoch)
	w.Require().NoError(err)
}

func (w *world) as(signer domain.Address) context.Context {
	return requestcontext.WithSigner(w.ctx, signer)
}

func (w *world) key() service.CaseKey {
	return service.CaseKey{Ncn: ncnKey, Operator: operatorKey, Slasher: w.slasher.Address}
}

func (w *world) propose(amount uint64) *models.Case {
	c, err := w.svc.ProposeSlash(w.as(slasherAdmin), service.ProposeCommand{CaseKey: w.key(), Amount: amount})
	w.Require().NoError(err)
	return c
}

func (w *world) assign() {
	_, err := w.svc.SetResolver(w.as(policyAdmin), w.key(), w.resolver.Address)
	w.Require().NoError(err)
}

func (w *world) execute() (*models.Case, error) {
	return w.svc.ExecuteSlash(w.as(slasherAdmin), service.ExecuteCommand{CaseKey: w.key(), Vault: vaultKey})
}

func (w *world) veto() (*models.Case, error) {
	return w.svc.VetoSlash(w.as(resolverAdmin), w.key(), w.resolver.Address)
}

func (w *world) requireCode(err error, code models.ErrorCode) {
	w.T().Helper()
	w.Require().Error(err)
	got, ok := models.CodeOf(err)
	w.Require().True(ok, "expected resolver error %d, got %v", code, err)
	w.Equal(code, got, "got %v", err)
}

func (w *world) delegationStake() uint64 {
	addr, err := vault.VaultOperatorDelegationAddress(vaultProgram, vaultKey, operatorKey)
	w.Require().NoError(err)
	t, err := w.vaults.Ticket(w.ctx, addr)
	w.Require().NoError(err)
	return t.Staked
}

func (w *world) mustProposal() domain.Address {
	at, err := models.SlashProposalAddress(program, ncnKey, operatorKey, w.slasher.Address)
	w.Require().NoError(err)
	return at.Address
}
