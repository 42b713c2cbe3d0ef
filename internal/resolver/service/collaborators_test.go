package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"arbiter/internal/resolver/models"
	"arbiter/internal/resolver/service"
	"arbiter/internal/resolver/service/mocks"
	"arbiter/internal/vault"
	"arbiter/pkg/domain"
	dErrors "arbiter/pkg/domain-errors"
	audit "arbiter/pkg/platform/audit"
	"arbiter/pkg/platform/audit/publishers/compliance"
)

// CollaboratorSuite replaces one collaborator at a time with a mock while
// keeping the rest of the linked world.
type CollaboratorSuite struct {
	world
	ctrl  *gomock.Controller
	index *mocks.MockDeadlineIndex
}

func TestCollaboratorSuite(t *testing.T) {
	suite.Run(t, new(CollaboratorSuite))
}

func (s *CollaboratorSuite) SetupTest() {
	s.world.SetupTest()
	s.ctrl = gomock.NewController(s.T())
	s.index = mocks.NewMockDeadlineIndex(s.ctrl)
}

func (s *CollaboratorSuite) with(opts ...service.Option) *service.Service {
	return service.New(program, s.store, s.store, s.registry, s.vaults, s.clock, opts...)
}

func (s *CollaboratorSuite) TestAuditFailureAbortsTransition() {
	auditor := mocks.NewMockAuditPublisher(s.ctrl)
	auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
		s.Equal(string(audit.EventSlashProposed), e.Action)
		s.Equal(slasherAdmin.String(), e.Actor)
		s.Equal(uint64(proposeSlot), e.Slot)
		return errors.New("outbox unavailable")
	})
	svc := s.with(service.WithAuditPublisher(auditor))

	_, err := svc.ProposeSlash(s.as(slasherAdmin), service.ProposeCommand{CaseKey: s.key(), Amount: 1})
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable), "got %v", err)

	_, err = s.svc.GetCase(s.ctx, s.key())
	s.requireCode(err, models.ErrorAccountNotFound)
}

func (s *CollaboratorSuite) TestClockFailure() {
	clk := mocks.NewMockSlotClock(s.ctrl)
	clk.EXPECT().CurrentSlot(gomock.Any()).Return(uint64(0), errors.New("rpc timeout"))
	svc := service.New(program, s.store, s.store, s.registry, s.vaults, clk)

	_, err := svc.ProposeSlash(s.as(slasherAdmin), service.ProposeCommand{CaseKey: s.key(), Amount: 1})
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func (s *CollaboratorSuite) TestRegistryUnavailable() {
	registry := mocks.NewMockRegistry(s.ctrl)
	registry.EXPECT().Ncn(gomock.Any(), ncnKey).Return(nil, errors.New("connection refused"))
	svc := service.New(program, s.store, s.store, registry, s.vaults, s.clock)

	_, err := svc.ProposeSlash(s.as(slasherAdmin), service.ProposeCommand{CaseKey: s.key(), Amount: 1})
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	_, ok := models.CodeOf(err)
	s.False(ok, "transport failures carry no resolver code")
}

func (s *CollaboratorSuite) TestSlashInstruction() {
	v := mocks.NewMockVault(s.ctrl)
	v.EXPECT().Vault(gomock.Any(), gomock.Any()).DoAndReturn(s.vaults.Vault).AnyTimes()
	v.EXPECT().Ticket(gomock.Any(), gomock.Any()).DoAndReturn(s.vaults.Ticket).AnyTimes()

	var got vault.SlashInstruction
	v.EXPECT().Slash(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, ix vault.SlashInstruction) error {
		got = ix
		return nil
	})
	svc := service.New(program, s.store, s.store, s.registry, v, s.clock)

	s.propose(321)
	s.clock.Set(proposeSlot + vetoDuration)
	c, err := svc.ExecuteSlash(s.as(slasherAdmin), service.ExecuteCommand{CaseKey: s.key(), Vault: vaultKey})
	s.Require().NoError(err)

	reference, err := models.SlashReference(program, c.Proposal)
	s.Require().NoError(err)
	s.Equal(reference, got.Reference)
	s.NotEqual(c.Proposal.Address, got.Reference, "reference is per proposal instance")
	s.Equal(uint64(321), got.Amount)
	s.Equal(uint64(0), got.Epoch)
	s.Equal(vaultKey, got.Vault)
	s.Equal(program, got.AuthorityProgram)
	authority, err := domain.CreateProgramAddress(got.AuthorityProgram, got.SignerSeeds...)
	s.Require().NoError(err)
	s.Equal(s.slasher.Address, authority, "signer seeds re-derive the slasher")
}

func (s *CollaboratorSuite) TestSlashFailureKeepsProposalOpen() {
	v := mocks.NewMockVault(s.ctrl)
	v.EXPECT().Vault(gomock.Any(), gomock.Any()).DoAndReturn(s.vaults.Vault).AnyTimes()
	v.EXPECT().Ticket(gomock.Any(), gomock.Any()).DoAndReturn(s.vaults.Ticket).AnyTimes()
	v.EXPECT().Slash(gomock.Any(), gomock.Any()).Return(vault.ErrAuthorityInvalid)
	svc := service.New(program, s.store, s.store, s.registry, v, s.clock,
		service.WithDeadlineIndex(s.index),
		service.WithAuditPublisher(compliance.New(s.audit)),
	)

	s.propose(1)
	s.audit.Clear()
	s.clock.Set(proposeSlot + vetoDuration)
	_, err := svc.ExecuteSlash(s.as(slasherAdmin), service.ExecuteCommand{CaseKey: s.key(), Vault: vaultKey})
	s.requireCode(err, models.ErrorVaultSlashFailed)
	s.ErrorIs(err, vault.ErrAuthorityInvalid)

	c, err := s.svc.GetCase(s.ctx, s.key())
	s.Require().NoError(err)
	s.Equal(models.ProposalStatusOpen, c.Proposal.Status)
	s.Equal(uint64(proposeSlot+vetoDuration+deleteDuration), c.Proposal.DeleteDeadlineSlot, "deadline not extended")
	s.Empty(s.audit.Actions(), "no execution recorded")
}

func (s *CollaboratorSuite) TestDeadlineIndexFollowsLifecycle() {
	svc := s.with(service.WithDeadlineIndex(s.index))
	s.propose(1)
	s.assign()

	proposal := s.mustProposal()
	deadline := uint64(proposeSlot + vetoDuration + deleteDuration)
	gomock.InOrder(
		s.index.EXPECT().Schedule(gomock.Any(), proposal, deadline).Return(nil),
		s.index.EXPECT().Remove(gomock.Any(), proposal).Return(errors.New("redis down")),
	)

	_, err := svc.VetoSlash(s.as(resolverAdmin), s.key(), s.resolver.Address)
	s.Require().NoError(err)

	s.clock.Set(deadline)
	s.Require().NoError(svc.DeleteSlashProposal(s.ctx, s.key()), "index failures are not fatal")
}

func (s *CollaboratorSuite) TestFailedOperationsLeaveIndexAlone() {
	svc := s.with(service.WithDeadlineIndex(s.index))
	s.propose(1)

	_, err := svc.VetoSlash(s.as(resolverAdmin), s.key(), s.resolver.Address)
	s.requireCode(err, models.ErrorTicketResolverMismatch)
	s.requireCode(svc.DeleteSlashProposal(s.ctx, s.key()), models.ErrorDeleteDeadlineNotReached)
}
