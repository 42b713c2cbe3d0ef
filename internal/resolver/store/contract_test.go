package store_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"arbiter/internal/resolver/models"
	"arbiter/internal/resolver/service"
	"arbiter/pkg/domain"
	"arbiter/pkg/platform/sentinel"
)

var program = domain.Address{0x70}

// contractSuite holds the behavior every service.Store must share. Backends
// embed it and set store and tx in SetupTest.
type contractSuite struct {
	suite.Suite
	ctx   context.Context
	store service.Store
	tx    service.Tx
	now   time.Time
}

func (s *contractSuite) derived(fn func() (models.Derived, error)) models.Derived {
	d, err := fn()
	s.Require().NoError(err)
	return d
}

func (s *contractSuite) policy(ncn domain.Address) *models.NcnPolicy {
	at := s.derived(func() (models.Derived, error) { return models.NcnPolicyAddress(program, ncn) })
	return models.NewNcnPolicy(at, ncn, 10, 20, domain.Address{0x0A}, s.now)
}

func (s *contractSuite) openCase(ncn, operator, slasher domain.Address, slot uint64) (*models.SlashProposal, *models.ProposalTicket) {
	pAt := s.derived(func() (models.Derived, error) {
		return models.SlashProposalAddress(program, ncn, operator, slasher)
	})
	tAt := s.derived(func() (models.Derived, error) { return models.ProposalTicketAddress(program, ncn, pAt.Address) })
	p, err := models.NewSlashProposal(pAt, ncn, operator, slasher, 1_000, slot, s.policy(ncn), s.now)
	s.Require().NoError(err)
	return p, models.NewProposalTicket(tAt, ncn, p.Address, s.now)
}

func (s *contractSuite) TestConfigCreateOnce() {
	at := s.derived(func() (models.Derived, error) { return models.ConfigAddress(program) })
	cfg, err := models.NewConfig(at, domain.Address{1}, domain.Address{2}, domain.Address{3}, 32, s.now)
	s.Require().NoError(err)

	s.Require().NoError(s.store.CreateConfig(s.ctx, cfg))
	s.ErrorIs(s.store.CreateConfig(s.ctx, cfg), sentinel.ErrAlreadyUsed)

	got, err := s.store.FindConfig(s.ctx, at.Address)
	s.Require().NoError(err)
	s.Equal(cfg.Admin, got.Admin)
	s.Equal(cfg.VaultProgram, got.VaultProgram)
	s.Equal(uint64(32), got.EpochLength)
	s.Equal(at.Bump, got.Bump)

	_, err = s.store.FindConfig(s.ctx, domain.Address{0xFF})
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *contractSuite) TestPolicyCounters() {
	p := s.policy(domain.Address{0x11})
	s.Require().NoError(s.store.CreatePolicy(s.ctx, p))

	_, err := p.NextResolverIndex(s.now)
	s.Require().NoError(err)
	_, err = p.NextSlasherIndex(s.now)
	s.Require().NoError(err)
	_, err = p.NextSlasherIndex(s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.UpdatePolicy(s.ctx, p))

	got, err := s.store.FindPolicy(s.ctx, p.Address)
	s.Require().NoError(err)
	s.Equal(uint64(1), got.ResolverCount)
	s.Equal(uint64(2), got.SlasherCount)
	s.Equal(uint64(10), got.VetoDuration)
	s.Equal(uint64(20), got.DeleteSlashProposalDuration)

	missing := s.policy(domain.Address{0x12})
	s.ErrorIs(s.store.UpdatePolicy(s.ctx, missing), sentinel.ErrNotFound)
}

func (s *contractSuite) TestListsOrderedByIndex() {
	ncn := domain.Address{0x21}
	for i, base := range []domain.Address{{0x33}, {0x31}, {0x32}} {
		rAt := s.derived(func() (models.Derived, error) { return models.ResolverAddress(program, base) })
		idx := uint64(2 - i)
		s.Require().NoError(s.store.CreateResolver(s.ctx, models.NewResolver(rAt, base, ncn, domain.Address{9}, idx, s.now)))

		slAt := s.derived(func() (models.Derived, error) { return models.SlasherAddress(program, base) })
		s.Require().NoError(s.store.CreateSlasher(s.ctx, models.NewSlasher(slAt, base, ncn, domain.Address{9}, idx, s.now)))
	}

	resolvers, err := s.store.ListResolvers(s.ctx, ncn)
	s.Require().NoError(err)
	s.Require().Len(resolvers, 3)
	for i, r := range resolvers {
		s.Equal(uint64(i), r.Index)
	}

	slashers, err := s.store.ListSlashers(s.ctx, ncn)
	s.Require().NoError(err)
	s.Require().Len(slashers, 3)
	s.Equal(uint64(0), slashers[0].Index)
	s.Equal(slashers[0].Admin, slashers[0].DelegateAdmin)

	none, err := s.store.ListResolvers(s.ctx, domain.Address{0x22})
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *contractSuite) TestSlasherUpdate() {
	base := domain.Address{0x41}
	at := s.derived(func() (models.Derived, error) { return models.SlasherAddress(program, base) })
	sl := models.NewSlasher(at, base, domain.Address{0x42}, domain.Address{1}, 0, s.now)
	s.Require().NoError(s.store.CreateSlasher(s.ctx, sl))

	sl.ApplyDelegateAdmin(domain.Address{2}, s.now)
	s.Require().NoError(s.store.UpdateSlasher(s.ctx, sl))

	got, err := s.store.FindSlasher(s.ctx, at.Address)
	s.Require().NoError(err)
	s.Equal(domain.Address{1}, got.Admin)
	s.Equal(domain.Address{2}, got.DelegateAdmin)
}

func (s *contractSuite) TestCaseLifecycle() {
	p, t := s.openCase(domain.Address{0x51}, domain.Address{0x52}, domain.Address{0x53}, 100)
	s.Require().NoError(s.store.CreateCase(s.ctx, p, t))
	s.ErrorIs(s.store.CreateCase(s.ctx, p, t), sentinel.ErrAlreadyUsed)

	gotTicket, err := s.store.FindTicket(s.ctx, t.Address)
	s.Require().NoError(err)
	s.False(gotTicket.HasResolver())
	s.Equal(p.Address, gotTicket.SlashProposal)

	gotTicket.AssignResolver(domain.Address{0x54}, s.now)
	s.Require().NoError(s.store.UpdateTicket(s.ctx, gotTicket))

	p.ApplyVeto(s.now)
	s.Require().NoError(s.store.UpdateProposal(s.ctx, p))

	gotProposal, err := s.store.FindProposal(s.ctx, p.Address)
	s.Require().NoError(err)
	s.Equal(models.ProposalStatusVetoed, gotProposal.Status)
	s.Equal(uint64(100), gotProposal.CaptureSlot)
	s.Equal(uint64(110), gotProposal.VetoDeadlineSlot)
	s.Equal(uint64(130), gotProposal.DeleteDeadlineSlot)
	s.Equal(uint64(1_000), gotProposal.Amount)

	gotTicket, err = s.store.FindTicket(s.ctx, t.Address)
	s.Require().NoError(err)
	s.Equal(domain.Address{0x54}, gotTicket.Resolver)

	s.Require().NoError(s.store.DeleteCase(s.ctx, p.Address, t.Address))
	_, err = s.store.FindProposal(s.ctx, p.Address)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindTicket(s.ctx, t.Address)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.DeleteCase(s.ctx, p.Address, t.Address), sentinel.ErrNotFound)
}

func (s *contractSuite) TestLargeValuesSurvive() {
	p, t := s.openCase(domain.Address{0x61}, domain.Address{0x62}, domain.Address{0x63}, 1<<63)
	p.Amount = ^uint64(0)
	s.Require().NoError(s.store.CreateCase(s.ctx, p, t))

	got, err := s.store.FindProposal(s.ctx, p.Address)
	s.Require().NoError(err)
	s.Equal(^uint64(0), got.Amount)
	s.Equal(uint64(1<<63), got.CaptureSlot)
}

func (s *contractSuite) TestListProposalsFilters() {
	ncn := domain.Address{0x71}
	first, firstTicket := s.openCase(ncn, domain.Address{0x72}, domain.Address{0x73}, 50)
	second, secondTicket := s.openCase(ncn, domain.Address{0x74}, domain.Address{0x73}, 10)
	other, otherTicket := s.openCase(domain.Address{0x75}, domain.Address{0x72}, domain.Address{0x73}, 5)
	s.Require().NoError(s.store.CreateCase(s.ctx, first, firstTicket))
	s.Require().NoError(s.store.CreateCase(s.ctx, second, secondTicket))
	s.Require().NoError(s.store.CreateCase(s.ctx, other, otherTicket))

	s.Require().NoError(first.ApplyExecution(0, s.now))
	s.Require().NoError(s.store.UpdateProposal(s.ctx, first))

	byNcn, err := s.store.ListProposals(s.ctx, models.ProposalFilter{Ncn: ncn})
	s.Require().NoError(err)
	s.Require().Len(byNcn, 2)
	s.Equal(second.Address, byNcn[0].Address, "ordered by capture slot")

	executed, err := s.store.ListProposals(s.ctx, models.ProposalFilter{
		Statuses: []models.ProposalStatus{models.ProposalStatusExecuted, models.ProposalStatusVetoed},
	})
	s.Require().NoError(err)
	s.Require().Len(executed, 1)
	s.Equal(first.Address, executed[0].Address)

	limited, err := s.store.ListProposals(s.ctx, models.ProposalFilter{Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(limited, 1)
	s.Equal(other.Address, limited[0].Address)

	byOperator, err := s.store.ListProposals(s.ctx, models.ProposalFilter{Operator: domain.Address{0x72}})
	s.Require().NoError(err)
	s.Len(byOperator, 2)
}

func (s *contractSuite) TestRunInTxRollsBack() {
	p := s.policy(domain.Address{0x81})
	err := s.tx.RunInTx(s.ctx, func(ctx context.Context, store service.Store) error {
		if err := store.CreatePolicy(ctx, p); err != nil {
			return err
		}
		return sentinel.ErrInvalidState
	})
	s.ErrorIs(err, sentinel.ErrInvalidState)

	_, err = s.store.FindPolicy(s.ctx, p.Address)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *contractSuite) TestRunInTxCommits() {
	p, t := s.openCase(domain.Address{0x91}, domain.Address{0x92}, domain.Address{0x93}, 1)
	err := s.tx.RunInTx(s.ctx, func(ctx context.Context, store service.Store) error {
		if err := store.CreateCase(ctx, p, t); err != nil {
			return err
		}
		found, err := store.FindProposal(ctx, p.Address)
		if err != nil {
			return err
		}
		found.ApplyVeto(s.now)
		return store.UpdateProposal(ctx, found)
	})
	s.Require().NoError(err)

	got, err := s.store.FindProposal(s.ctx, p.Address)
	s.Require().NoError(err)
	s.Equal(models.ProposalStatusVetoed, got.Status)
}
