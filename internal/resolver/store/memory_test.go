package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"arbiter/internal/resolver/models"
	"arbiter/internal/resolver/service"
	"arbiter/internal/resolver/store"
	"arbiter/pkg/domain"
	dErrors "arbiter/pkg/domain-errors"
	txcontext "arbiter/pkg/platform/tx"
)

type InMemorySuite struct {
	contractSuite
	mem *store.InMemory
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.mem = store.NewInMemory()
	s.store = s.mem
	s.tx = s.mem
}

func (s *InMemorySuite) TestReturnedValuesAreCopies() {
	p := s.policy(domain.Address{0xA1})
	s.Require().NoError(s.store.CreatePolicy(s.ctx, p))

	got, err := s.store.FindPolicy(s.ctx, p.Address)
	s.Require().NoError(err)
	got.ResolverCount = 99

	again, err := s.store.FindPolicy(s.ctx, p.Address)
	s.Require().NoError(err)
	s.Zero(again.ResolverCount)
}

func (s *InMemorySuite) TestRunInTxCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	called := false
	err := s.tx.RunInTx(ctx, func(context.Context, service.Store) error {
		called = true
		return nil
	})
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	s.False(called)
}

func (s *InMemorySuite) TestRunInTxDiscardsOnCancelDuringFn() {
	ctx, cancel := context.WithCancel(s.ctx)
	p := s.policy(domain.Address{0xA2})

	err := s.tx.RunInTx(ctx, func(ctx context.Context, store service.Store) error {
		cancel()
		return store.CreatePolicy(ctx, p)
	})
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))

	_, err = s.store.FindPolicy(s.ctx, p.Address)
	s.Error(err)
}

func (s *InMemorySuite) TestAfterCommitHooksFollowOutcome() {
	var committed []string
	queue := func(name string, fail error) error {
		return s.tx.RunInTx(s.ctx, func(ctx context.Context, _ service.Store) error {
			s.True(txcontext.AfterCommit(ctx, func(context.Context) { committed = append(committed, name) }))
			return fail
		})
	}

	s.Require().Error(queue("rolled back", errors.New("vault rejected")))
	s.Empty(committed)

	s.Require().NoError(queue("committed", nil))
	s.Equal([]string{"committed"}, committed)
}

func (s *InMemorySuite) TestProposalFilterUnknownNcnIsEmpty() {
	out, err := s.store.ListProposals(s.ctx, models.ProposalFilter{Ncn: domain.Address{0xEE}})
	s.Require().NoError(err)
	s.Empty(out)
}
