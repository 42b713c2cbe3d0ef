package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"arbiter/pkg/domain"
	"arbiter/pkg/testutil"
)

type ProposalSuite struct {
	suite.Suite
	now    time.Time
	policy *NcnPolicy
}

func TestProposalSuite(t *testing.T) {
	suite.Run(t, new(ProposalSuite))
}

func (s *ProposalSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.policy = NewNcnPolicy(Derived{Address: domain.Address{9}}, domain.Address{1}, 100, 50, domain.Address{2}, s.now)
}

func (s *ProposalSuite) open(slot uint64) *SlashProposal {
	p, err := NewSlashProposal(Derived{Address: domain.Address{5}, Bump: 254},
		domain.Address{1}, domain.Address{3}, domain.Address{4}, 100, slot, s.policy, s.now)
	s.Require().NoError(err)
	return p
}

func (s *ProposalSuite) TestDeadlineArithmetic() {
	for _, capture := range []uint64{0, 1, 7_000_000} {
		p := s.open(capture)
		s.Equal(capture, p.CaptureSlot)
		s.Equal(capture+100, p.VetoDeadlineSlot)
		s.Equal(capture+150, p.DeleteDeadlineSlot)
		s.Equal(ProposalStatusOpen, p.Status)

		s.NoError(p.CanVeto(capture+99), "veto allowed just before the deadline")
		s.True(HasCode(p.CanVeto(capture+100), ErrorVetoPeriodEnded), "veto rejected at the deadline")
		s.True(HasCode(p.CanVeto(capture+1000), ErrorVetoPeriodEnded))

		s.True(HasCode(p.CanExecute(capture+99), ErrorVetoPeriodNotEnded))
		s.NoError(p.CanExecute(capture + 100))
	}
}

func (s *ProposalSuite) TestDeadlineOverflow() {
	s.policy.VetoDuration = math.MaxUint64
	_, err := NewSlashProposal(Derived{}, domain.Address{1}, domain.Address{3}, domain.Address{4}, 1, 1, s.policy, s.now)
	s.True(HasCode(err, ErrorArithmeticOverflow))

	s.policy.VetoDuration = 1
	s.policy.DeleteSlashProposalDuration = math.MaxUint64
	_, err = NewSlashProposal(Derived{}, domain.Address{1}, domain.Address{3}, domain.Address{4}, 1, 1, s.policy, s.now)
	s.True(HasCode(err, ErrorArithmeticOverflow))
}

func (s *ProposalSuite) TestMutualExclusion() {
	s.Run("vetoed proposal cannot execute", func() {
		p := s.open(0)
		s.Require().NoError(p.CanVeto(50))
		p.ApplyVeto(s.now)
		s.True(p.Completed())
		s.True(HasCode(p.CanExecute(101), ErrorProposalCompleted))
	})

	s.Run("executed proposal cannot be vetoed", func() {
		p := s.open(0)
		s.Require().NoError(p.CanExecute(101))
		s.Require().NoError(p.ApplyExecution(s.policy.DeleteSlashProposalDuration, s.now))
		// execution needs the window closed, and the window is checked first
		s.True(HasCode(p.CanVeto(101), ErrorVetoPeriodEnded))
		s.Equal(ProposalStatusExecuted, p.Status)
	})
}

func (s *ProposalSuite) TestVetoScenario() {
	t := s.T()
	p := s.open(0)

	testutil.NewScenario(t).
		Given(testutil.AtSlot(0, "a proposal opens with veto duration 100"), func(t *testing.T) {
			assert.Equal(t, uint64(100), p.VetoDeadlineSlot)
		}).
		When(testutil.AtSlot(50, "the resolver vetoes"), func(t *testing.T) {
			require.NoError(t, p.CanVeto(50))
			p.ApplyVeto(s.now)
		}).
		Then("a second veto and a late execute both report completion", func(t *testing.T) {
			assert.Equal(t, ProposalStatusVetoed, p.Status)
			assert.True(t, HasCode(p.CanVeto(51), ErrorProposalCompleted))
			assert.True(t, HasCode(p.CanExecute(101), ErrorProposalCompleted))
			assert.Equal(t, uint64(150), p.DeleteDeadlineSlot, "veto does not extend the delete deadline")
		})
}

func (s *ProposalSuite) TestExecution() {
	s.Run("extends the delete deadline by the grace period", func() {
		p := s.open(0)
		s.Require().NoError(p.ApplyExecution(50, s.now))
		s.Equal(ProposalStatusExecuted, p.Status)
		s.Equal(uint64(200), p.DeleteDeadlineSlot)
		s.Equal(uint64(100), p.Amount)
	})

	s.Run("overflow leaves the proposal open", func() {
		p := s.open(0)
		err := p.ApplyExecution(math.MaxUint64, s.now)
		s.True(HasCode(err, ErrorArithmeticOverflow))
		s.Equal(ProposalStatusOpen, p.Status)
		s.Equal(uint64(150), p.DeleteDeadlineSlot)
	})
}

func (s *ProposalSuite) TestDeleteGating() {
	s.Run("deadline is checked before completion", func() {
		p := s.open(0)
		s.True(HasCode(p.CanDelete(149), ErrorDeleteDeadlineNotReached))
		p.ApplyVeto(s.now)
		s.True(HasCode(p.CanDelete(149), ErrorDeleteDeadlineNotReached))
		s.NoError(p.CanDelete(150))
	})

	s.Run("open proposals are never deletable", func() {
		p := s.open(0)
		s.True(HasCode(p.CanDelete(10_000), ErrorProposalNotCompleted))
	})

	s.Run("executed proposals wait for the extended deadline", func() {
		p := s.open(0)
		s.Require().NoError(p.ApplyExecution(50, s.now))
		s.True(HasCode(p.CanDelete(150), ErrorDeleteDeadlineNotReached))
		s.True(HasCode(p.CanDelete(199), ErrorDeleteDeadlineNotReached))
		s.NoError(p.CanDelete(200))
	})
}
