package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbiter/pkg/domain"
	dErrors "arbiter/pkg/domain-errors"
)

func TestErrorCodes(t *testing.T) {
	t.Run("codes are stable", func(t *testing.T) {
		assert.EqualValues(t, 0, ErrorResolverAdminInvalid)
		assert.EqualValues(t, 1, ErrorVetoPeriodEnded)
		assert.EqualValues(t, 2, ErrorProposalCompleted)
		assert.EqualValues(t, 3000, ErrorArithmeticOverflow)
		assert.EqualValues(t, 3001, ErrorArithmeticUnderflow)
		assert.EqualValues(t, 3002, ErrorDivisionByZero)
	})

	t.Run("coded errors carry category and code", func(t *testing.T) {
		err := ErrorVetoPeriodEnded.Errorf("deadline %d", 100)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
		code, ok := CodeOf(err)
		require.True(t, ok)
		assert.Equal(t, ErrorVetoPeriodEnded, code)
		assert.Equal(t, "veto period ended: deadline 100", err.Error())

		var re *Error
		require.ErrorAs(t, err, &re)
		assert.Equal(t, uint32(1), re.ProgramCode())
	})

	t.Run("authorization codes are forbidden", func(t *testing.T) {
		for _, c := range []ErrorCode{ErrorResolverAdminInvalid, ErrorSlasherAdminInvalid, ErrorPolicyAuthorityInvalid, ErrorNcnAdminInvalid, ErrorTicketResolverMismatch} {
			assert.True(t, c.IsAuthorization(), c.String())
		}
		assert.False(t, ErrorVetoPeriodEnded.IsAuthorization())
	})

	t.Run("wrap keeps the collaborator cause", func(t *testing.T) {
		cause := assert.AnError
		err := ErrorVaultSlashFailed.Wrap(cause)
		assert.ErrorIs(t, err, cause)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	t.Run("unknown code still renders", func(t *testing.T) {
		assert.Equal(t, "resolver error 77", ErrorCode(77).String())
		_, ok := CodeOf(assert.AnError)
		assert.False(t, ok)
	})
}

func TestPolicyIndexMonotonicity(t *testing.T) {
	now := time.Now()
	p := NewNcnPolicy(Derived{}, domain.Address{1}, 10, 10, domain.Address{2}, now)

	for want := uint64(0); want < 5; want++ {
		got, err := p.NextResolverIndex(now)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, uint64(5), p.ResolverCount)

	idx, err := p.NextSlasherIndex(now)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), idx, "slashers count independently of resolvers")

	p.ResolverCount = math.MaxUint64
	_, err = p.NextResolverIndex(now)
	assert.True(t, HasCode(err, ErrorArithmeticOverflow))
	assert.Equal(t, uint64(math.MaxUint64), p.ResolverCount)
}

func TestConfigEpoch(t *testing.T) {
	cfg := &Config{EpochLength: 432_000}
	epoch, err := cfg.Epoch(1_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), epoch)

	cfg.EpochLength = 0
	_, err = cfg.Epoch(1)
	assert.True(t, HasCode(err, ErrorDivisionByZero))

	_, err = NewConfig(Derived{}, domain.Address{1}, domain.Address{2}, domain.Address{3}, 0, time.Now())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func TestSlasherAdminRotation(t *testing.T) {
	now := time.Now()
	oldAdmin, newAdmin, delegate := domain.Address{1}, domain.Address{2}, domain.Address{3}

	t.Run("delegate following the admin moves with it", func(t *testing.T) {
		s := NewSlasher(Derived{}, domain.Address{8}, domain.Address{9}, oldAdmin, 0, now)
		assert.Equal(t, oldAdmin, s.DelegateAdmin)
		s.ApplyAdmin(newAdmin, now)
		assert.Equal(t, newAdmin, s.Admin)
		assert.Equal(t, newAdmin, s.DelegateAdmin)
	})

	t.Run("distinct delegate is preserved", func(t *testing.T) {
		s := NewSlasher(Derived{}, domain.Address{8}, domain.Address{9}, oldAdmin, 0, now)
		s.ApplyDelegateAdmin(delegate, now)
		s.ApplyAdmin(newAdmin, now)
		assert.Equal(t, delegate, s.DelegateAdmin)
		assert.True(t, HasCode(s.CheckAdmin(oldAdmin), ErrorSlasherAdminInvalid))
		assert.NoError(t, s.CheckAdmin(newAdmin))
	})

	t.Run("signing seeds end with the bump", func(t *testing.T) {
		s := NewSlasher(Derived{Bump: 251}, domain.Address{8}, domain.Address{9}, oldAdmin, 0, now)
		seeds := s.SigningSeeds()
		require.Len(t, seeds, 3)
		assert.Equal(t, []byte(SeedSlasher), seeds[0])
		assert.Equal(t, []byte{251}, seeds[2])
	})
}

func TestTicketChecks(t *testing.T) {
	now := time.Now()
	ticket := NewProposalTicket(Derived{}, domain.Address{1}, domain.Address{5}, now)
	assert.False(t, ticket.HasResolver())
	assert.True(t, HasCode(ticket.CheckResolver(domain.Address{7}), ErrorTicketResolverMismatch))

	ticket.AssignResolver(domain.Address{7}, now)
	assert.NoError(t, ticket.CheckResolver(domain.Address{7}))
	assert.NoError(t, ticket.CheckSlashProposal(domain.Address{5}))
	assert.True(t, HasCode(ticket.CheckSlashProposal(domain.Address{6}), ErrorTicketProposalMismatch))
}

func TestDerivedAddresses(t *testing.T) {
	program := domain.Address{42}
	ncn, operator, slasher := domain.Address{1}, domain.Address{2}, domain.Address{3}

	p1, err := SlashProposalAddress(program, ncn, operator, slasher)
	require.NoError(t, err)
	p2, err := SlashProposalAddress(program, ncn, slasher, operator)
	require.NoError(t, err)
	assert.NotEqual(t, p1.Address, p2.Address, "key order is part of the identity")

	ticket, err := ProposalTicketAddress(program, ncn, p1.Address)
	require.NoError(t, err)
	assert.NotEqual(t, p1.Address, ticket.Address)

	assert.NoError(t, VerifyAddress("slash proposal", domain.Address{}, p1))
	assert.NoError(t, VerifyAddress("slash proposal", p1.Address, p1))
	assert.True(t, HasCode(VerifyAddress("slash proposal", p2.Address, p1), ErrorInvalidAccountAddress))
}
