package restaking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"arbiter/pkg/domain"
	"arbiter/pkg/platform/sentinel"
)

type InMemorySuite struct {
	suite.Suite
	ctx      context.Context
	program  domain.Address
	registry *InMemory
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.ctx = context.Background()
	s.program = domain.Address{0xAA}
	s.registry = NewInMemory(s.program)
}

func (s *InMemorySuite) TestAccounts() {
	s.registry.PutNcn(domain.Address{1}, domain.Address{2})
	s.registry.PutOperator(domain.Address{3}, domain.Address{4})

	ncn, err := s.registry.Ncn(s.ctx, domain.Address{1})
	s.Require().NoError(err)
	s.Equal(s.program, ncn.Owner)
	s.Equal(domain.Address{2}, ncn.Admin)

	_, err = s.registry.Operator(s.ctx, domain.Address{1})
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemorySuite) TestLinkDerivesAddresses() {
	ncn, vault, slasher := domain.Address{1}, domain.Address{5}, domain.Address{6}

	t, err := s.registry.Link(KindNcnVaultSlasherTicket, ncn, vault, slasher)
	s.Require().NoError(err)

	want, err := NcnVaultSlasherTicketAddress(s.program, ncn, vault, slasher)
	s.Require().NoError(err)
	s.Equal(want, t.Address)

	got, err := s.registry.Ticket(s.ctx, want)
	s.Require().NoError(err)
	s.True(got.Active)
	s.Equal(KindNcnVaultSlasherTicket, got.Kind)

	s.Require().NoError(s.registry.Deactivate(want))
	got, err = s.registry.Ticket(s.ctx, want)
	s.Require().NoError(err)
	s.False(got.Active)

	s.ErrorIs(s.registry.Deactivate(domain.Address{99}), sentinel.ErrNotFound)
}

func (s *InMemorySuite) TestEveryTicketKindDerives() {
	ncn, operator, vault, slasher := domain.Address{1}, domain.Address{3}, domain.Address{5}, domain.Address{6}

	derivers := map[TicketKind]func() (domain.Address, error){
		KindNcnOperatorState: func() (domain.Address, error) { return NcnOperatorStateAddress(s.program, ncn, operator) },
		KindNcnVaultTicket:   func() (domain.Address, error) { return NcnVaultTicketAddress(s.program, ncn, vault) },
		KindOperatorVaultTicket: func() (domain.Address, error) {
			return OperatorVaultTicketAddress(s.program, operator, vault)
		},
		KindNcnVaultSlasherTicket: func() (domain.Address, error) {
			return NcnVaultSlasherTicketAddress(s.program, ncn, vault, slasher)
		},
	}

	seen := make(map[domain.Address]TicketKind)
	for kind, derive := range derivers {
		s.Run(string(kind), func() {
			s.LessOrEqual(len(kind), domain.MaxSeedLen)
			addr, err := derive()
			s.Require().NoError(err)
			_, dup := seen[addr]
			s.False(dup, "address collides with %s", seen[addr])
			seen[addr] = kind
		})
	}
}
