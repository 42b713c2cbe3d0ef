package service

import (
	"context"

	"arbiter/internal/resolver/models"
	"arbiter/pkg/domain"
	dErrors "arbiter/pkg/domain-errors"
)

const maxListLimit = 500

func (s *Service) GetConfig(ctx context.Context) (*models.Config, error) {
	return s.loadConfig(ctx, s.store)
}

func (s *Service) GetPolicy(ctx context.Context, ncn domain.Address) (*models.NcnPolicy, error) {
	return s.loadPolicy(ctx, s.store, ncn)
}

func (s *Service) GetResolver(ctx context.Context, address domain.Address) (*models.Resolver, error) {
	r, err := s.store.FindResolver(ctx, address)
	if err != nil {
		return nil, accountErr(err, "resolver", address)
	}
	return r, nil
}

func (s *Service) GetSlasher(ctx context.Context, address domain.Address) (*models.Slasher, error) {
	sl, err := s.store.FindSlasher(ctx, address)
	if err != nil {
		return nil, accountErr(err, "slasher", address)
	}
	return sl, nil
}

// ListResolvers returns the NCN's resolvers ordered by index.
func (s *Service) ListResolvers(ctx context.Context, ncn domain.Address) ([]*models.Resolver, error) {
	out, err := s.store.ListResolvers(ctx, ncn)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list resolvers")
	}
	return out, nil
}

// ListSlashers returns the NCN's slashers ordered by index.
func (s *Service) ListSlashers(ctx context.Context, ncn domain.Address) ([]*models.Slasher, error) {
	out, err := s.store.ListSlashers(ctx, ncn)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list slashers")
	}
	return out, nil
}

// GetCase reads a proposal and its ticket by their (ncn, operator, slasher) key.
func (s *Service) GetCase(ctx context.Context, key CaseKey) (*models.Case, error) {
	if err := key.validate(); err != nil {
		return nil, err
	}
	at, err := s.deriveCase(key)
	if err != nil {
		return nil, err
	}
	return loadCase(ctx, s.store, at)
}

// GetCaseAt reads a proposal and its ticket by proposal address.
func (s *Service) GetCaseAt(ctx context.Context, proposal domain.Address) (*models.Case, error) {
	p, err := s.store.FindProposal(ctx, proposal)
	if err != nil {
		return nil, accountErr(err, "slash proposal", proposal)
	}
	ticket, err := models.ProposalTicketAddress(s.program, p.Ncn, p.Address)
	if err != nil {
		return nil, err
	}
	t, err := s.store.FindTicket(ctx, ticket.Address)
	if err != nil {
		return nil, accountErr(err, "proposal ticket", ticket.Address)
	}
	return &models.Case{Proposal: p, Ticket: t}, nil
}

func (s *Service) ListProposals(ctx context.Context, filter models.ProposalFilter) ([]*models.SlashProposal, error) {
	for _, st := range filter.Statuses {
		if !st.IsValid() {
			return nil, dErrors.New(dErrors.CodeValidation, "unknown proposal status "+string(st))
		}
	}
	if filter.Limit <= 0 || filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	out, err := s.store.ListProposals(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list proposals")
	}
	return out, nil
}
