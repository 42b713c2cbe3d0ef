package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"arbiter/internal/resolver/models"
	"arbiter/pkg/domain"
	dErrors "arbiter/pkg/domain-errors"
	audit "arbiter/pkg/platform/audit"
	"arbiter/pkg/requestcontext"
)

func caseAttrs(key CaseKey) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("resolver.ncn", key.Ncn.String()),
		attribute.String("resolver.operator", key.Operator.String()),
		attribute.String("resolver.slasher", key.Slasher.String()),
	}
}

// ProposeSlash opens a proposal against the operator. The slasher admin
// signs. The proposal and its unassigned ticket are created together.
func (s *Service) ProposeSlash(ctx context.Context, cmd ProposeCommand) (c *models.Case, err error) {
	ctx, span, started := s.start(ctx, "propose_slash", caseAttrs(cmd.CaseKey)...)
	var subject domain.Address
	defer func() { s.finish(ctx, span, "propose_slash", started, subject, err) }()

	signer, err := requireSigner(ctx)
	if err != nil {
		return nil, err
	}
	if err := cmd.validate(); err != nil {
		return nil, err
	}
	slot, err := s.currentSlot(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := s.loadConfig(ctx, s.store)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadNcn(ctx, cfg, cmd.Ncn); err != nil {
		return nil, err
	}
	if _, err := s.loadOperator(ctx, cfg, cmd.Operator); err != nil {
		return nil, err
	}
	at, err := s.deriveCase(cmd.CaseKey)
	if err != nil {
		return nil, err
	}
	subject = at.proposal.Address

	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		policy, err := s.loadPolicy(ctx, store, cmd.Ncn)
		if err != nil {
			return err
		}
		slasher, err := loadSlasher(ctx, store, cmd.Slasher, cmd.Ncn)
		if err != nil {
			return err
		}
		if err := slasher.CheckAdmin(signer); err != nil {
			return err
		}

		now := requestcontext.Now(ctx)
		proposal, err := models.NewSlashProposal(at.proposal, cmd.Ncn, cmd.Operator, cmd.Slasher, cmd.Amount, slot, policy, now)
		if err != nil {
			return err
		}
		ticket := models.NewProposalTicket(at.ticket, cmd.Ncn, proposal.Address, now)
		if err := store.CreateCase(ctx, proposal, ticket); err != nil {
			return accountErr(err, "slash proposal", proposal.Address)
		}
		c = &models.Case{Proposal: proposal, Ticket: ticket}
		return s.emit(ctx, audit.EventSlashProposed, proposal.Address, proposal.Ncn, slot)
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementProposalCreated()
	}
	s.logAudit(ctx, audit.EventSlashProposed,
		"proposal", c.Proposal.Address.String(),
		"ncn", c.Proposal.Ncn.String(),
		"operator", c.Proposal.Operator.String(),
		"slasher", c.Proposal.Slasher.String(),
		"amount", c.Proposal.Amount,
		"veto_deadline_slot", c.Proposal.VetoDeadlineSlot,
	)
	return c, nil
}

// SetResolver routes the proposal to resolver. The policy's resolver admin
// signs. Only the ticket changes; completed proposals can still be
// reassigned until they are deleted.
func (s *Service) SetResolver(ctx context.Context, key CaseKey, resolver domain.Address) (c *models.Case, err error) {
	ctx, span, started := s.start(ctx, "set_resolver", caseAttrs(key)...)
	var subject domain.Address
	defer func() { s.finish(ctx, span, "set_resolver", started, subject, err) }()

	signer, err := requireSigner(ctx)
	if err != nil {
		return nil, err
	}
	if err := key.validate(); err != nil {
		return nil, err
	}
	if resolver.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "resolver is required")
	}
	slot, err := s.currentSlot(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadConfig(ctx, s.store); err != nil {
		return nil, err
	}
	at, err := s.deriveCase(key)
	if err != nil {
		return nil, err
	}
	subject = at.proposal.Address

	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		policy, err := s.loadPolicy(ctx, store, key.Ncn)
		if err != nil {
			return err
		}
		if err := policy.CheckResolverAdmin(signer); err != nil {
			return err
		}
		if _, err := loadResolver(ctx, store, resolver, key.Ncn); err != nil {
			return err
		}
		found, err := loadCase(ctx, store, at)
		if err != nil {
			return err
		}
		if err := found.Ticket.CheckSlashProposal(found.Proposal.Address); err != nil {
			return err
		}

		found.Ticket.AssignResolver(resolver, requestcontext.Now(ctx))
		if err := store.UpdateTicket(ctx, found.Ticket); err != nil {
			return accountErr(err, "proposal ticket", found.Ticket.Address)
		}
		c = found
		return s.emit(ctx, audit.EventResolverAssigned, found.Proposal.Address, key.Ncn, slot)
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.EventResolverAssigned,
		"proposal", c.Proposal.Address.String(),
		"resolver", resolver.String(),
	)
	return c, nil
}

// VetoSlash cancels the proposal. The resolver admin signs; the ticket must
// name that resolver. No funds move.
func (s *Service) VetoSlash(ctx context.Context, key CaseKey, resolver domain.Address) (c *models.Case, err error) {
	ctx, span, started := s.start(ctx, "veto_slash", caseAttrs(key)...)
	var subject domain.Address
	defer func() { s.finish(ctx, span, "veto_slash", started, subject, err) }()

	signer, err := requireSigner(ctx)
	if err != nil {
		return nil, err
	}
	if err := key.validate(); err != nil {
		return nil, err
	}
	slot, err := s.currentSlot(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadConfig(ctx, s.store); err != nil {
		return nil, err
	}
	at, err := s.deriveCase(key)
	if err != nil {
		return nil, err
	}
	subject = at.proposal.Address

	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		judge, err := store.FindResolver(ctx, resolver)
		if err != nil {
			return accountErr(err, "resolver", resolver)
		}
		if err := judge.CheckAdmin(signer); err != nil {
			return err
		}
		found, err := loadCase(ctx, store, at)
		if err != nil {
			return err
		}
		if err := found.Proposal.CanVeto(slot); err != nil {
			return err
		}
		if err := found.Ticket.CheckResolver(judge.Address); err != nil {
			return err
		}
		if err := found.Ticket.CheckSlashProposal(found.Proposal.Address); err != nil {
			return err
		}

		found.Proposal.ApplyVeto(requestcontext.Now(ctx))
		if err := store.UpdateProposal(ctx, found.Proposal); err != nil {
			return accountErr(err, "slash proposal", found.Proposal.Address)
		}
		c = found
		return s.emit(ctx, audit.EventSlashVetoed, found.Proposal.Address, key.Ncn, slot)
	})
	if err != nil {
		return nil, err
	}

	s.schedule(ctx, c.Proposal)
	if s.metrics != nil {
		s.metrics.IncrementProposalVetoed()
	}
	s.logAudit(ctx, audit.EventSlashVetoed,
		"proposal", c.Proposal.Address.String(),
		"resolver", resolver.String(),
		"slot", slot,
	)
	return c, nil
}

// DeleteSlashProposal removes a completed proposal and its ticket once the
// delete deadline has passed. Anyone may call it.
func (s *Service) DeleteSlashProposal(ctx context.Context, key CaseKey) (err error) {
	ctx, span, started := s.start(ctx, "delete_slash_proposal", caseAttrs(key)...)
	var subject domain.Address
	defer func() { s.finish(ctx, span, "delete_slash_proposal", started, subject, err) }()

	if err := key.validate(); err != nil {
		return err
	}
	slot, err := s.currentSlot(ctx)
	if err != nil {
		return err
	}
	if _, err := s.loadConfig(ctx, s.store); err != nil {
		return err
	}
	at, err := s.deriveCase(key)
	if err != nil {
		return err
	}
	subject = at.proposal.Address

	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		found, err := loadCase(ctx, store, at)
		if err != nil {
			return err
		}
		if err := found.Ticket.CheckSlashProposal(found.Proposal.Address); err != nil {
			return err
		}
		if err := found.Proposal.CanDelete(slot); err != nil {
			return err
		}
		if err := store.DeleteCase(ctx, found.Proposal.Address, found.Ticket.Address); err != nil {
			return accountErr(err, "slash proposal", found.Proposal.Address)
		}
		return s.emit(ctx, audit.EventSlashProposalDeleted, found.Proposal.Address, key.Ncn, slot)
	})
	if err != nil {
		return err
	}

	s.unschedule(ctx, at.proposal.Address)
	if s.metrics != nil {
		s.metrics.IncrementProposalDeleted()
	}
	s.logAudit(ctx, audit.EventSlashProposalDeleted,
		"proposal", at.proposal.Address.String(),
		"slot", slot,
	)
	return nil
}

// DeleteSlashProposalAt deletes by proposal address, for callers that only
// hold the address.
func (s *Service) DeleteSlashProposalAt(ctx context.Context, proposal domain.Address) error {
	p, err := s.store.FindProposal(ctx, proposal)
	if err != nil {
		return accountErr(err, "slash proposal", proposal)
	}
	return s.DeleteSlashProposal(ctx, CaseKey{
		Ncn:      p.Ncn,
		Operator: p.Operator,
		Slasher:  p.Slasher,
		Proposal: proposal,
	})
}
