package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"arbiter/internal/resolver/models"
	"arbiter/internal/vault"
	"arbiter/pkg/domain"
	audit "arbiter/pkg/platform/audit"
	"arbiter/pkg/requestcontext"
)

// ExecuteSlash settles a proposal whose veto window has closed. The slasher
// admin signs. All linkage is verified first; the proposal is marked
// executed inside the transaction and the vault slash runs last, so a vault
// failure rolls the proposal back to open.
func (s *Service) ExecuteSlash(ctx context.Context, cmd ExecuteCommand) (c *models.Case, err error) {
	attrs := append(caseAttrs(cmd.CaseKey), attribute.String("resolver.vault", cmd.Vault.String()))
	ctx, span, started := s.start(ctx, "execute_slash", attrs...)
	var subject domain.Address
	defer func() { s.finish(ctx, span, "execute_slash", started, subject, err) }()

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
	epoch, err := cfg.Epoch(slot)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadNcn(ctx, cfg, cmd.Ncn); err != nil {
		return nil, err
	}
	if _, err := s.loadOperator(ctx, cfg, cmd.Operator); err != nil {
		return nil, err
	}
	if err := s.checkVault(ctx, cfg, cmd.Vault); err != nil {
		return nil, err
	}
	at, err := s.deriveCase(cmd.CaseKey)
	if err != nil {
		return nil, err
	}
	subject = at.proposal.Address

	if err := s.verifyLinkage(ctx, cfg, linkageKey{
		ncn:      cmd.Ncn,
		operator: cmd.Operator,
		slasher:  cmd.Slasher,
		vault:    cmd.Vault,
		epoch:    epoch,
	}, cmd.Linkage); err != nil {
		return nil, err
	}

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
		if !cmd.Resolver.IsZero() {
			if _, err := loadResolver(ctx, store, cmd.Resolver, cmd.Ncn); err != nil {
				return err
			}
		}
		found, err := loadCase(ctx, store, at)
		if err != nil {
			return err
		}
		if err := found.Ticket.CheckSlashProposal(found.Proposal.Address); err != nil {
			return err
		}
		if err := found.Proposal.CanExecute(slot); err != nil {
			return err
		}

		if err := found.Proposal.ApplyExecution(policy.DeleteSlashProposalDuration, requestcontext.Now(ctx)); err != nil {
			return err
		}
		if err := store.UpdateProposal(ctx, found.Proposal); err != nil {
			return accountErr(err, "slash proposal", found.Proposal.Address)
		}
		if err := s.emit(ctx, audit.EventSlashExecuted, found.Proposal.Address, cmd.Ncn, slot); err != nil {
			return err
		}

		reference, err := models.SlashReference(s.program, found.Proposal)
		if err != nil {
			return err
		}
		err = s.vault.Slash(ctx, vault.SlashInstruction{
			Vault:            cmd.Vault,
			Ncn:              cmd.Ncn,
			Operator:         cmd.Operator,
			Slasher:          slasher.Address,
			Amount:           found.Proposal.Amount,
			Epoch:            epoch,
			AuthorityProgram: s.program,
			SignerSeeds:      slasher.SigningSeeds(),
			Reference:        reference,
		})
		if err != nil {
			return models.ErrorVaultSlashFailed.Wrap(err)
		}
		c = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.schedule(ctx, c.Proposal)
	if s.metrics != nil {
		s.metrics.RecordExecution(c.Proposal.Amount)
	}
	s.logAudit(ctx, audit.EventSlashExecuted,
		"proposal", c.Proposal.Address.String(),
		"vault", cmd.Vault.String(),
		"amount", c.Proposal.Amount,
		"epoch", epoch,
		"delete_deadline_slot", c.Proposal.DeleteDeadlineSlot,
	)
	return c, nil
}

func (s *Service) checkVault(ctx context.Context, cfg *models.Config, address domain.Address) error {
	if address.IsZero() {
		return models.ErrorInvalidAccountAddress.Errorf("vault is required")
	}
	v, err := s.vault.Vault(ctx, address)
	if err != nil {
		return registryErr(err, "vault", address)
	}
	if v.Owner != cfg.VaultProgram {
		return models.ErrorInvalidAccountOwner.Errorf("vault %s owned by %s", address, v.Owner)
	}
	return nil
}
