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

// InitializeConfig creates the program singleton with the signer as admin.
func (s *Service) InitializeConfig(ctx context.Context, cmd InitializeConfigCommand) (cfg *models.Config, err error) {
	ctx, span, started := s.start(ctx, "initialize_config")
	at, err := models.ConfigAddress(s.program)
	defer func() { s.finish(ctx, span, "initialize_config", started, at.Address, err) }()
	if err != nil {
		return nil, err
	}

	signer, err := requireSigner(ctx)
	if err != nil {
		return nil, err
	}
	if !cmd.Admin.IsZero() && cmd.Admin != signer {
		return nil, models.ErrorConfigAdminInvalid.Errorf("admin %s did not sign", cmd.Admin)
	}
	slot, err := s.currentSlot(ctx)
	if err != nil {
		return nil, err
	}

	cfg, err = models.NewConfig(at, signer, cmd.RestakingProgram, cmd.VaultProgram, cmd.EpochLength, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		if err := store.CreateConfig(ctx, cfg); err != nil {
			return accountErr(err, "config", at.Address)
		}
		return s.emit(ctx, audit.EventConfigInitialized, cfg.Address, domain.Address{}, slot)
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.EventConfigInitialized,
		"config", cfg.Address.String(),
		"admin", cfg.Admin.String(),
		"epoch_length", cfg.EpochLength,
	)
	return cfg, nil
}

// InitializeNcnPolicy creates the per-NCN policy. The NCN admin signs.
func (s *Service) InitializeNcnPolicy(ctx context.Context, cmd InitializePolicyCommand) (policy *models.NcnPolicy, err error) {
	ctx, span, started := s.start(ctx, "initialize_ncn_policy", attribute.String("resolver.ncn", cmd.Ncn.String()))
	defer func() { s.finish(ctx, span, "initialize_ncn_policy", started, cmd.Ncn, err) }()

	signer, err := requireSigner(ctx)
	if err != nil {
		return nil, err
	}
	if cmd.Ncn.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "ncn is required")
	}
	slot, err := s.currentSlot(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := s.loadConfig(ctx, s.store)
	if err != nil {
		return nil, err
	}
	ncn, err := s.loadNcn(ctx, cfg, cmd.Ncn)
	if err != nil {
		return nil, err
	}
	if ncn.Admin != signer {
		return nil, models.ErrorNcnAdminInvalid.Errorf("signer %s", signer)
	}

	at, err := models.NcnPolicyAddress(s.program, cmd.Ncn)
	if err != nil {
		return nil, err
	}
	resolverAdmin := cmd.ResolverAdmin
	if resolverAdmin.IsZero() {
		resolverAdmin = ncn.Admin
	}
	policy = models.NewNcnPolicy(at, cmd.Ncn, cmd.VetoDuration, cmd.DeleteSlashProposalDuration, resolverAdmin, requestcontext.Now(ctx))

	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		if err := store.CreatePolicy(ctx, policy); err != nil {
			return accountErr(err, "ncn policy", at.Address)
		}
		return s.emit(ctx, audit.EventPolicyInitialized, policy.Address, policy.Ncn, slot)
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.EventPolicyInitialized,
		"ncn", policy.Ncn.String(),
		"veto_duration", policy.VetoDuration,
		"delete_slash_proposal_duration", policy.DeleteSlashProposalDuration,
		"resolver_admin", policy.ResolverAdmin.String(),
	)
	return policy, nil
}

// InitializeResolver registers a resolver under the NCN. Its index is the
// policy's resolver count before the increment.
func (s *Service) InitializeResolver(ctx context.Context, cmd RegisterCommand) (resolver *models.Resolver, err error) {
	ctx, span, started := s.start(ctx, "initialize_resolver", attribute.String("resolver.ncn", cmd.Ncn.String()))
	defer func() { s.finish(ctx, span, "initialize_resolver", started, cmd.Ncn, err) }()

	slot, at, err := s.authorizeRegistration(ctx, cmd, models.ResolverAddress)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		policy, err := s.loadPolicy(ctx, store, cmd.Ncn)
		if err != nil {
			return err
		}
		now := requestcontext.Now(ctx)
		index, err := policy.NextResolverIndex(now)
		if err != nil {
			return err
		}
		resolver = models.NewResolver(at, cmd.Base, cmd.Ncn, cmd.Admin, index, now)
		if err := store.CreateResolver(ctx, resolver); err != nil {
			return accountErr(err, "resolver", at.Address)
		}
		if err := store.UpdatePolicy(ctx, policy); err != nil {
			return accountErr(err, "ncn policy", policy.Address)
		}
		return s.emit(ctx, audit.EventResolverInitialized, resolver.Address, resolver.Ncn, slot)
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.EventResolverInitialized,
		"resolver", resolver.Address.String(),
		"ncn", resolver.Ncn.String(),
		"index", resolver.Index,
	)
	return resolver, nil
}

// InitializeSlasher registers a slasher under the NCN with its delegate
// admin set to the admin.
func (s *Service) InitializeSlasher(ctx context.Context, cmd RegisterCommand) (slasher *models.Slasher, err error) {
	ctx, span, started := s.start(ctx, "initialize_slasher", attribute.String("resolver.ncn", cmd.Ncn.String()))
	defer func() { s.finish(ctx, span, "initialize_slasher", started, cmd.Ncn, err) }()

	slot, at, err := s.authorizeRegistration(ctx, cmd, models.SlasherAddress)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		policy, err := s.loadPolicy(ctx, store, cmd.Ncn)
		if err != nil {
			return err
		}
		now := requestcontext.Now(ctx)
		index, err := policy.NextSlasherIndex(now)
		if err != nil {
			return err
		}
		slasher = models.NewSlasher(at, cmd.Base, cmd.Ncn, cmd.Admin, index, now)
		if err := store.CreateSlasher(ctx, slasher); err != nil {
			return accountErr(err, "slasher", at.Address)
		}
		if err := store.UpdatePolicy(ctx, policy); err != nil {
			return accountErr(err, "ncn policy", policy.Address)
		}
		return s.emit(ctx, audit.EventSlasherInitialized, slasher.Address, slasher.Ncn, slot)
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.EventSlasherInitialized,
		"slasher", slasher.Address.String(),
		"ncn", slasher.Ncn.String(),
		"index", slasher.Index,
	)
	return slasher, nil
}

// authorizeRegistration checks the NCN admin signed and derives the new
// account address from the base.
func (s *Service) authorizeRegistration(ctx context.Context, cmd RegisterCommand, derive func(program, base domain.Address) (models.Derived, error)) (uint64, models.Derived, error) {
	signer, err := requireSigner(ctx)
	if err != nil {
		return 0, models.Derived{}, err
	}
	if err := cmd.validate(); err != nil {
		return 0, models.Derived{}, err
	}
	slot, err := s.currentSlot(ctx)
	if err != nil {
		return 0, models.Derived{}, err
	}
	cfg, err := s.loadConfig(ctx, s.store)
	if err != nil {
		return 0, models.Derived{}, err
	}
	ncn, err := s.loadNcn(ctx, cfg, cmd.Ncn)
	if err != nil {
		return 0, models.Derived{}, err
	}
	if ncn.Admin != signer {
		return 0, models.Derived{}, models.ErrorNcnAdminInvalid.Errorf("signer %s", signer)
	}
	at, err := derive(s.program, cmd.Base)
	if err != nil {
		return 0, models.Derived{}, err
	}
	return slot, at, nil
}

// SlasherSetAdmin rotates the primary admin. The current admin signs; a
// delegate that followed the old admin follows the new one.
func (s *Service) SlasherSetAdmin(ctx context.Context, address, newAdmin domain.Address) (slasher *models.Slasher, err error) {
	ctx, span, started := s.start(ctx, "slasher_set_admin", attribute.String("resolver.slasher", address.String()))
	defer func() { s.finish(ctx, span, "slasher_set_admin", started, address, err) }()

	return s.updateSlasher(ctx, address, newAdmin, audit.EventSlasherAdminSet, func(sl *models.Slasher) {
		sl.ApplyAdmin(newAdmin, requestcontext.Now(ctx))
	})
}

// SlasherSetSecondaryAdmin replaces the delegate admin. The primary admin
// signs.
func (s *Service) SlasherSetSecondaryAdmin(ctx context.Context, address, delegate domain.Address) (slasher *models.Slasher, err error) {
	ctx, span, started := s.start(ctx, "slasher_set_secondary_admin", attribute.String("resolver.slasher", address.String()))
	defer func() { s.finish(ctx, span, "slasher_set_secondary_admin", started, address, err) }()

	return s.updateSlasher(ctx, address, delegate, audit.EventSlasherDelegateAdminSet, func(sl *models.Slasher) {
		sl.ApplyDelegateAdmin(delegate, requestcontext.Now(ctx))
	})
}

func (s *Service) updateSlasher(ctx context.Context, address, identity domain.Address, event audit.AuditEvent, apply func(*models.Slasher)) (*models.Slasher, error) {
	signer, err := requireSigner(ctx)
	if err != nil {
		return nil, err
	}
	if identity.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "new admin is required")
	}
	slot, err := s.currentSlot(ctx)
	if err != nil {
		return nil, err
	}

	var slasher *models.Slasher
	err = s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		found, err := store.FindSlasher(ctx, address)
		if err != nil {
			return accountErr(err, "slasher", address)
		}
		if err := found.CheckAdmin(signer); err != nil {
			return err
		}
		apply(found)
		if err := store.UpdateSlasher(ctx, found); err != nil {
			return accountErr(err, "slasher", address)
		}
		slasher = found
		return s.emit(ctx, event, found.Address, found.Ncn, slot)
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, event,
		"slasher", slasher.Address.String(),
		"admin", slasher.Admin.String(),
		"delegate_admin", slasher.DelegateAdmin.String(),
	)
	return slasher, nil
}
