package handler

import (
	"arbiter/internal/resolver/service"
	"arbiter/pkg/domain"
	dErrors "arbiter/pkg/domain-errors"
)

// Addresses decode from base58 text; a malformed address fails decoding,
// so Validate only checks presence.

type InitializeConfigRequest struct {
	RestakingProgram domain.Address `json:"restaking_program"`
	VaultProgram     domain.Address `json:"vault_program"`
	EpochLength      uint64         `json:"epoch_length"`
}

func (r *InitializeConfigRequest) Validate() error {
	if r.RestakingProgram.IsZero() || r.VaultProgram.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "restaking_program and vault_program are required")
	}
	if r.EpochLength == 0 {
		return dErrors.New(dErrors.CodeValidation, "epoch_length must be positive")
	}
	return nil
}

type InitializePolicyRequest struct {
	VetoDuration                uint64         `json:"veto_duration"`
	DeleteSlashProposalDuration uint64         `json:"delete_slash_proposal_duration"`
	ResolverAdmin               domain.Address `json:"resolver_admin"`
}

func (r *InitializePolicyRequest) Validate() error { return nil }

type RegisterRequest struct {
	Base  domain.Address `json:"base"`
	Admin domain.Address `json:"admin"`
}

func (r *RegisterRequest) Validate() error {
	if r.Base.IsZero() || r.Admin.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "base and admin are required")
	}
	return nil
}

type SetAdminRequest struct {
	Admin domain.Address `json:"admin"`
}

func (r *SetAdminRequest) Validate() error {
	if r.Admin.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "admin is required")
	}
	return nil
}

// ProposeRequest opens a case. Proposal and Ticket are optional and checked
// against derivation.
type ProposeRequest struct {
	Ncn      domain.Address `json:"ncn"`
	Operator domain.Address `json:"operator"`
	Slasher  domain.Address `json:"slasher"`
	Amount   uint64         `json:"amount"`
	Proposal domain.Address `json:"proposal,omitzero"`
	Ticket   domain.Address `json:"ticket,omitzero"`
}

func (r *ProposeRequest) Validate() error {
	if r.Ncn.IsZero() || r.Operator.IsZero() || r.Slasher.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "ncn, operator and slasher are required")
	}
	return nil
}

func (r *ProposeRequest) command() service.ProposeCommand {
	return service.ProposeCommand{
		CaseKey: service.CaseKey{
			Ncn:      r.Ncn,
			Operator: r.Operator,
			Slasher:  r.Slasher,
			Proposal: r.Proposal,
			Ticket:   r.Ticket,
		},
		Amount: r.Amount,
	}
}

type ResolverRequest struct {
	Resolver domain.Address `json:"resolver"`
}

func (r *ResolverRequest) Validate() error {
	if r.Resolver.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "resolver is required")
	}
	return nil
}

type LinkageRequest struct {
	NcnOperatorState              domain.Address `json:"ncn_operator_state,omitzero"`
	NcnVaultTicket                domain.Address `json:"ncn_vault_ticket,omitzero"`
	OperatorVaultTicket           domain.Address `json:"operator_vault_ticket,omitzero"`
	NcnVaultSlasherTicket         domain.Address `json:"ncn_vault_slasher_ticket,omitzero"`
	VaultNcnTicket                domain.Address `json:"vault_ncn_ticket,omitzero"`
	VaultOperatorDelegation       domain.Address `json:"vault_operator_delegation,omitzero"`
	VaultNcnSlasherTicket         domain.Address `json:"vault_ncn_slasher_ticket,omitzero"`
	VaultNcnSlasherOperatorTicket domain.Address `json:"vault_ncn_slasher_operator_ticket,omitzero"`
}

type ExecuteRequest struct {
	Vault    domain.Address `json:"vault"`
	Resolver domain.Address `json:"resolver,omitzero"`
	Linkage  LinkageRequest `json:"linkage"`
}

func (r *ExecuteRequest) Validate() error {
	if r.Vault.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "vault is required")
	}
	return nil
}

func (r *ExecuteRequest) command(key service.CaseKey) service.ExecuteCommand {
	return service.ExecuteCommand{
		CaseKey:  key,
		Vault:    r.Vault,
		Resolver: r.Resolver,
		Linkage: service.Linkage{
			NcnOperatorState:              r.Linkage.NcnOperatorState,
			NcnVaultTicket:                r.Linkage.NcnVaultTicket,
			OperatorVaultTicket:           r.Linkage.OperatorVaultTicket,
			NcnVaultSlasherTicket:         r.Linkage.NcnVaultSlasherTicket,
			VaultNcnTicket:                r.Linkage.VaultNcnTicket,
			VaultOperatorDelegation:       r.Linkage.VaultOperatorDelegation,
			VaultNcnSlasherTicket:         r.Linkage.VaultNcnSlasherTicket,
			VaultNcnSlasherOperatorTicket: r.Linkage.VaultNcnSlasherOperatorTicket,
		},
	}
}
