package service

import (
	"arbiter/internal/resolver/models"
	"arbiter/pkg/domain"
	dErrors "arbiter/pkg/domain-errors"
)

// InitializeConfigCommand creates the program singleton. Admin, when set,
// must be the signer.
type InitializeConfigCommand struct {
	Admin            domain.Address
	RestakingProgram domain.Address
	VaultProgram     domain.Address
	EpochLength      uint64
}

// InitializePolicyCommand creates an NCN policy. A zero ResolverAdmin
// defaults to the NCN admin.
type InitializePolicyCommand struct {
	Ncn                         domain.Address
	VetoDuration                uint64
	DeleteSlashProposalDuration uint64
	ResolverAdmin               domain.Address
}

// RegisterCommand registers a resolver or slasher keyed by Base.
type RegisterCommand struct {
	Ncn   domain.Address
	Base  domain.Address
	Admin domain.Address
}

func (c RegisterCommand) validate() error {
	if c.Ncn.IsZero() || c.Base.IsZero() || c.Admin.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "ncn, base and admin are required")
	}
	return nil
}

// CaseKey identifies a slash proposal by (ncn, operator, slasher). Proposal
// and Ticket are optional caller-supplied addresses; when set they must
// match derivation.
type CaseKey struct {
	Ncn      domain.Address
	Operator domain.Address
	Slasher  domain.Address
	Proposal domain.Address
	Ticket   domain.Address
}

func (k CaseKey) validate() error {
	if k.Ncn.IsZero() || k.Operator.IsZero() || k.Slasher.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "ncn, operator and slasher are required")
	}
	return nil
}

type ProposeCommand struct {
	CaseKey
	Amount uint64
}

// ExecuteCommand settles a proposal against Vault. Resolver is optional;
// when set it must be a registered resolver of the NCN. Linkage addresses are
// optional and verified against derivation.
type ExecuteCommand struct {
	CaseKey
	Vault    domain.Address
	Resolver domain.Address
	Linkage  Linkage
}

// Linkage lists the registry and vault tickets execute checks.
type Linkage struct {
	NcnOperatorState              domain.Address
	NcnVaultTicket                domain.Address
	OperatorVaultTicket           domain.Address
	NcnVaultSlasherTicket         domain.Address
	VaultNcnTicket                domain.Address
	VaultOperatorDelegation       domain.Address
	VaultNcnSlasherTicket         domain.Address
	VaultNcnSlasherOperatorTicket domain.Address
}

type caseAddresses struct {
	proposal models.Derived
	ticket   models.Derived
}

func (s *Service) deriveCase(key CaseKey) (caseAddresses, error) {
	proposal, err := models.SlashProposalAddress(s.program, key.Ncn, key.Operator, key.Slasher)
	if err != nil {
		return caseAddresses{}, err
	}
	if err := models.VerifyAddress("slash proposal", key.Proposal, proposal); err != nil {
		return caseAddresses{}, err
	}
	ticket, err := models.ProposalTicketAddress(s.program, key.Ncn, proposal.Address)
	if err != nil {
		return caseAddresses{}, err
	}
	if err := models.VerifyAddress("proposal ticket", key.Ticket, ticket); err != nil {
		return caseAddresses{}, err
	}
	return caseAddresses{proposal: proposal, ticket: ticket}, nil
}
