package models

import (
	"arbiter/pkg/domain"
)

// Seed tags for accounts owned by the resolver program.
const (
	SeedConfig         = "config"
	SeedNcnPolicy      = "ncn_resolver_program_config"
	SeedResolver       = "resolver"
	SeedSlasher        = "slasher"
	SeedSlashProposal  = "slash_proposal"
	SeedProposalTicket = "ncn_slash_proposal_ticket"
	SeedSlashReference = "slash_reference"
)

// Derived is an address together with the bump that produced it.
type Derived struct {
	Address domain.Address
	Bump    uint8
}

func derive(program domain.Address, tag string, keys ...domain.Address) (Derived, error) {
	seeds := make([][]byte, 0, len(keys)+1)
	seeds = append(seeds, []byte(tag))
	for _, k := range keys {
		seeds = append(seeds, k.Bytes())
	}
	addr, bump, err := domain.FindProgramAddress(program, seeds...)
	if err != nil {
		return Derived{}, ErrorInvalidAccountAddress.Wrap(err)
	}
	return Derived{Address: addr, Bump: bump}, nil
}

func ConfigAddress(program domain.Address) (Derived, error) {
	return derive(program, SeedConfig)
}

func NcnPolicyAddress(program, ncn domain.Address) (Derived, error) {
	return derive(program, SeedNcnPolicy, ncn)
}

func ResolverAddress(program, base domain.Address) (Derived, error) {
	return derive(program, SeedResolver, base)
}

func SlasherAddress(program, base domain.Address) (Derived, error) {
	return derive(program, SeedSlasher, base)
}

func SlashProposalAddress(program, ncn, operator, slasher domain.Address) (Derived, error) {
	return derive(program, SeedSlashProposal, ncn, operator, slasher)
}

func ProposalTicketAddress(program, ncn, proposal domain.Address) (Derived, error) {
	return derive(program, SeedProposalTicket, ncn, proposal)
}

// SlashReference keys the vault reduction for one proposal instance. The
// proposal address repeats once a case is deleted and proposed again, so the
// capture slot is part of the seed.
func SlashReference(program domain.Address, p *SlashProposal) (domain.Address, error) {
	addr, _, err := domain.FindProgramAddress(program,
		[]byte(SeedSlashReference), p.Address.Bytes(), domain.U64Seed(p.CaptureSlot))
	if err != nil {
		return domain.Address{}, ErrorInvalidAccountAddress.Wrap(err)
	}
	return addr, nil
}

// VerifyAddress compares a caller-supplied address with the derived one. A
// zero supplied address means the caller left it to derivation.
func VerifyAddress(kind string, supplied domain.Address, derived Derived) error {
	if supplied.IsZero() || supplied == derived.Address {
		return nil
	}
	return ErrorInvalidAccountAddress.Errorf("%s %s, expected %s", kind, supplied, derived.Address)
}
