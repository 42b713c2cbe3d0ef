package models

import (
	"time"

	"arbiter/pkg/domain"
)

// ProposalStatus is the lifecycle state of a slash proposal. Vetoed and
// Executed are both terminal; only Executed moves funds.
type ProposalStatus string

const (
	ProposalStatusOpen     ProposalStatus = "open"
	ProposalStatusVetoed   ProposalStatus = "vetoed"
	ProposalStatusExecuted ProposalStatus = "executed"
)

func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalStatusOpen, ProposalStatusVetoed, ProposalStatusExecuted:
		return true
	}
	return false
}

func (s ProposalStatus) String() string { return string(s) }

// SlashProposal is the aggregate for one (ncn, operator, slasher) case.
//
// Invariants:
//   - Amount is immutable; zero is accepted
//   - VetoDeadlineSlot = CaptureSlot + policy veto duration, fixed at creation
//   - DeleteDeadlineSlot starts at VetoDeadlineSlot + policy delete duration
//     and is extended once more by execution; veto leaves it unchanged
//   - Status moves Open -> Vetoed or Open -> Executed, never back
//   - Veto is possible only while slot < VetoDeadlineSlot, execution only
//     once slot >= VetoDeadlineSlot, so the two paths cannot both happen
type SlashProposal struct {
	Address            domain.Address `json:"address"`
	Ncn                domain.Address `json:"ncn"`
	Operator           domain.Address `json:"operator"`
	Slasher            domain.Address `json:"slasher"`
	Amount             uint64         `json:"amount"`
	CaptureSlot        uint64         `json:"capture_slot"`
	VetoDeadlineSlot   uint64         `json:"veto_deadline_slot"`
	DeleteDeadlineSlot uint64         `json:"delete_deadline_slot"`
	Status             ProposalStatus `json:"status"`
	Bump               uint8          `json:"bump"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// NewSlashProposal opens a proposal captured at slot.
func NewSlashProposal(at Derived, ncn, operator, slasher domain.Address, amount, slot uint64, policy *NcnPolicy, now time.Time) (*SlashProposal, error) {
	vetoDeadline, err := checkedAdd(slot, policy.VetoDuration)
	if err != nil {
		return nil, err
	}
	deleteDeadline, err := checkedAdd(vetoDeadline, policy.DeleteSlashProposalDuration)
	if err != nil {
		return nil, err
	}
	return &SlashProposal{
		Address:            at.Address,
		Ncn:                ncn,
		Operator:           operator,
		Slasher:            slasher,
		Amount:             amount,
		CaptureSlot:        slot,
		VetoDeadlineSlot:   vetoDeadline,
		DeleteDeadlineSlot: deleteDeadline,
		Status:             ProposalStatusOpen,
		Bump:               at.Bump,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// Completed reports whether the proposal was vetoed or executed.
func (p *SlashProposal) Completed() bool {
	return p.Status != ProposalStatusOpen
}

// CheckVetoPeriodOpen fails once slot reaches the veto deadline.
func (p *SlashProposal) CheckVetoPeriodOpen(slot uint64) error {
	if p.VetoDeadlineSlot <= slot {
		return ErrorVetoPeriodEnded.Errorf("deadline %d, slot %d", p.VetoDeadlineSlot, slot)
	}
	return nil
}

// CheckVetoPeriodEnded fails while slot is before the veto deadline.
func (p *SlashProposal) CheckVetoPeriodEnded(slot uint64) error {
	if p.VetoDeadlineSlot > slot {
		return ErrorVetoPeriodNotEnded.Errorf("deadline %d, slot %d", p.VetoDeadlineSlot, slot)
	}
	return nil
}

func (p *SlashProposal) CheckNotCompleted() error {
	if p.Completed() {
		return ErrorProposalCompleted.Errorf("status %s", p.Status)
	}
	return nil
}

// CanVeto checks the window first, then completion.
// Use with ApplyVeto in Execute callbacks.
func (p *SlashProposal) CanVeto(slot uint64) error {
	if err := p.CheckVetoPeriodOpen(slot); err != nil {
		return err
	}
	return p.CheckNotCompleted()
}

func (p *SlashProposal) ApplyVeto(now time.Time) {
	p.Status = ProposalStatusVetoed
	p.UpdatedAt = now
}

// CanExecute is the mirror of CanVeto.
func (p *SlashProposal) CanExecute(slot uint64) error {
	if err := p.CheckVetoPeriodEnded(slot); err != nil {
		return err
	}
	return p.CheckNotCompleted()
}

// ApplyExecution marks the proposal executed and extends the delete
// deadline by grace. The proposal is untouched when the extension overflows.
func (p *SlashProposal) ApplyExecution(grace uint64, now time.Time) error {
	deadline, err := checkedAdd(p.DeleteDeadlineSlot, grace)
	if err != nil {
		return err
	}
	p.Status = ProposalStatusExecuted
	p.DeleteDeadlineSlot = deadline
	p.UpdatedAt = now
	return nil
}

// CanDelete checks the delete deadline first, then completion, so an early
// call on any proposal reports the deadline.
func (p *SlashProposal) CanDelete(slot uint64) error {
	if p.DeleteDeadlineSlot > slot {
		return ErrorDeleteDeadlineNotReached.Errorf("deadline %d, slot %d", p.DeleteDeadlineSlot, slot)
	}
	if !p.Completed() {
		return ErrorProposalNotCompleted.Err()
	}
	return nil
}
