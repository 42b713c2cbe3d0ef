package models

import (
	"errors"
	"fmt"

	dErrors "arbiter/pkg/domain-errors"
)

// ErrorCode is the stable numeric code reported to callers. Values are part
// of the wire contract and must never be renumbered.
type ErrorCode uint32

const (
	ErrorResolverAdminInvalid        ErrorCode = 0
	ErrorVetoPeriodEnded             ErrorCode = 1
	ErrorProposalCompleted           ErrorCode = 2
	ErrorVetoPeriodNotEnded          ErrorCode = 3
	ErrorDeleteDeadlineNotReached    ErrorCode = 4
	ErrorProposalNotCompleted        ErrorCode = 5
	ErrorTicketProposalMismatch      ErrorCode = 6
	ErrorTicketResolverMismatch      ErrorCode = 7
	ErrorSlasherAdminInvalid         ErrorCode = 8
	ErrorSlasherDelegateAdminInvalid ErrorCode = 9
	ErrorPolicyAuthorityInvalid      ErrorCode = 10
	ErrorNcnAdminInvalid             ErrorCode = 11
	ErrorConfigAdminInvalid          ErrorCode = 12

	ErrorInvalidAccountAddress ErrorCode = 1000
	ErrorInvalidAccountOwner   ErrorCode = 1001
	ErrorAccountNotFound       ErrorCode = 1002
	ErrorAccountAlreadyInUse   ErrorCode = 1003
	ErrorLinkageInvalid        ErrorCode = 1004
	ErrorConfigMissing         ErrorCode = 1005

	ErrorVaultSlashFailed ErrorCode = 2000

	ErrorArithmeticOverflow  ErrorCode = 3000
	ErrorArithmeticUnderflow ErrorCode = 3001
	ErrorDivisionByZero      ErrorCode = 3002
)

var errorMessages = map[ErrorCode]string{
	ErrorResolverAdminInvalid:        "resolver admin invalid",
	ErrorVetoPeriodEnded:             "veto period ended",
	ErrorProposalCompleted:           "slash proposal completed",
	ErrorVetoPeriodNotEnded:          "veto period not ended",
	ErrorDeleteDeadlineNotReached:    "delete deadline not reached",
	ErrorProposalNotCompleted:        "slash proposal not completed",
	ErrorTicketProposalMismatch:      "ticket references a different slash proposal",
	ErrorTicketResolverMismatch:      "ticket is assigned to a different resolver",
	ErrorSlasherAdminInvalid:         "slasher admin invalid",
	ErrorSlasherDelegateAdminInvalid: "slasher delegate admin invalid",
	ErrorPolicyAuthorityInvalid:      "signer is not the policy resolver admin",
	ErrorNcnAdminInvalid:             "signer is not the ncn admin",
	ErrorConfigAdminInvalid:          "signer is not the config admin",
	ErrorInvalidAccountAddress:       "account is not at the expected address",
	ErrorInvalidAccountOwner:         "account has an invalid owner",
	ErrorAccountNotFound:             "account not found",
	ErrorAccountAlreadyInUse:         "account already in use",
	ErrorLinkageInvalid:              "linkage ticket invalid",
	ErrorConfigMissing:               "program config is not initialized",
	ErrorVaultSlashFailed:            "vault slash failed",
	ErrorArithmeticOverflow:          "arithmetic overflow",
	ErrorArithmeticUnderflow:         "arithmetic underflow",
	ErrorDivisionByZero:              "division by zero",
}

func (c ErrorCode) String() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return fmt.Sprintf("resolver error %d", uint32(c))
}

// Category maps the code onto the shared error taxonomy.
func (c ErrorCode) Category() dErrors.Code {
	switch c {
	case ErrorResolverAdminInvalid, ErrorTicketResolverMismatch, ErrorSlasherAdminInvalid,
		ErrorSlasherDelegateAdminInvalid, ErrorPolicyAuthorityInvalid, ErrorNcnAdminInvalid,
		ErrorConfigAdminInvalid:
		return dErrors.CodeForbidden
	case ErrorInvalidAccountAddress, ErrorInvalidAccountOwner, ErrorLinkageInvalid:
		return dErrors.CodeInvalidInput
	case ErrorAccountNotFound:
		return dErrors.CodeNotFound
	case ErrorVaultSlashFailed:
		return dErrors.CodeUnavailable
	case ErrorArithmeticOverflow, ErrorArithmeticUnderflow, ErrorDivisionByZero:
		return dErrors.CodeInternal
	default:
		return dErrors.CodeConflict
	}
}

// IsAuthorization reports signer mismatches, which are audited as security
// events.
func (c ErrorCode) IsAuthorization() bool {
	return c.Category() == dErrors.CodeForbidden
}

// Error is a resolver failure with its stable code.
type Error struct {
	Code   ErrorCode
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	msg := e.Code.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// ProgramCode exposes the numeric code to the HTTP envelope.
func (e *Error) ProgramCode() uint32 { return uint32(e.Code) }

// Err builds the coded error for c.
func (c ErrorCode) Err() error {
	return dErrors.Wrap(&Error{Code: c}, c.Category(), "")
}

// Errorf builds the coded error for c with a detail naming the offending
// account or value.
func (c ErrorCode) Errorf(format string, args ...any) error {
	return dErrors.Wrap(&Error{Code: c, Detail: fmt.Sprintf(format, args...)}, c.Category(), "")
}

// Wrap builds the coded error for c around a collaborator failure.
func (c ErrorCode) Wrap(cause error) error {
	return dErrors.Wrap(&Error{Code: c, Cause: cause}, c.Category(), "")
}

// CodeOf extracts the resolver code from err.
func CodeOf(err error) (ErrorCode, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re.Code, true
	}
	return 0, false
}

// HasCode reports whether err carries code.
func HasCode(err error, code ErrorCode) bool {
	got, ok := CodeOf(err)
	return ok && got == code
}
