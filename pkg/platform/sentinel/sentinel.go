package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, the registry and the vault
// return these (optionally wrapped) and services translate them into coded
// resolver errors:
//   - ErrNotFound: no account at the address
//   - ErrAlreadyUsed: an account already occupies the address
//   - ErrConflict: a concurrent writer won
//   - ErrInvalidState: the row exists but cannot take the requested change
//   - ErrUnavailable: the backend could not be reached
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
