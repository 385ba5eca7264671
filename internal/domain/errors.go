package domain

import "errors"

var (
	// ErrNotFound means a referenced account, loan or transaction does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientFunds is raised at approval time when a withdrawal or
	// repayment exceeds the account's current balance. No partial mutation occurs.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrGuarantorPending is raised when approving a loan whose assigned
	// guarantor has not yet approved.
	ErrGuarantorPending = errors.New("guarantor approval pending")
	// ErrInvalidState means the entity is not in a state that allows the
	// requested transition.
	ErrInvalidState = errors.New("invalid state for operation")
	// ErrBusy surfaces after the store has exhausted its internal retries on a
	// concurrent-modification conflict.
	ErrBusy = errors.New("resource busy, retry later")
)

// ValidationError rejects a request before any write happens.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(msg string) error { return &ValidationError{Msg: msg} }

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
