package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a concurrent write conflict at the storage layer.
// Posting operations are idempotent, so callers may safely retry.
var ErrConflict = errors.New("persistence conflict")

// ErrForbidden indicates the acting user is not allowed to perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrSchema indicates an account category or mapping role outside the recognized
// enumeration. Always a configuration or programming defect, never retried.
var ErrSchema = errors.New("schema error")

// ErrMappingNotFound indicates a required ledger role has no active mapping for a
// float account. Recoverable by provisioning; must not fail the originating
// business transaction.
var ErrMappingNotFound = errors.New("account mapping not found")

// ErrUnbalancedEntry indicates a built entry set whose debits and credits do not
// net to zero. Must never reach persistence.
var ErrUnbalancedEntry = errors.New("journal entry lines do not balance")

// ErrNotEligible indicates a reversal precondition failed. Reported to the caller
// as a rejection, not retried automatically.
var ErrNotEligible = errors.New("transaction not eligible for reversal")

// AppError carries an HTTP-ish status code alongside a message and wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
