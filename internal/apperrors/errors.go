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

// ErrConflict indicates that the operation conflicts with the current state of a resource.
var ErrConflict = errors.New("conflict with current resource state")

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrPairIntegrity indicates that a contra/intra entry's linked partner is
// missing or inconsistent. It is always surfaced; the engine never deletes or
// edits a single side of a pair.
var ErrPairIntegrity = errors.New("pair integrity violation")

// ErrConcurrency indicates that a write lost to concurrent activity even after
// the engine's internal retries (reference counter claim, balance lock).
var ErrConcurrency = errors.New("concurrency conflict")

// ErrOverdrawn indicates that a write would drive an account balance below zero
// while the configuration forbids persisting negative balances.
var ErrOverdrawn = errors.New("account balance would become negative")

// AppError carries a status code alongside the wrapped cause. Used by the
// repository layer for storage failures that should propagate unchanged.
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
