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

// ErrConflict indicates that a write was rejected because the resource changed
// underneath the caller (optimistic concurrency).
var ErrConflict = errors.New("resource version conflict")

// ErrUnbalanced indicates that the debit and credit totals of a journal differ.
var ErrUnbalanced = errors.New("journal is not balanced")

// ErrMasterInUse indicates that a master record is still referenced by
// persisted journal detail lines and cannot be deleted.
var ErrMasterInUse = errors.New("master record is referenced by journal details")

// ErrSequenceExhausted indicates that the 7-digit sequence space for a single
// journal date has been used up.
var ErrSequenceExhausted = errors.New("journal number sequence exhausted for date")

// Kind classifies an error for the HTTP boundary. Validation and business
// failures are not retryable; database and system failures are.
type Kind string

const (
	KindValidation Kind = "validation"
	KindBusiness   Kind = "business"
	KindDatabase   Kind = "database"
	KindSystem     Kind = "system"
)

// AppError carries a classified failure across service boundaries. Fields is
// only populated for validation failures (per-field messages).
type AppError struct {
	Kind    Kind
	Message string
	Fields  map[string]string
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

// NewValidationError creates a validation-kind AppError with optional
// per-field messages.
func NewValidationError(message string, fields map[string]string) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Fields: fields, Err: ErrValidation}
}

// NewBusinessError creates a business-kind AppError wrapping cause.
func NewBusinessError(message string, cause error) *AppError {
	return &AppError{Kind: KindBusiness, Message: message, Err: cause}
}

// NewDatabaseError creates a database-kind AppError wrapping cause.
func NewDatabaseError(message string, cause error) *AppError {
	return &AppError{Kind: KindDatabase, Message: message, Err: cause}
}

// NewSystemError creates a system-kind AppError wrapping cause.
func NewSystemError(message string, cause error) *AppError {
	return &AppError{Kind: KindSystem, Message: message, Err: cause}
}

// NewNotFoundError creates a business-kind AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindBusiness, Message: message, Err: ErrNotFound}
}

// KindOf reports the classification of err. Errors that are not AppErrors are
// classified by sentinel, defaulting to system.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrUnbalanced),
		errors.Is(err, ErrMasterInUse),
		errors.Is(err, ErrSequenceExhausted):
		return KindBusiness
	default:
		return KindSystem
	}
}

// FieldsOf returns the per-field validation messages attached to err, or nil.
func FieldsOf(err error) map[string]string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Fields
	}
	return nil
}
