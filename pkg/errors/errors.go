package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"
	// ErrorTypeValidation indicates the aggregate failed its own validation
	ErrorTypeValidation ErrorType = "VALIDATION"
	// ErrorTypeRelatedAggregate indicates referenced aggregates do not exist
	ErrorTypeRelatedAggregate ErrorType = "RELATED_AGGREGATE"
	// ErrorTypeBadRequest indicates a bad request
	ErrorTypeBadRequest ErrorType = "BAD_REQUEST"
	// ErrorTypeConflict indicates a concurrent modification
	ErrorTypeConflict ErrorType = "CONFLICT"
	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error returns the error message
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new application error
func New(errorType ErrorType, message string) error {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

// Wrap wraps an error with an application error
func Wrap(errorType ErrorType, message string, err error) error {
	return &AppError{
		Type:    errorType,
		Message: message,
		Err:     err,
	}
}

// NotFound creates a not found error
func NotFound(message string) error {
	return New(ErrorTypeNotFound, message)
}

// BadRequest creates a bad request error
func BadRequest(message string) error {
	return New(ErrorTypeBadRequest, message)
}

// Conflict creates a conflict error
func Conflict(message string) error {
	return New(ErrorTypeConflict, message)
}

// TypeOf returns the type of the first AppError in the chain, or
// ErrorTypeInternal when there is none.
func TypeOf(err error) ErrorType {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ErrorTypeValidation
	}
	var relatedErr *RelatedAggregateError
	if errors.As(err, &relatedErr) {
		return ErrorTypeRelatedAggregate
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return TypeOf(err) == ErrorTypeNotFound
}

// IsBadRequest checks if an error is a bad request error
func IsBadRequest(err error) bool {
	return TypeOf(err) == ErrorTypeBadRequest
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	return TypeOf(err) == ErrorTypeConflict
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return TypeOf(err) == ErrorTypeValidation
}

// IsRelatedAggregate checks if an error reports missing related aggregates
func IsRelatedAggregate(err error) bool {
	return TypeOf(err) == ErrorTypeRelatedAggregate
}

// IsBusiness reports whether retrying err can never succeed.
// Conflicts are excluded: a retry observes the newer version.
func IsBusiness(err error) bool {
	switch TypeOf(err) {
	case ErrorTypeNotFound, ErrorTypeValidation, ErrorTypeRelatedAggregate, ErrorTypeBadRequest:
		return true
	}
	return false
}

// FieldError is a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every failure collected during one validation pass.
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError creates a validation error from collected field errors
func NewValidationError(errs ...FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// First returns the message of the first failure.
func (e *ValidationError) First() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Message
}

// RelatedAggregateError lists ids that do not exist for one relation kind,
// in the order they were requested.
type RelatedAggregateError struct {
	Kind       string
	MissingIDs []uuid.UUID
}

func (e *RelatedAggregateError) Error() string {
	ids := make([]string, 0, len(e.MissingIDs))
	for _, id := range e.MissingIDs {
		ids = append(ids, id.String())
	}
	return fmt.Sprintf("%s not found: %s", e.Kind, strings.Join(ids, ", "))
}

// CompensationError keeps the failure that triggered a compensation and the
// failure of the compensation itself; both are reachable with errors.Is/As.
type CompensationError struct {
	Cause   error
	Cleanup error
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("%v (cleanup failed: %v)", e.Cause, e.Cleanup)
}

// Unwrap returns both errors
func (e *CompensationError) Unwrap() []error {
	return []error{e.Cause, e.Cleanup}
}

// WithCleanup returns cause unchanged when cleanup is nil, otherwise a
// CompensationError chaining both.
func WithCleanup(cause, cleanup error) error {
	if cleanup == nil {
		return cause
	}
	return &CompensationError{Cause: cause, Cleanup: cleanup}
}

// IsDuplicateError checks if an error is a duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "duplicate entry")
}
