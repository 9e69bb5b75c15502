package domain

import "fmt"

// ErrorCode identifies the category of a domain error
type ErrorCode string

const (
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeFileNotFound  ErrorCode = "FILE_NOT_FOUND"
	ErrCodeAnalysisError ErrorCode = "ANALYSIS_ERROR"
	ErrCodeConfigError   ErrorCode = "CONFIG_ERROR"
	ErrCodeUnavailable   ErrorCode = "UNAVAILABLE"
)

// DomainError is the error type used across package boundaries
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface
func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility
func (e DomainError) Unwrap() error {
	return e.Cause
}

// NewInvalidInputError creates an error for invalid user input
func NewInvalidInputError(message string, cause error) error {
	return DomainError{Code: ErrCodeInvalidInput, Message: message, Cause: cause}
}

// NewFileNotFoundError creates an error for missing files
func NewFileNotFoundError(message string, cause error) error {
	return DomainError{Code: ErrCodeFileNotFound, Message: message, Cause: cause}
}

// NewAnalysisError creates an error for analysis failures
func NewAnalysisError(message string, cause error) error {
	return DomainError{Code: ErrCodeAnalysisError, Message: message, Cause: cause}
}

// NewConfigError creates an error for configuration problems
func NewConfigError(message string, cause error) error {
	return DomainError{Code: ErrCodeConfigError, Message: message, Cause: cause}
}

// NewUnavailableError creates an error for an unreachable or unauthorized
// external collaborator. Callers treat it as "no signal", not as a failure.
func NewUnavailableError(message string, cause error) error {
	return DomainError{Code: ErrCodeUnavailable, Message: message, Cause: cause}
}

// IsUnavailable reports whether err is an unavailable-collaborator error
func IsUnavailable(err error) bool {
	de, ok := err.(DomainError)
	return ok && de.Code == ErrCodeUnavailable
}
