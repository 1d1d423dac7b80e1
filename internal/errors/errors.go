// Package errors provides unified error handling across wordsmith.
//
// SYSTEM ARCHITECTURE ROLE:
// This module is the foundation for error handling across both interfaces (CLI, TUI).
// It standardizes how generation, resource and input failures are represented so the
// interfaces can format them consistently.
//
// KEY RESPONSIBILITIES:
// - Define standardized error codes and categories for consistent error identification
// - Provide structured error types (AppError) with severity levels and context
// - Expose sentinel errors (ErrEmptyCategory, ErrMissingResource) usable with errors.Is
//
// INTEGRATION POINTS:
// - internal/wordbank/wordbank.go: Pick returns EmptyCategoryError for empty lists
// - internal/storage/storage.go: loaders return MissingResourceError for absent files
// - internal/cli/cli.go: CLIErrorHandler formats AppErrors for terminal display
// - internal/ui/model.go: TUIErrorHandler provides styling for bubble tea error display
// - internal/validation/validator.go: ValidationResult.ToAppError() converts lint failures
//
// USAGE PATTERNS:
// - Create errors: Use constructor functions like EmptyCategoryError(), InvalidInputError()
// - Wrap errors: Use Wrap() to add context to existing errors
// - Check types: Use errors.Is with the sentinels, or GetAppError for the full value
//
// NOTE: A template that stops resolving early (unknown or malformed slot) is final
// output, not an error, and has no error code.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// Generation errors
	ErrCodeEmptyCategory   ErrorCode = "EMPTY_CATEGORY"
	ErrCodeUnknownCategory ErrorCode = "UNKNOWN_CATEGORY"

	// Resource errors
	ErrCodeMissingResource   ErrorCode = "MISSING_RESOURCE"
	ErrCodeResourceCorrupted ErrorCode = "RESOURCE_CORRUPTED"

	// Command errors
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCodeInvalidCommand  ErrorCode = "INVALID_COMMAND"

	// Clipboard errors
	ErrCodeClipboardUnavailable ErrorCode = "CLIPBOARD_UNAVAILABLE"

	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "info"
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryGeneration ErrorCategory = "generation"
	CategoryResource   ErrorCategory = "resource"
	CategoryCommand    ErrorCategory = "command"
	CategorySystem     ErrorCategory = "system"
)

// Sentinels for errors.Is. Matching is by code, so any AppError carrying the
// same code compares equal regardless of message or cause.
var (
	ErrEmptyCategory   = &AppError{Code: ErrCodeEmptyCategory}
	ErrMissingResource = &AppError{Code: ErrCodeMissingResource}
	ErrInvalidInput    = &AppError{Code: ErrCodeInvalidInput}
)

// AppError represents a standardized application error
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Severity  ErrorSeverity          `json:"severity"`
	Category  ErrorCategory          `json:"category"`
	Cause     error                  `json:"-"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError with the same code
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := NewAppError(code, message)
	appErr.Cause = err
	return appErr
}

// categorizeError determines the category and severity based on error code
func categorizeError(code ErrorCode) (ErrorCategory, ErrorSeverity) {
	switch code {
	case ErrCodeValidation, ErrCodeInvalidInput, ErrCodeInvalidFormat:
		return CategoryValidation, SeverityWarning

	case ErrCodeEmptyCategory:
		return CategoryGeneration, SeverityError
	case ErrCodeUnknownCategory:
		return CategoryGeneration, SeverityWarning

	case ErrCodeMissingResource:
		return CategoryResource, SeverityCritical
	case ErrCodeResourceCorrupted:
		return CategoryResource, SeverityError

	case ErrCodeCommandNotFound:
		return CategoryCommand, SeverityInfo
	case ErrCodeInvalidCommand:
		return CategoryCommand, SeverityError

	case ErrCodeClipboardUnavailable:
		return CategorySystem, SeverityWarning
	case ErrCodeInternalError:
		return CategorySystem, SeverityCritical

	default:
		return CategorySystem, SeverityError
	}
}

// IsAppError checks if an error is (or wraps) an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetAppError extracts an AppError from an error, or converts it to one
func GetAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, "Internal error occurred")
}

// Common error constructors for frequently used errors

func EmptyCategoryError(category string) *AppError {
	return NewAppError(ErrCodeEmptyCategory, fmt.Sprintf("category '%s' has no words", category)).
		WithContext("category", category)
}

func UnknownCategoryError(category string) *AppError {
	return NewAppError(ErrCodeUnknownCategory, fmt.Sprintf("unknown category '%s'", category)).
		WithContext("category", category)
}

func MissingResourceError(path string, err error) *AppError {
	return Wrap(err, ErrCodeMissingResource, fmt.Sprintf("Did not find %s", path)).
		WithContext("path", path)
}

func CorruptedResourceError(path string, err error) *AppError {
	return Wrap(err, ErrCodeResourceCorrupted, fmt.Sprintf("Failed to parse %s", path)).
		WithContext("path", path)
}

func InvalidInputError(message string) *AppError {
	return NewAppError(ErrCodeInvalidInput, message)
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternalError, message)
}

func CommandNotFoundError(command string) *AppError {
	return NewAppError(ErrCodeCommandNotFound, fmt.Sprintf("Command '%s' not found", command))
}

func InvalidCommandError(command string, reason string) *AppError {
	return NewAppError(ErrCodeInvalidCommand, fmt.Sprintf("Invalid command '%s': %s", command, reason))
}

func ClipboardError(err error) *AppError {
	return Wrap(err, ErrCodeClipboardUnavailable, "Clipboard is not available")
}
