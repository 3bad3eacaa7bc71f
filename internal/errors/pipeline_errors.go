package errors

import (
	"fmt"
)

// ErrorType represents the type of error raised inside the pipeline.
// Inner components raise these typed failures; only the orchestrator and the
// HTTP error handler convert them into the caller-facing shape.
type ErrorType string

const (
	ErrTypeFormat         ErrorType = "INVALID_FILE_FORMAT"
	ErrTypeNoTextColumn   ErrorType = "NO_TEXT_COLUMN"
	ErrTypeEmptyInput     ErrorType = "EMPTY_INPUT"
	ErrTypeClassification ErrorType = "CLASSIFICATION_FAILED"
	ErrTypeTranslation    ErrorType = "TRANSLATION"
	ErrTypeConfig         ErrorType = "CONFIG"
	ErrTypeValidation     ErrorType = "VALIDATION"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewFormatError creates an error for unparseable tabular input
func NewFormatError(message string, cause error) *AppError {
	return NewAppError(ErrTypeFormat, message, cause)
}

// NewNoTextColumnError creates an error naming the accepted column list so
// the caller can tell the user what headers are recognized.
func NewNoTextColumnError(accepted []string) *AppError {
	return NewAppError(ErrTypeNoTextColumn, "no accepted text column in header", nil).
		WithContext("accepted_columns", accepted)
}

// NewEmptyInputError creates an error for inputs with no usable rows
func NewEmptyInputError(message string) *AppError {
	return NewAppError(ErrTypeEmptyInput, message, nil)
}

// NewClassificationError creates an error for a failed model call
func NewClassificationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeClassification, message, cause)
}

// NewTranslationError creates a translation error. These are row-local and
// never propagated as request failures; the type exists for logging.
func NewTranslationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeTranslation, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
