package utils

import "fmt"

// Error codes for the benchmark run lifecycle
const (
	// Fatal setup errors (bad configuration, missing paths)
	ErrCodeSetup         = "SETUP_ERROR"
	ErrCodeInvalidConfig = "INVALID_CONFIG"

	// Dataset errors
	ErrCodeGeneration = "GENERATION_ERROR"

	// Harness errors
	ErrCodeTrialExecution     = "TRIAL_EXECUTION_ERROR"
	ErrCodeInsufficientTrials = "INSUFFICIENT_TRIALS"
	ErrCodeUnsupported        = "UNSUPPORTED_COMBINATION"

	// Output errors
	ErrCodeReportWrite = "REPORT_WRITE_ERROR"
)

// AppError represents an application error with additional context
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for creating errors
type ErrorBuilder struct {
	code    string
	message string
	details string
	cause   error
}

// NewErrorBuilder creates a new error builder
func NewErrorBuilder(code string) *ErrorBuilder {
	return &ErrorBuilder{code: code}
}

// WithMessage sets the error message
func (eb *ErrorBuilder) WithMessage(message string) *ErrorBuilder {
	eb.message = message
	return eb
}

// WithDetails sets the error details
func (eb *ErrorBuilder) WithDetails(details string) *ErrorBuilder {
	eb.details = details
	return eb
}

// WithCause sets the underlying error cause
func (eb *ErrorBuilder) WithCause(cause error) *ErrorBuilder {
	eb.cause = cause
	return eb
}

// Build constructs the final AppError
func (eb *ErrorBuilder) Build() *AppError {
	if eb.message == "" {
		eb.message = getDefaultMessage(eb.code)
	}

	return &AppError{
		Code:    eb.code,
		Message: eb.message,
		Details: eb.details,
		Cause:   eb.cause,
	}
}

// getDefaultMessage returns a default message for error codes
func getDefaultMessage(code string) string {
	messages := map[string]string{
		ErrCodeSetup:              "Benchmark setup failed",
		ErrCodeInvalidConfig:      "Invalid configuration",
		ErrCodeGeneration:         "Synthetic dataset generation failed",
		ErrCodeTrialExecution:     "Trial execution failed",
		ErrCodeInsufficientTrials: "Not enough trials to aggregate",
		ErrCodeUnsupported:        "Combination is not enabled",
		ErrCodeReportWrite:        "Report could not be written",
	}

	if msg, exists := messages[code]; exists {
		return msg
	}
	return "Unknown error"
}

// Convenience functions for common error types
func NewSetupError(cause error, details string) *AppError {
	return NewErrorBuilder(ErrCodeSetup).
		WithCause(cause).
		WithDetails(details).
		Build()
}

func NewGenerationError(details string) *AppError {
	return NewErrorBuilder(ErrCodeGeneration).
		WithDetails(details).
		Build()
}

func NewTrialExecutionError(cause error, details string) *AppError {
	return NewErrorBuilder(ErrCodeTrialExecution).
		WithCause(cause).
		WithDetails(details).
		Build()
}

func NewInsufficientTrialsError(details string) *AppError {
	return NewErrorBuilder(ErrCodeInsufficientTrials).
		WithDetails(details).
		Build()
}

func NewUnsupportedError(details string) *AppError {
	return NewErrorBuilder(ErrCodeUnsupported).
		WithDetails(details).
		Build()
}

func NewReportWriteError(cause error, details string) *AppError {
	return NewErrorBuilder(ErrCodeReportWrite).
		WithCause(cause).
		WithDetails(details).
		Build()
}

// IsErrorType checks if an error matches a specific error code
func IsErrorType(err error, code string) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}
