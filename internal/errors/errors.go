package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess        = 0   // Indicates successful execution.
	ExitErrorGeneric   = 1   // Indicates a generic error.
	ExitErrorTimeout   = 2   // Indicates the operation timed out.
	ExitErrorInvariant = 3   // Indicates an internal invariant was violated.
	ExitErrorConfig    = 4   // Indicates a configuration error.
	ExitErrorCanceled  = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError encapsulates a failure of the analysis of a single n while
// preserving the original cause.
type CalculationError struct {
	// N is the sweep index whose analysis failed (0 when unknown).
	N uint64
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause, prefixed with
// the index when it is known.
func (e CalculationError) Error() string {
	if e.N == 0 {
		return e.Cause.Error()
	}
	return fmt.Sprintf("n=%d: %v", e.N, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e CalculationError) Unwrap() error { return e.Cause }

// DomainError reports an input outside the domain of an operation, such as
// n < 1 passed to the analyzer or k > n passed to the binomial evaluator.
// Callers must fail fast on it rather than compute a value.
type DomainError struct {
	// Field is the name of the offending argument.
	Field string
	// Value is the rejected value.
	Value uint64
	// Reason explains the violated constraint.
	Reason string
}

// Error returns a formatted message describing the domain violation.
func (e DomainError) Error() string {
	return fmt.Sprintf("input domain error: %s=%d %s", e.Field, e.Value, e.Reason)
}

// InvariantError reports an internal invariant violation. Seeing one means
// the engine itself is wrong, not the input.
type InvariantError struct {
	// Invariant names the broken rule.
	Invariant string
	// Detail carries diagnostic context.
	Detail string
}

// Error returns a formatted message describing the invariant violation.
func (e InvariantError) Error() string {
	return fmt.Sprintf("invariant violated: %s (%s)", e.Invariant, e.Detail)
}

// TimeoutError represents a sweep timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
