package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"routinely/internal/logger"
)

// Sentinel errors for the engine's failure modes. Callers match them with
// errors.Is through the helpers below.
var (
	// ErrValidation marks a rejected field value (empty routine name,
	// unknown category, non-positive duration).
	ErrValidation = stderrors.New("validation error")

	// ErrNotFound marks an operation that referenced an id that does not
	// resolve.
	ErrNotFound = stderrors.New("not found")

	// ErrPersistence marks a backend call failure. Not retried anywhere;
	// surfaced once to the caller.
	ErrPersistence = stderrors.New("persistence error")
)

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Persistencef wraps an underlying storage error with ErrPersistence.
func Persistencef(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, ErrPersistence)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return stderrors.Is(err, ErrValidation)
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
