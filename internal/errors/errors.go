package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/babysteps/babysteps/internal/logger"
)

// Sentinel errors for the client's failure taxonomy. Every failure in the
// client degrades to "show stale/empty data" or "return to login"; none of
// these is fatal to the process.
var (
	// ErrMalformedCredential means the locally persisted token could not be
	// decoded. Callers must treat this identically to "no session".
	ErrMalformedCredential = errors.New("malformed credential")

	// ErrUnauthorized means the server rejected the credential. The gateway
	// recovers by forcing a logout; the request is never retried.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned by local stores when a value is absent.
	ErrNotFound = errors.New("not found")
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
