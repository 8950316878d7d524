package exitcode

import (
	"os"
	"strings"

	"github.com/staffdesk/staffdesk/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition, including backend-reported failures
	GeneralError = 1

	// UsageError indicates invalid command usage or a client-side validation failure
	UsageError = 2

	// AuthError indicates an authentication or authorization failure
	AuthError = 5

	// NetworkError indicates the backend could not be reached
	NetworkError = 6

	// Interrupted indicates the user cancelled the operation (SIGINT)
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code.
// Coded errors map by category; other errors fall back to message matching.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	switch errors.CategoryOf(err) {
	case errors.CategoryAuth:
		return AuthError
	case errors.CategoryNetwork:
		return NetworkError
	case errors.CategoryValidation:
		return UsageError
	case errors.CategoryAPI, errors.CategoryConfig, errors.CategoryIO:
		return GeneralError
	}

	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "unauthorized") || strings.Contains(errMsg, "not logged in") {
		return AuthError
	}

	if strings.Contains(errMsg, "connection refused") || strings.Contains(errMsg, "timeout") {
		return NetworkError
	}

	if strings.Contains(errMsg, "invalid flag") || strings.Contains(errMsg, "unknown command") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "accepts ") {
		return UsageError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags, arguments or form input)"
	case AuthError:
		return "Authentication error"
	case NetworkError:
		return "Network error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
