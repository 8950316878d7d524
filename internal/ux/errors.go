package ux

import (
	"fmt"
	"strings"

	apperrors "github.com/staffdesk/staffdesk/internal/errors"
)

// ErrorWithSuggestion wraps an error with helpful recovery suggestions
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\nSuggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap provides access to the underlying error
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// EnhanceError adds a recovery hint to errors that do not already carry one.
// Coded errors are returned unchanged.
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}

	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "connection refused") || strings.Contains(errMsg, "no such host"):
		return NewErrorWithSuggestion(err,
			"Check that the backend is running and api.base_url points at it ('staffdesk config view')")
	case strings.Contains(errMsg, "permission denied"):
		return NewErrorWithSuggestion(err,
			"Check permissions on ~/.staffdesk or set STAFFDESK_HOME to a writable directory")
	case strings.Contains(errMsg, "database is locked"):
		return NewErrorWithSuggestion(err,
			"Another staffdesk process holds the session database; retry when it exits")
	case strings.Contains(errMsg, "unknown command"):
		return NewErrorWithSuggestion(err,
			"Run 'staffdesk nav' to list the commands available to you")
	case strings.Contains(errMsg, "--out-file"):
		return NewErrorWithSuggestion(err,
			"Pass --out-file report.xlsx together with --output xlsx")
	}
	return err
}

// FormatError provides consistent error formatting with context
func FormatError(err error, context string) error {
	if err == nil {
		return nil
	}

	enhanced := EnhanceError(err)
	if context != "" {
		return fmt.Errorf("%s: %w", context, enhanced)
	}
	return enhanced
}
