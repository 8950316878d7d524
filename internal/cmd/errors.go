package cmd

import (
	"fmt"
	"strings"
)

// ErrorWithSuggestion wraps an error with actionable recovery suggestions
type ErrorWithSuggestion struct {
	Message     string
	Suggestions []string
	err         error
}

func (e *ErrorWithSuggestion) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, s := range e.Suggestions {
			b.WriteString("\n  • ")
			b.WriteString(s)
		}
	}

	if e.err != nil {
		b.WriteString("\n\nDetails: ")
		b.WriteString(e.err.Error())
	}

	return b.String()
}

func (e *ErrorWithSuggestion) Unwrap() error {
	return e.err
}

// NewErrorWithSuggestions creates an error with recovery suggestions
func NewErrorWithSuggestions(msg string, err error, suggestions ...string) error {
	return &ErrorWithSuggestion{
		Message:     msg,
		Suggestions: suggestions,
		err:         err,
	}
}

// ConfigExistsError is returned by config init when the file is already there.
func ConfigExistsError(path string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("Configuration already exists at %s", path),
		nil,
		"Inspect it: staffdesk config view",
		"Overwrite it: staffdesk config init --force",
	)
}

// NoEmployeesError is returned when a picker has nobody to offer.
func NoEmployeesError(purpose string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("No employees available to %s", purpose),
		nil,
		"Ask an administrator to create an employee account",
		"Pass the employee id directly with the flag shown in --help",
	)
}
