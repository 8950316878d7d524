package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Network errors (NET-001 to NET-099): no response from the backend
	ErrCodeNetworkUnreachable ErrorCode = "NET-001"
	ErrCodeNetworkTimeout     ErrorCode = "NET-002"

	// Backend errors (API-001 to API-099): non-success status with a payload
	ErrCodeAPIRequestFailed ErrorCode = "API-001"
	ErrCodeAPINotFound      ErrorCode = "API-002"
	ErrCodeAPIDecode        ErrorCode = "API-003"
	ErrCodeAPIEncode        ErrorCode = "API-004"

	// Authorization errors (AUTH-001 to AUTH-099)
	ErrCodeAuthRequired     ErrorCode = "AUTH-001"
	ErrCodeAuthDenied       ErrorCode = "AUTH-002"
	ErrCodeAuthRejected     ErrorCode = "AUTH-003"
	ErrCodeAuthLoginFailed  ErrorCode = "AUTH-004"
	ErrCodeAuthSignupFailed ErrorCode = "AUTH-005"

	// Validation errors (VALID-001 to VALID-099): enforced before submission
	ErrCodeValidationRequired ErrorCode = "VALID-001"
	ErrCodeValidationInvalid  ErrorCode = "VALID-002"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid ErrorCode = "CONFIG-001"
	ErrCodeConfigLoad    ErrorCode = "CONFIG-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeDirectoryFailed ErrorCode = "IO-004"
	ErrCodeStorageFailed   ErrorCode = "IO-005"
)

// Category is the prefix of an error code
type Category string

const (
	CategoryNetwork    Category = "NET"
	CategoryAPI        Category = "API"
	CategoryAuth       Category = "AUTH"
	CategoryValidation Category = "VALID"
	CategoryConfig     Category = "CONFIG"
	CategoryIO         Category = "IO"
)

// Category returns the category portion of the code
func (c ErrorCode) Category() Category {
	prefix, _, _ := strings.Cut(string(c), "-")
	return Category(prefix)
}

// AppError represents an enhanced error with code, suggestions, and documentation
type AppError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *AppError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *AppError) WithSuggestions(suggestions ...string) *AppError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *AppError) WithDocs(url string) *AppError {
	e.DocsURL = url
	return e
}

// As extracts an *AppError from an error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CategoryOf returns the category of the first AppError in the chain, or "".
func CategoryOf(err error) Category {
	if appErr, ok := As(err); ok {
		return appErr.Code.Category()
	}
	return ""
}

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool { return CategoryOf(err) == CategoryValidation }

// IsAuth reports whether err is an authorization failure.
func IsAuth(err error) bool { return CategoryOf(err) == CategoryAuth }

// IsNetwork reports whether err is a transport failure with no response.
func IsNetwork(err error) bool { return CategoryOf(err) == CategoryNetwork }

// IsBackend reports whether err was reported by the backend.
func IsBackend(err error) bool { return CategoryOf(err) == CategoryAPI }

// Common error constructors for frequently used errors

// NewLoginRequiredError is returned when an anonymous session reaches a protected view.
func NewLoginRequiredError(view string) *AppError {
	return New(ErrCodeAuthRequired, fmt.Sprintf("login required to open %s", view)).
		WithSuggestion("Run 'staffdesk auth login' first")
}

// NewAccessDeniedError is returned when the session role does not qualify for a view.
func NewAccessDeniedError(view, role string) *AppError {
	return New(ErrCodeAuthDenied, fmt.Sprintf("access denied: %s is not available to role %s", view, role)).
		WithSuggestion("Run 'staffdesk nav' to see the views available to you")
}

// NewSessionRejectedError is returned when the backend rejects the bearer token.
func NewSessionRejectedError(status int) *AppError {
	return New(ErrCodeAuthRejected, fmt.Sprintf("session rejected by server (status %d)", status)).
		WithSuggestion("Your session may have expired; run 'staffdesk auth login' again")
}

// NewRequiredFieldError creates a validation error with a user-facing message.
func NewRequiredFieldError(field, message string) *AppError {
	return New(ErrCodeValidationRequired, message).
		WithSuggestion(fmt.Sprintf("Provide a value for %s", field))
}

// NewInvalidFieldError creates a validation error for a malformed value.
func NewInvalidFieldError(field, message string) *AppError {
	return New(ErrCodeValidationInvalid, message).
		WithSuggestion(fmt.Sprintf("Check the value of %s", field))
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(baseURL string, cause error) *AppError {
	return Wrap(ErrCodeNetworkUnreachable, fmt.Sprintf("no response from %s", baseURL), cause).
		WithSuggestion("Check that the backend is running").
		WithSuggestion("Set api.base_url in ~/.staffdesk/config.yaml or STAFFDESK_API_BASE_URL")
}

// NewBackendError wraps a non-success response carrying a message from the server.
func NewBackendError(status int, message string) *AppError {
	code := ErrCodeAPIRequestFailed
	if status == 404 {
		code = ErrCodeAPINotFound
	}
	return New(code, message)
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *AppError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}
