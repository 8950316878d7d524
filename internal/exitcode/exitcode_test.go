package exitcode

import (
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/staffdesk/staffdesk/internal/errors"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"Success", Success, 0},
		{"GeneralError", GeneralError, 1},
		{"UsageError", UsageError, 2},
		{"AuthError", AuthError, 5},
		{"NetworkError", NetworkError, 6},
		{"Interrupted", Interrupted, 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("Exit code %s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error returns success", nil, Success},
		{"login required", apperrors.NewLoginRequiredError("tasks"), AuthError},
		{"access denied", apperrors.NewAccessDeniedError("users", "CUSTOMER"), AuthError},
		{"wrapped auth", fmt.Errorf("tasks: %w", apperrors.NewSessionRejectedError(401)), AuthError},
		{"network", apperrors.NewNetworkError("http://localhost", errors.New("dial")), NetworkError},
		{"validation", apperrors.NewRequiredFieldError("date", "date is required"), UsageError},
		{"backend", apperrors.NewBackendError(500, "boom"), GeneralError},
		{"plain unauthorized", errors.New("401 Unauthorized"), AuthError},
		{"plain timeout", errors.New("request timeout"), NetworkError},
		{"unknown command", errors.New(`unknown command "foo"`), UsageError},
		{"required flag", errors.New(`required flag(s) "start" not set`), UsageError},
		{"generic", errors.New("something else"), GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.expected {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{Success, "Success"},
		{AuthError, "Authentication error"},
		{NetworkError, "Network error"},
		{Interrupted, "Interrupted"},
		{99, "Unknown error"},
	}
	for _, tt := range tests {
		if got := GetExitCodeDescription(tt.code); got != tt.want {
			t.Errorf("GetExitCodeDescription(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
