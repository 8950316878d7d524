package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Prompt represents a simple interactive prompt configuration
type Prompt struct {
	Message     string
	Default     string
	Placeholder string
	Required    bool
	// Secret hides the input, for passwords.
	Secret bool
}

// PromptForString displays an interactive prompt and returns the user's input
func PromptForString(p Prompt) (string, error) {
	value := p.Default

	input := huh.NewInput().
		Title(p.Message).
		Placeholder(p.Placeholder).
		Value(&value)
	if p.Secret {
		input = input.EchoMode(huh.EchoModePassword)
	}

	form := huh.NewForm(huh.NewGroup(input))

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	if p.Required && value == "" {
		return "", fmt.Errorf("value is required")
	}

	return value, nil
}

// PromptForConfirmation displays a yes/no confirmation prompt
func PromptForConfirmation(message string, defaultValue bool) (bool, error) {
	confirmed := defaultValue

	confirm := huh.NewConfirm().
		Title(message).
		Value(&confirmed)

	form := huh.NewForm(huh.NewGroup(confirm))

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}

	return confirmed, nil
}

// Option is one choice of a select prompt.
type Option struct {
	Label string
	Value string
}

// PromptForSelect displays a selection prompt and returns the chosen value.
func PromptForSelect(message string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options provided")
	}

	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt.Label, opt.Value)
	}

	var selected string
	selectField := huh.NewSelect[string]().
		Title(message).
		Options(huhOptions...).
		Value(&selected)

	form := huh.NewForm(huh.NewGroup(selectField))

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	return selected, nil
}

// Credentials asks for a username and password in one form.
func Credentials(username string) (string, string, error) {
	var password string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Username").Value(&username),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
	))
	if err := form.Run(); err != nil {
		return "", "", fmt.Errorf("prompt failed: %w", err)
	}
	return username, password, nil
}

// IsInteractive returns true if stdin is a terminal (not piped)
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ciEnvVars disable prompts when any is set.
var ciEnvVars = []string{
	"CI",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"JENKINS_URL",
	"TRAVIS",
	"CIRCLECI",
	"BUILDKITE",
}

// ShouldPrompt returns true if prompts should be shown based on environment
// Prompts are disabled in CI environments or when stdin is not a terminal
func ShouldPrompt() bool {
	for _, envVar := range ciEnvVars {
		if os.Getenv(envVar) != "" {
			return false
		}
	}

	return IsInteractive()
}
