package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/staffdesk/staffdesk/internal/log"
	"github.com/staffdesk/staffdesk/internal/router"
	"github.com/staffdesk/staffdesk/internal/views"
)

// Run starts the interactive client and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, r *router.Router, backend views.Backend, auth Authenticator, logger *log.Logger) error {
	model := NewModel(ctx, r, backend, auth, logger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if m, ok := final.(Model); ok && m.current != nil {
		m.current.Close()
	}
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("run interactive client: %w", err)
	}
	return nil
}
