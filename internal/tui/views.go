package tui

import (
	"strings"

	"github.com/staffdesk/staffdesk/internal/router"
)

// View renders the TUI (required by Bubble Tea)
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.screen {
	case ScreenMenu:
		b.WriteString(m.renderMenu())
	case ScreenLogin:
		b.WriteString(m.renderLogin())
	case ScreenView:
		b.WriteString(m.renderContent())
	case ScreenDenied:
		b.WriteString(m.renderDenied())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render(m.status))
	}
	if m.lastError != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.lastError))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}

// renderHeader shows the app name and the greeting of the signed in user.
func (m Model) renderHeader() string {
	nav := router.BuildNavBar(m.router.Session().Snapshot())
	header := m.styles.Title.Render("Staff Desk")
	if nav.Greeting != "" {
		header += "  " + m.styles.Subtitle.Render(nav.Greeting)
	}
	return header
}

func (m Model) renderMenu() string {
	var b strings.Builder
	for i, link := range m.links {
		line := link.Title
		if i == m.cursor {
			line = m.styles.Selected.Render(line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(m.links) == 0 {
		b.WriteString(m.styles.Muted.Render("No views available"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderLogin() string {
	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render("Login"))
	b.WriteString("\n\n")
	b.WriteString(m.username.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("esc: public pages and sign up"))
	b.WriteString("\n")
	if m.loading {
		b.WriteString("\n")
		b.WriteString(m.spinner.View() + " Signing in...")
		b.WriteString("\n")
	}
	return m.styles.Border.Render(b.String())
}

func (m Model) renderContent() string {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(m.styles.Subtitle.Render(m.title))
		b.WriteString("\n\n")
	}
	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Loading...")
	case m.text != "":
		b.WriteString(m.text)
	case len(m.content.Rows()) == 0 && m.lastError == "":
		b.WriteString(m.styles.Muted.Render("No results."))
	case len(m.content.Rows()) > 0:
		b.WriteString(m.content.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderDenied() string {
	text := router.AccessDeniedMessage
	if m.decision.Reason != "" {
		text = m.decision.Reason
	}
	return m.styles.Border.Render(m.styles.Error.Render(text)) + "\n"
}
