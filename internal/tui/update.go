package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/staffdesk/staffdesk/internal/errors"
	"github.com/staffdesk/staffdesk/internal/forms"
	"github.com/staffdesk/staffdesk/internal/router"
	"github.com/staffdesk/staffdesk/internal/views"
)

// Success and failure banners.
const (
	LoginSuccessMessage  = "Login successful!"
	LogoutSuccessMessage = "Logged out successfully."
)

// Update handles messages and updates the model state (required by Bubble Tea)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case openMsg:
		return m.open(msg.view)

	case loginMsg:
		return m.finishLogin(msg)

	case loadedMsg:
		return m.applyLoaded(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.screen == ScreenLogin {
		return m.handleLoginKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Logout):
		return m.logout()

	case key.Matches(msg, m.keys.Back):
		return m.home()
	}

	switch m.screen {
	case ScreenMenu:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.links)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Open):
			if len(m.links) == 0 {
				return m, nil
			}
			if m.links[m.cursor].View == viewLogout {
				return m.logout()
			}
			return m.open(m.links[m.cursor].View)
		}
		return m, nil

	case ScreenView:
		if key.Matches(msg, m.keys.Refresh) && m.current != nil {
			return m.open(m.current.View())
		}
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.home()

	case key.Matches(msg, m.keys.Next), msg.Type == tea.KeyUp, msg.Type == tea.KeyDown:
		m.focus = 1 - m.focus
		return m, m.focusInputs()

	case key.Matches(msg, m.keys.Open):
		if m.focus == 0 {
			m.focus = 1
			return m, m.focusInputs()
		}
		return m.submitLogin()
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) focusInputs() tea.Cmd {
	if m.focus == 0 {
		m.password.Blur()
		return m.username.Focus()
	}
	m.username.Blur()
	return m.password.Focus()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.current != nil {
		m.current.Close()
	}
	m.quitting = true
	return m, tea.Quit
}

// open guards view and shows it, the login form or the access denied screen.
func (m Model) open(view router.View) (tea.Model, tea.Cmd) {
	if m.current != nil {
		m.current.Close()
		m.current = nil
	}
	m.loading = false
	m.text, m.title, m.lastError, m.status = "", "", "", ""

	if view == router.ViewLogin {
		m.router.Navigate(router.ViewLogin)
		return m.showLogin()
	}

	inst := m.router.Mount(view, nil)
	d := inst.Resolve()
	m.decision = d

	switch d.Outcome {
	case router.Redirected:
		inst.Close()
		return m.showLogin()
	case router.Denied:
		inst.Close()
		m.screen = ScreenDenied
		return m, nil
	}

	m.current = inst
	req, _ := router.Lookup(view)
	m.title = req.Title

	if view == router.ViewDashboard {
		m.showMenu()
		return m, nil
	}

	m.screen = ScreenView
	if page, ok := views.Page(view); ok {
		m.text = page
		return m, nil
	}
	load, ok := views.LoaderFor(view)
	if !ok {
		m.text = fmt.Sprintf("Run '%s' to use %s.", req.Command, req.Title)
		return m, nil
	}

	m.loading = true
	who := m.router.Session().Snapshot()
	ctx, backend := m.ctx, m.backend
	fetch := func() tea.Msg {
		t, err := load(ctx, backend, who)
		return loadedMsg{instance: inst, table: t, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, fetch)
}

// home returns to the menu. Signed in users get the dashboard; anonymous
// users get the public pages plus Login and Sign Up.
func (m Model) home() (tea.Model, tea.Cmd) {
	if m.router.Session().Authenticated() {
		return m.open(router.ViewDashboard)
	}
	if m.current != nil {
		m.current.Close()
		m.current = nil
	}
	m.loading = false
	m.text, m.title, m.lastError, m.status = "", "", "", ""
	m.username.Blur()
	m.password.Blur()
	m.showMenu()
	return m, nil
}

func (m *Model) showMenu() {
	m.screen = ScreenMenu
	m.links = menuLinks(m.router.Session().Snapshot())
	if m.cursor >= len(m.links) {
		m.cursor = 0
	}
}

func (m Model) showLogin() (tea.Model, tea.Cmd) {
	m.screen = ScreenLogin
	m.focus = 0
	m.username.SetValue("")
	m.password.SetValue("")
	m.links = menuLinks(m.router.Session().Snapshot())
	return m, tea.Batch(m.focusInputs(), textinput.Blink)
}

// submitLogin sends the form. Only one login request is in flight at a time.
func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	f := forms.Login{Username: m.username.Value(), Password: m.password.Value()}
	if err := f.Validate(); err != nil {
		m.lastError = userMessage(err)
		return m, nil
	}
	m.lastError = ""
	m.loading = true
	ctx, auth := m.ctx, m.auth
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		resp, err := auth.Login(ctx, f.Username, f.Password)
		return loginMsg{resp: resp, err: err}
	})
}

func (m Model) finishLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if m.screen != ScreenLogin {
		return m, nil
	}
	if msg.err != nil {
		m.lastError = userMessage(msg.err)
		return m, nil
	}
	id, fromID, err := msg.resp.Identity()
	if err != nil {
		m.lastError = userMessage(err)
		return m, nil
	}
	if fromID {
		m.logger.Warn("login response carried id instead of userId", "username", id.Username)
	}
	m.router.Session().Login(id)
	model, cmd := m.open(router.ViewDashboard)
	mm := model.(Model)
	mm.status = LoginSuccessMessage
	return mm, cmd
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	if !m.router.Session().Authenticated() {
		return m.open(router.ViewLogin)
	}
	m.router.Session().Logout()
	model, cmd := m.open(router.ViewLogin)
	mm := model.(Model)
	mm.status = LogoutSuccessMessage
	return mm, cmd
}

// applyLoaded shows content only for the instance that is still on screen and
// still authorized. Anything else is a late response and is dropped.
func (m Model) applyLoaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	if msg.instance != m.current || !msg.instance.Active() {
		m.logger.Debug("discarding late response", "view", string(msg.instance.View()))
		return m, nil
	}
	m.loading = false

	if msg.err != nil {
		if appErr, ok := errors.As(msg.err); ok && appErr.Code == errors.ErrCodeAuthRejected {
			// The backend no longer accepts the token.
			m.router.Session().Logout()
			model, cmd := m.open(router.ViewLogin)
			mm := model.(Model)
			mm.lastError = userMessage(msg.err)
			return mm, cmd
		}
		m.lastError = userMessage(msg.err)
		return m, nil
	}

	m.title = msg.table.Title
	m.content = newTable(msg.table.Headers, msg.table.Rows, m.height)
	return m, nil
}

func newTable(headers []string, rows [][]string, height int) table.Model {
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		width := len(h)
		for _, r := range rows {
			if i < len(r) && len(r[i]) > width {
				width = len(r[i])
			}
		}
		if width > 30 {
			width = 30
		}
		cols[i] = table.Column{Title: h, Width: width}
	}
	trows := make([]table.Row, len(rows))
	for i, r := range rows {
		trows[i] = table.Row(r)
	}

	visible := len(rows) + 1
	if limit := height - 8; limit > 3 && visible > limit {
		visible = limit
	}
	return table.New(
		table.WithColumns(cols),
		table.WithRows(trows),
		table.WithFocused(true),
		table.WithHeight(visible),
	)
}

// userMessage is the text shown for err: the coded message without the code.
func userMessage(err error) string {
	if appErr, ok := errors.As(err); ok {
		return appErr.Message
	}
	return err.Error()
}
