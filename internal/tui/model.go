package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/staffdesk/staffdesk/internal/api"
	"github.com/staffdesk/staffdesk/internal/log"
	"github.com/staffdesk/staffdesk/internal/router"
	"github.com/staffdesk/staffdesk/internal/session"
	"github.com/staffdesk/staffdesk/internal/views"
	"github.com/staffdesk/staffdesk/internal/ux"
)

// Screen is what the app currently shows.
type Screen int

// Screen constants
const (
	// ScreenMenu is the navigation menu for the current role
	ScreenMenu Screen = iota
	// ScreenLogin is the login form
	ScreenLogin
	// ScreenView shows the content of an authorized view
	ScreenView
	// ScreenDenied replaces a view the role may not open
	ScreenDenied
)

// Authenticator performs the login exchange.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*api.AuthResponse, error)
}

// Model is the interactive client. Every view it opens goes through the
// router's guard; content loads run as commands and are applied only while the
// view that requested them is still active.
type Model struct {
	ctx     context.Context
	router  *router.Router
	backend views.Backend
	auth    Authenticator
	logger  *log.Logger

	screen   Screen
	links    []router.Link
	cursor   int
	current  *router.ViewInstance
	decision router.Decision

	username textinput.Model
	password textinput.Model
	focus    int

	loading bool
	spinner spinner.Model
	content table.Model
	title   string
	text    string

	status    string
	lastError string

	keys     keyMap
	help     help.Model
	width    int
	height   int
	quitting bool

	// Styles
	styles Styles
}

// Styles contains lipgloss styles for the TUI
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Muted    lipgloss.Style
	Border   lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")). // Purple
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color("63")).
			Foreground(lipgloss.Color("230")).
			Bold(true).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
	}
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Back    key.Binding
	Next    key.Binding
	Refresh key.Binding
	Logout  key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "menu")),
		Next:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Logout:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "logout")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Back, k.Refresh, k.Logout, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Next}}
}

// NewModel creates the app on the dashboard.
func NewModel(ctx context.Context, r *router.Router, backend views.Backend, auth Authenticator, logger *log.Logger) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.Prompt = "Username: "
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password: "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:      ctx,
		router:   r,
		backend:  backend,
		auth:     auth,
		logger:   log.OrDefault(logger).With("component", "tui"),
		username: username,
		password: password,
		spinner:  sp,
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   DefaultStyles(),
		links:    menuLinks(r.Session().Snapshot()),
	}
}

// viewLogout is the menu entry that ends the session. It is not a routed view.
const viewLogout router.View = "logout"

// menuLinks mirrors the nav bar: the role's links, plus Logout when signed in.
func menuLinks(id session.Identity) []router.Link {
	nav := router.BuildNavBar(id)
	links := nav.Links
	if nav.Logout {
		links = append(links, router.Link{View: viewLogout, Title: "Logout", Command: "staffdesk auth logout"})
	}
	return links
}

// Init opens the dashboard, which sends anonymous sessions to the login form.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return openMsg{view: router.ViewDashboard} }
}

// Screen returns what the app currently shows.
func (m Model) Screen() Screen { return m.screen }

// Current returns the open view instance, if any.
func (m Model) Current() *router.ViewInstance { return m.current }

// Messages

type openMsg struct {
	view router.View
}

// loadedMsg carries the content of a view instance.
type loadedMsg struct {
	instance *router.ViewInstance
	table    *ux.Table
	err      error
}

type loginMsg struct {
	resp *api.AuthResponse
	err  error
}
