package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/staffdesk/internal/api"
	"github.com/staffdesk/staffdesk/internal/errors"
	"github.com/staffdesk/staffdesk/internal/log"
	"github.com/staffdesk/staffdesk/internal/router"
	"github.com/staffdesk/staffdesk/internal/session"
	"github.com/staffdesk/staffdesk/internal/storage"
)

type fakeBackend struct {
	users  []api.User
	tasks  []api.Task
	err    error
	called int
}

func (f *fakeBackend) ListUsers(context.Context) ([]api.User, error) {
	f.called++
	return f.users, f.err
}

func (f *fakeBackend) ListTasks(context.Context) ([]api.Task, error) {
	f.called++
	return f.tasks, f.err
}

func (f *fakeBackend) AssignedTasks(context.Context, session.UserID) ([]api.Task, error) {
	f.called++
	return f.tasks, f.err
}

func (f *fakeBackend) CreatedTasks(context.Context, session.UserID) ([]api.Task, error) {
	f.called++
	return nil, f.err
}

func (f *fakeBackend) ListAppointments(context.Context) ([]api.Appointment, error) {
	return nil, f.err
}

func (f *fakeBackend) AppointmentHistory(context.Context, session.UserID) ([]api.Appointment, error) {
	return nil, f.err
}

func (f *fakeBackend) Mailbox(context.Context, session.UserID) (*api.Mailbox, error) {
	return &api.Mailbox{}, f.err
}

func (f *fakeBackend) ListDocuments(context.Context) ([]api.Document, error) {
	return nil, f.err
}

type fakeAuth struct {
	resp  *api.AuthResponse
	err   error
	calls int
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (*api.AuthResponse, error) {
	f.calls++
	return f.resp, f.err
}

var (
	employee = session.Identity{Token: "t1", Username: "emp", Role: session.RoleEmployee, UserID: 2}
	admin    = session.Identity{Token: "t2", Username: "boss", Role: session.RoleAdmin, UserID: 1}
	customer = session.Identity{Token: "t3", Username: "cust", Role: session.RoleCustomer, UserID: 7}
)

func newTestModel(t *testing.T, who session.Identity) (Model, *session.Context, *fakeBackend, *fakeAuth) {
	t.Helper()
	s := session.New(storage.NewMemoryStore(), log.Discard())
	if !who.IsAnonymous() {
		s.Login(who)
	}
	r := router.New(s, router.WithLogger(log.Discard()))
	backend := &fakeBackend{}
	auth := &fakeAuth{}
	return NewModel(context.Background(), r, backend, auth, log.Discard()), s, backend, auth
}

// collect runs cmd and any batched commands, keeping the messages that arrive
// promptly. Timer driven commands such as cursor blinks are skipped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

func find[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	for _, msg := range collect(cmd) {
		if m, ok := msg.(T); ok {
			return m
		}
	}
	var zero T
	t.Fatalf("no %T produced", zero)
	return zero
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestAnonymousStartShowsLogin(t *testing.T) {
	m, _, _, _ := newTestModel(t, session.Anonymous)

	open := find[openMsg](t, m.Init())
	assert.Equal(t, router.ViewDashboard, open.view)

	m, _ = update(t, m, open)
	assert.Equal(t, ScreenLogin, m.Screen())
	assert.Nil(t, m.Current())
}

func TestLoginFlow(t *testing.T) {
	m, s, _, auth := newTestModel(t, session.Anonymous)
	uid := session.UserID(7)
	auth.resp = &api.AuthResponse{Status: api.StatusSuccess, Token: "tok", Username: "cust", Role: session.RoleCustomer, UserID: &uid}

	m, _ = update(t, m, openMsg{view: router.ViewLogin})
	m = typeText(t, m, "cust")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(t, m, "secret")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	login := find[loginMsg](t, cmd)
	require.NoError(t, login.err)
	assert.Equal(t, 1, auth.calls)

	m, _ = update(t, m, login)
	assert.Equal(t, ScreenMenu, m.Screen())
	assert.Equal(t, LoginSuccessMessage, m.status)
	assert.Equal(t, "cust", s.Username())
	assert.Contains(t, m.View(), "Welcome, cust")

	for _, link := range m.links {
		assert.NotEqual(t, router.ViewUsers, link.View)
	}
}

func TestLoginSubmitIgnoredWhileInFlight(t *testing.T) {
	m, _, _, auth := newTestModel(t, session.Anonymous)
	uid := session.UserID(7)
	auth.resp = &api.AuthResponse{Status: api.StatusSuccess, Token: "tok", Username: "cust", Role: session.RoleCustomer, UserID: &uid}

	m, _ = update(t, m, openMsg{view: router.ViewLogin})
	m = typeText(t, m, "cust")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(t, m, "secret")

	m, first := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, first)
	assert.True(t, m.loading)

	m, second := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, second)
	assert.True(t, m.loading)

	login := find[loginMsg](t, first)
	assert.Equal(t, 1, auth.calls)

	m, _ = update(t, m, login)
	assert.False(t, m.loading)
	assert.Equal(t, ScreenMenu, m.Screen())
}

func TestAnonymousReachesPublicPages(t *testing.T) {
	m, s, _, _ := newTestModel(t, session.Anonymous)

	m, _ = update(t, m, find[openMsg](t, m.Init()))
	require.Equal(t, ScreenLogin, m.Screen())
	assert.Contains(t, m.View(), "esc")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	require.Equal(t, ScreenMenu, m.Screen())
	assert.Equal(t, menuLinks(session.Anonymous), m.links)

	var seen []router.View
	services := -1
	for i, link := range m.links {
		seen = append(seen, link.View)
		if link.View == router.ViewServices {
			services = i
		}
	}
	assert.Contains(t, seen, router.ViewLogin)
	assert.Contains(t, seen, router.ViewSignup)
	assert.NotContains(t, seen, viewLogout)
	require.GreaterOrEqual(t, services, 0)

	for m.cursor < services {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ScreenView, m.Screen())
	require.NotNil(t, m.Current())
	assert.Equal(t, router.ViewServices, m.Current().View())
	assert.Equal(t, router.Authorized, m.Current().Decision().Outcome)
	assert.Contains(t, m.text, "Services")

	// Back from a public page returns to the public menu, not the login form.
	inst := m.Current()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ScreenMenu, m.Screen())
	assert.False(t, inst.Active())
	assert.False(t, s.Authenticated())
}

func TestMenuLogoutEntry(t *testing.T) {
	m, s, _, _ := newTestModel(t, employee)
	m, _ = update(t, m, openMsg{view: router.ViewDashboard})
	require.Equal(t, ScreenMenu, m.Screen())
	assert.Contains(t, m.View(), "Logout")

	for m.cursor < len(m.links)-1 {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	require.Equal(t, viewLogout, m.links[m.cursor].View)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, s.Authenticated())
	assert.Equal(t, ScreenLogin, m.Screen())
	assert.Equal(t, LogoutSuccessMessage, m.status)
}

func TestLoginValidationSkipsBackend(t *testing.T) {
	m, s, _, auth := newTestModel(t, session.Anonymous)
	m, _ = update(t, m, openMsg{view: router.ViewLogin})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, 0, auth.calls)
	assert.NotEmpty(t, m.lastError)
	assert.False(t, s.Authenticated())
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	m, s, _, _ := newTestModel(t, session.Anonymous)
	m, _ = update(t, m, openMsg{view: router.ViewLogin})

	m, _ = update(t, m, loginMsg{err: errors.New(errors.ErrCodeAuthLoginFailed, "Invalid credentials")})
	assert.Equal(t, ScreenLogin, m.Screen())
	assert.Equal(t, "Invalid credentials", m.lastError)
	assert.False(t, s.Authenticated())
}

func TestDeniedView(t *testing.T) {
	m, _, backend, _ := newTestModel(t, customer)

	m, cmd := update(t, m, openMsg{view: router.ViewUsers})
	assert.Nil(t, cmd)
	assert.Equal(t, ScreenDenied, m.Screen())
	assert.Contains(t, m.View(), router.AccessDeniedMessage)
	assert.Equal(t, 0, backend.called)
}

func TestLoadedContentIsApplied(t *testing.T) {
	m, _, backend, _ := newTestModel(t, admin)
	backend.users = []api.User{{ID: 1, Username: "boss", Role: session.RoleAdmin}, {ID: 2, Username: "emp", Role: session.RoleEmployee}}

	m, cmd := update(t, m, openMsg{view: router.ViewUsers})
	require.Equal(t, ScreenView, m.Screen())
	assert.True(t, m.loading)

	loaded := find[loadedMsg](t, cmd)
	m, _ = update(t, m, loaded)
	assert.False(t, m.loading)
	assert.Len(t, m.content.Rows(), 2)
	assert.Contains(t, m.View(), "emp")
}

func TestLateResponseAfterLogoutIsDiscarded(t *testing.T) {
	m, s, backend, _ := newTestModel(t, employee)
	backend.tasks = []api.Task{{ID: 1, Title: "Inventory"}}

	m, cmd := update(t, m, openMsg{view: router.ViewTaskList})
	inst := m.Current()
	require.NotNil(t, inst)

	// Sign out before the response arrives.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	assert.False(t, s.Authenticated())
	assert.Equal(t, ScreenLogin, m.Screen())
	assert.False(t, inst.Active())

	loaded := find[loadedMsg](t, cmd)
	m, _ = update(t, m, loaded)
	assert.Equal(t, ScreenLogin, m.Screen())
	assert.Empty(t, m.content.Rows())
}

func TestLateResponseAfterSwitchingViewsIsDiscarded(t *testing.T) {
	m, _, backend, _ := newTestModel(t, admin)
	backend.users = []api.User{{ID: 1, Username: "boss"}}

	m, first := update(t, m, openMsg{view: router.ViewUsers})
	m, _ = update(t, m, openMsg{view: router.ViewServices})
	require.Equal(t, ScreenView, m.Screen())

	m, _ = update(t, m, find[loadedMsg](t, first))
	assert.Empty(t, m.content.Rows())
	assert.Contains(t, m.text, "Services")
}

func TestSessionRejectedReturnsToLogin(t *testing.T) {
	m, s, backend, _ := newTestModel(t, employee)
	backend.err = errors.NewSessionRejectedError(401)

	m, cmd := update(t, m, openMsg{view: router.ViewTaskList})
	m, _ = update(t, m, find[loadedMsg](t, cmd))

	assert.Equal(t, ScreenLogin, m.Screen())
	assert.False(t, s.Authenticated())
	assert.Contains(t, m.lastError, "session rejected")
}

func TestBackendErrorStaysOnView(t *testing.T) {
	m, s, backend, _ := newTestModel(t, employee)
	backend.err = errors.NewBackendError(500, "Internal error")

	m, cmd := update(t, m, openMsg{view: router.ViewTaskList})
	m, _ = update(t, m, find[loadedMsg](t, cmd))

	assert.Equal(t, ScreenView, m.Screen())
	assert.Equal(t, "Internal error", m.lastError)
	assert.True(t, s.Authenticated())
}

func TestMenuNavigation(t *testing.T) {
	m, _, _, _ := newTestModel(t, employee)
	m, _ = update(t, m, openMsg{view: router.ViewDashboard})
	require.Equal(t, ScreenMenu, m.Screen())

	expected := router.NavLinks(session.RoleEmployee)
	require.Len(t, m.links, len(expected)+1)
	assert.Equal(t, expected, m.links[:len(expected)])
	assert.Equal(t, viewLogout, m.links[len(expected)].View)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, expected[0].View, m.Current().View())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ScreenMenu, m.Screen())
}

func TestFormViewShowsCommand(t *testing.T) {
	m, _, _, _ := newTestModel(t, customer)
	m, cmd := update(t, m, openMsg{view: router.ViewAppointmentBook})
	assert.Nil(t, cmd)
	assert.Equal(t, ScreenView, m.Screen())
	assert.Contains(t, m.text, "staffdesk appointments book")
}

func TestQuitClosesInstance(t *testing.T) {
	m, _, _, _ := newTestModel(t, employee)
	m, _ = update(t, m, openMsg{view: router.ViewDashboard})
	inst := m.Current()

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, m.quitting)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, inst.Active())
}
