package views

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/staffdesk/internal/api"
	"github.com/staffdesk/staffdesk/internal/forms"
	"github.com/staffdesk/staffdesk/internal/router"
	"github.com/staffdesk/staffdesk/internal/session"
)

type fakeBackend struct {
	users    []api.User
	tasks    []api.Task
	assigned []api.Task
	created  []api.Task
	appts    []api.Appointment
	history  []api.Appointment
	mailbox  *api.Mailbox
	docs     []api.Document
	err      error
	calls    []string
}

func (f *fakeBackend) ListUsers(context.Context) ([]api.User, error) {
	f.calls = append(f.calls, "users")
	return f.users, f.err
}

func (f *fakeBackend) ListTasks(context.Context) ([]api.Task, error) {
	f.calls = append(f.calls, "tasks")
	return f.tasks, f.err
}

func (f *fakeBackend) AssignedTasks(context.Context, session.UserID) ([]api.Task, error) {
	f.calls = append(f.calls, "assigned")
	return f.assigned, f.err
}

func (f *fakeBackend) CreatedTasks(context.Context, session.UserID) ([]api.Task, error) {
	f.calls = append(f.calls, "created")
	return f.created, f.err
}

func (f *fakeBackend) ListAppointments(context.Context) ([]api.Appointment, error) {
	f.calls = append(f.calls, "appointments")
	return f.appts, f.err
}

func (f *fakeBackend) AppointmentHistory(context.Context, session.UserID) ([]api.Appointment, error) {
	f.calls = append(f.calls, "history")
	return f.history, f.err
}

func (f *fakeBackend) Mailbox(context.Context, session.UserID) (*api.Mailbox, error) {
	f.calls = append(f.calls, "mailbox")
	if f.err != nil {
		return nil, f.err
	}
	return f.mailbox, nil
}

func (f *fakeBackend) ListDocuments(context.Context) ([]api.Document, error) {
	f.calls = append(f.calls, "documents")
	return f.docs, f.err
}

var (
	employee = session.Identity{Token: "t", Username: "emp", Role: session.RoleEmployee, UserID: 2}
	admin    = session.Identity{Token: "t", Username: "boss", Role: session.RoleAdmin, UserID: 1}
	customer = session.Identity{Token: "t", Username: "cust", Role: session.RoleCustomer, UserID: 7}
)

func taskIDs(tasks []api.Task) []int64 {
	var out []int64
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestLoadTasksEmployeeScope(t *testing.T) {
	b := &fakeBackend{
		assigned: []api.Task{{ID: 3}, {ID: 1}},
		created:  []api.Task{{ID: 1}, {ID: 5}},
	}

	tasks, err := LoadTasks(context.Background(), b, employee, forms.TaskFilterAll)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 5}, taskIDs(tasks))
	assert.Equal(t, []string{"assigned", "created"}, b.calls)

	b.calls = nil
	tasks, err = LoadTasks(context.Background(), b, employee, forms.TaskFilterCreated)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 5}, taskIDs(tasks))
	assert.Equal(t, []string{"created"}, b.calls)
}

func TestLoadTasksAdminScope(t *testing.T) {
	mine := &api.User{ID: 1}
	other := &api.User{ID: 2}
	b := &fakeBackend{tasks: []api.Task{
		{ID: 1, AssignedTo: other, CreatedBy: mine},
		{ID: 2, AssignedTo: mine, CreatedBy: other},
		{ID: 3, AssignedTo: other, CreatedBy: other},
	}}

	tasks, err := LoadTasks(context.Background(), b, admin, forms.TaskFilterAll)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, taskIDs(tasks))
	assert.Equal(t, []string{"tasks"}, b.calls)

	tasks, err = LoadTasks(context.Background(), b, admin, forms.TaskFilterAssigned)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, taskIDs(tasks))
}

func TestLoadTasksCustomerHasNoScope(t *testing.T) {
	b := &fakeBackend{}
	_, err := LoadTasks(context.Background(), b, customer, forms.TaskFilterAll)
	assert.Error(t, err)
	assert.Empty(t, b.calls)
}

func TestLoadTasksPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := LoadTasks(context.Background(), &fakeBackend{err: boom}, employee, forms.TaskFilterAll)
	assert.ErrorIs(t, err, boom)
}

func TestLoadMessages(t *testing.T) {
	me := &api.User{ID: 7, Username: "cust"}
	emp := &api.User{ID: 2, Username: "emp"}
	day := func(d int) api.DateTime { return api.DateTime{Time: time.Date(2026, 5, d, 9, 0, 0, 0, time.UTC)} }
	b := &fakeBackend{mailbox: &api.Mailbox{
		Sent:     []api.Message{{ID: 1, Sender: me, Recipient: emp, SentAt: day(1), IsRead: true}},
		Received: []api.Message{{ID: 2, Sender: emp, Recipient: me, SentAt: day(3)}},
	}}

	msgs, err := LoadMessages(context.Background(), b, customer, forms.MessagesAll)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, int64(2), msgs[0].ID, "newest first")

	msgs, err = LoadMessages(context.Background(), b, customer, forms.MessagesSent)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, int64(1), msgs[0].ID)

	table := Messages(msgs, customer.UserID)
	assert.Equal(t, []string{"1", "2026-05-01T09:00:00", "out", "emp", "", "yes"}, table.Rows[0])
}

func TestLoaders(t *testing.T) {
	b := &fakeBackend{
		users:   []api.User{{ID: 1, Username: "boss", Role: session.RoleAdmin}},
		appts:   []api.Appointment{{ID: 4, ServiceType: "Massage", Status: api.AppointmentScheduled}},
		history: []api.Appointment{{ID: 5, ServiceType: "Haircut", Status: api.AppointmentCompleted}},
		docs:    []api.Document{{ID: 6, Title: "Q1", DocumentType: "REPORT"}},
		mailbox: &api.Mailbox{},
	}

	tests := []struct {
		view  router.View
		who   session.Identity
		title string
		rows  int
	}{
		{router.ViewUsers, admin, "Users", 1},
		{router.ViewEmployeeAppointments, employee, "Employee Appointments", 1},
		{router.ViewEmployeeDocuments, employee, "Documents", 1},
		{router.ViewAppointmentHistory, customer, "Appointment History", 1},
		{router.ViewMessages, customer, "Messages", 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			load, ok := LoaderFor(tt.view)
			require.True(t, ok)
			table, err := load(context.Background(), b, tt.who)
			require.NoError(t, err)
			assert.Equal(t, tt.title, table.Title)
			assert.Len(t, table.Rows, tt.rows)
		})
	}

	_, ok := LoaderFor(router.ViewTaskCreate)
	assert.False(t, ok, "form views have no loader")
}

func TestTables(t *testing.T) {
	due, err := api.ParseDateTime("2026-03-01T00:00:00")
	require.NoError(t, err)
	task := api.Task{
		ID: 9, Title: "Inventory", Priority: api.PriorityHigh, Status: api.TaskPending, DueDate: due,
		AssignedTo: &api.User{ID: 2, Username: "emp", Name: "Erin"},
	}
	tasks := Tasks([]api.Task{task})
	assert.Equal(t, []string{"9", "Inventory", "HIGH", "PENDING", "2026-03-01T00:00:00", "Erin", "-"}, tasks.Rows[0])
	assert.Len(t, tasks.Headers, len(tasks.Rows[0]))

	detail := Task(&task)
	assert.Equal(t, "Task 9", detail.Title)

	cal := Calendar(&api.Calendar{
		Tasks:        []api.Task{task},
		Appointments: []api.Appointment{{ID: 4, ServiceType: "Massage", Status: api.AppointmentScheduled}},
	})
	require.Len(t, cal.Rows, 2)
	assert.Equal(t, "task", cal.Rows[0][0])
	assert.Equal(t, "appointment", cal.Rows[1][0])
}

func TestNav(t *testing.T) {
	nav := Nav(router.BuildNavBar(customer))
	assert.Equal(t, "Welcome, cust", nav.Title)
	assert.Equal(t, []string{"Logout", "staffdesk auth logout"}, nav.Rows[len(nav.Rows)-1])

	anon := Nav(router.BuildNavBar(session.Anonymous))
	assert.Equal(t, "Navigation", anon.Title)
	for _, row := range anon.Rows {
		assert.NotEqual(t, "Logout", row[0])
	}
}

func TestPages(t *testing.T) {
	for _, v := range []router.View{router.ViewHome, router.ViewAdminInfo, router.ViewServices, router.ViewContacts} {
		p, ok := Page(v)
		assert.True(t, ok, v)
		assert.NotEmpty(t, p)
	}
	_, ok := Page(router.ViewUsers)
	assert.False(t, ok)
}
