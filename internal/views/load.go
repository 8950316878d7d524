package views

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/staffdesk/staffdesk/internal/api"
	"github.com/staffdesk/staffdesk/internal/forms"
	"github.com/staffdesk/staffdesk/internal/router"
	"github.com/staffdesk/staffdesk/internal/session"
	"github.com/staffdesk/staffdesk/internal/ux"
)

// Backend is the part of the API client the views read from.
type Backend interface {
	ListUsers(ctx context.Context) ([]api.User, error)
	ListTasks(ctx context.Context) ([]api.Task, error)
	AssignedTasks(ctx context.Context, userID session.UserID) ([]api.Task, error)
	CreatedTasks(ctx context.Context, userID session.UserID) ([]api.Task, error)
	ListAppointments(ctx context.Context) ([]api.Appointment, error)
	AppointmentHistory(ctx context.Context, customerID session.UserID) ([]api.Appointment, error)
	Mailbox(ctx context.Context, userID session.UserID) (*api.Mailbox, error)
	ListDocuments(ctx context.Context) ([]api.Document, error)
}

var _ Backend = (*api.Client)(nil)

// LoadTasks returns the tasks id may see under filter. Employees see tasks
// assigned to or created by them; admins see every task and filter locally.
func LoadTasks(ctx context.Context, b Backend, who session.Identity, filter forms.TaskFilter) ([]api.Task, error) {
	switch router.TaskScopeFor(who.Role) {
	case router.TaskScopeAll:
		tasks, err := b.ListTasks(ctx)
		if err != nil {
			return nil, err
		}
		return filterOwn(tasks, filter, who.UserID), nil

	case router.TaskScopeSelf:
		switch filter {
		case forms.TaskFilterAssigned:
			return b.AssignedTasks(ctx, who.UserID)
		case forms.TaskFilterCreated:
			return b.CreatedTasks(ctx, who.UserID)
		}
		assigned, err := b.AssignedTasks(ctx, who.UserID)
		if err != nil {
			return nil, err
		}
		created, err := b.CreatedTasks(ctx, who.UserID)
		if err != nil {
			return nil, err
		}
		return mergeTasks(assigned, created), nil

	default:
		return nil, fmt.Errorf("role %s has no task list", who.Role)
	}
}

func filterOwn(tasks []api.Task, filter forms.TaskFilter, me session.UserID) []api.Task {
	if filter == forms.TaskFilterAll || filter == "" {
		return tasks
	}
	out := make([]api.Task, 0, len(tasks))
	for _, t := range tasks {
		var u *api.User
		if filter == forms.TaskFilterAssigned {
			u = t.AssignedTo
		} else {
			u = t.CreatedBy
		}
		if u != nil && u.ID == me {
			out = append(out, t)
		}
	}
	return out
}

func mergeTasks(lists ...[]api.Task) []api.Task {
	seen := make(map[int64]bool)
	var out []api.Task
	for _, list := range lists {
		for _, t := range list {
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadMessages returns the combined mailbox of who under filter.
func LoadMessages(ctx context.Context, b Backend, who session.Identity, filter forms.MessageFilter) ([]api.Message, error) {
	box, err := b.Mailbox(ctx, who.UserID)
	if err != nil {
		return nil, err
	}
	msgs := box.All()
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].SentAt.After(msgs[j].SentAt.Time) })
	return forms.FilterMessages(msgs, filter, who.UserID), nil
}

// LoadHistory returns the appointment history of who under filter.
func LoadHistory(ctx context.Context, b Backend, who session.Identity, filter forms.HistoryFilter, now time.Time) ([]api.Appointment, error) {
	appts, err := b.AppointmentHistory(ctx, who.UserID)
	if err != nil {
		return nil, err
	}
	return forms.FilterAppointments(appts, filter, now), nil
}

// Loader fetches the content of one list view.
type Loader func(ctx context.Context, b Backend, who session.Identity) (*ux.Table, error)

var loaders = map[router.View]Loader{
	router.ViewUsers: func(ctx context.Context, b Backend, _ session.Identity) (*ux.Table, error) {
		users, err := b.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		return Users(users), nil
	},
	router.ViewTaskList: func(ctx context.Context, b Backend, who session.Identity) (*ux.Table, error) {
		tasks, err := LoadTasks(ctx, b, who, forms.TaskFilterAll)
		if err != nil {
			return nil, err
		}
		return Tasks(tasks), nil
	},
	router.ViewEmployeeAppointments: func(ctx context.Context, b Backend, _ session.Identity) (*ux.Table, error) {
		appts, err := b.ListAppointments(ctx)
		if err != nil {
			return nil, err
		}
		return Appointments("Employee Appointments", appts), nil
	},
	router.ViewEmployeeDocuments: func(ctx context.Context, b Backend, _ session.Identity) (*ux.Table, error) {
		docs, err := b.ListDocuments(ctx)
		if err != nil {
			return nil, err
		}
		return Documents(docs), nil
	},
	router.ViewAppointmentHistory: func(ctx context.Context, b Backend, who session.Identity) (*ux.Table, error) {
		appts, err := LoadHistory(ctx, b, who, forms.HistoryAll, time.Now())
		if err != nil {
			return nil, err
		}
		return Appointments("Appointment History", appts), nil
	},
	router.ViewMessages: func(ctx context.Context, b Backend, who session.Identity) (*ux.Table, error) {
		msgs, err := LoadMessages(ctx, b, who, forms.MessagesAll)
		if err != nil {
			return nil, err
		}
		return Messages(msgs, who.UserID), nil
	},
}

// LoaderFor returns the loader of a list view.
func LoaderFor(view router.View) (Loader, bool) {
	l, ok := loaders[view]
	return l, ok
}
