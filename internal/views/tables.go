// Package views builds the content of the client's list views: it loads the
// data a role may see and shapes it into tables for the CLI and the TUI.
package views

import (
	"strconv"
	"strings"

	"github.com/staffdesk/staffdesk/internal/api"
	"github.com/staffdesk/staffdesk/internal/router"
	"github.com/staffdesk/staffdesk/internal/session"
	"github.com/staffdesk/staffdesk/internal/ux"
)

func id(n int64) string { return strconv.FormatInt(n, 10) }

func name(u *api.User) string {
	if u == nil {
		return "-"
	}
	return u.DisplayName()
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// Users renders the admin user list.
func Users(users []api.User) *ux.Table {
	t := &ux.Table{Title: "Users", Headers: []string{"ID", "Username", "Name", "Email", "Role"}, Data: users}
	for _, u := range users {
		t.Rows = append(t.Rows, []string{u.ID.String(), u.Username, u.Name, u.Email, string(u.Role)})
	}
	return t
}

// Tasks renders a task list.
func Tasks(tasks []api.Task) *ux.Table {
	t := &ux.Table{
		Title:   "Tasks",
		Headers: []string{"ID", "Title", "Priority", "Status", "Due", "Assigned To", "Created By"},
		Data:    tasks,
	}
	for _, task := range tasks {
		t.Rows = append(t.Rows, []string{
			id(task.ID), task.Title, string(task.Priority), string(task.Status),
			task.DueDate.String(), name(task.AssignedTo), name(task.CreatedBy),
		})
	}
	return t
}

// Task renders one task as a two-column table.
func Task(task *api.Task) *ux.Table {
	return &ux.Table{
		Title:   "Task " + id(task.ID),
		Headers: []string{"Field", "Value"},
		Rows: [][]string{
			{"Title", task.Title},
			{"Description", task.Description},
			{"Priority", string(task.Priority)},
			{"Status", string(task.Status)},
			{"Due", task.DueDate.String()},
			{"Assigned To", name(task.AssignedTo)},
			{"Created By", name(task.CreatedBy)},
			{"Created", task.CreatedAt.String()},
			{"Updated", task.UpdatedAt.String()},
		},
		Data: task,
	}
}

// Appointments renders appointments under title.
func Appointments(title string, appts []api.Appointment) *ux.Table {
	t := &ux.Table{
		Title:   title,
		Headers: []string{"ID", "Date", "Service", "Status", "Customer", "Employee", "Notes"},
		Data:    appts,
	}
	for _, a := range appts {
		t.Rows = append(t.Rows, []string{
			id(a.ID), a.AppointmentDate.String(), a.ServiceType, string(a.Status),
			name(a.Customer), name(a.Employee), truncate(a.Notes, 40),
		})
	}
	return t
}

// Messages renders a mailbox from the point of view of me.
func Messages(msgs []api.Message, me session.UserID) *ux.Table {
	t := &ux.Table{
		Title:   "Messages",
		Headers: []string{"ID", "Sent", "Direction", "With", "Subject", "Read"},
		Data:    msgs,
	}
	for _, m := range msgs {
		direction, with := "in", m.Sender
		if m.Sender != nil && m.Sender.ID == me {
			direction, with = "out", m.Recipient
		}
		read := "no"
		if m.IsRead {
			read = "yes"
		}
		t.Rows = append(t.Rows, []string{id(m.ID), m.SentAt.String(), direction, name(with), m.Subject, read})
	}
	return t
}

// Documents renders the document list.
func Documents(docs []api.Document) *ux.Table {
	t := &ux.Table{
		Title:   "Documents",
		Headers: []string{"ID", "Title", "Type", "File", "Created By", "Assigned To", "Updated"},
		Data:    docs,
	}
	for _, d := range docs {
		t.Rows = append(t.Rows, []string{
			id(d.ID), d.Title, d.DocumentType, d.FileName,
			name(d.CreatedBy), name(d.AssignedTo), d.UpdatedAt.String(),
		})
	}
	return t
}

// Document renders one document including its content.
func Document(d *api.Document) *ux.Table {
	return &ux.Table{
		Title:   "Document " + id(d.ID),
		Headers: []string{"Field", "Value"},
		Rows: [][]string{
			{"Title", d.Title},
			{"Type", d.DocumentType},
			{"File", d.FileName},
			{"Created By", name(d.CreatedBy)},
			{"Assigned To", name(d.AssignedTo)},
			{"Created", d.CreatedAt.String()},
			{"Content", d.Content},
		},
		Data: d,
	}
}

// Calendar merges calendar tasks and appointments into one agenda.
func Calendar(cal *api.Calendar) *ux.Table {
	t := &ux.Table{Title: "Calendar", Headers: []string{"Kind", "ID", "When", "What", "Status"}, Data: cal}
	for _, task := range cal.Tasks {
		t.Rows = append(t.Rows, []string{"task", id(task.ID), task.DueDate.String(), task.Title, string(task.Status)})
	}
	for _, a := range cal.Appointments {
		t.Rows = append(t.Rows, []string{"appointment", id(a.ID), a.AppointmentDate.String(), a.ServiceType, string(a.Status)})
	}
	return t
}

// Nav renders the navigation bar for an identity.
func Nav(nb router.NavBar) *ux.Table {
	title := "Navigation"
	if nb.Greeting != "" {
		title = nb.Greeting
	}
	t := &ux.Table{Title: title, Headers: []string{"View", "Command"}, Data: nb}
	for _, l := range nb.Links {
		t.Rows = append(t.Rows, []string{l.Title, l.Command})
	}
	if nb.Logout {
		t.Rows = append(t.Rows, []string{"Logout", "staffdesk auth logout"})
	}
	return t
}
