package forms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/staffdesk/internal/api"
	"github.com/staffdesk/staffdesk/internal/errors"
	"github.com/staffdesk/staffdesk/internal/session"
)

func assertCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := errors.As(err)
	require.True(t, ok, "expected AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func TestLoginValidate(t *testing.T) {
	assert.NoError(t, Login{Username: "ann", Password: "pw"}.Validate())
	assertCode(t, Login{Username: " ", Password: "pw"}.Validate(), errors.ErrCodeValidationRequired)
	assertCode(t, Login{Username: "ann"}.Validate(), errors.ErrCodeValidationRequired)
}

func TestSignupValidate(t *testing.T) {
	valid := Signup{Username: "ann", Password: "pw", Name: "Ann", Email: "ann@example.com", Role: "customer"}
	require.NoError(t, valid.Validate())
	assert.Equal(t, session.RoleCustomer, valid.Request().Role)

	tests := []struct {
		name string
		edit func(*Signup)
		code errors.ErrorCode
	}{
		{"missing name", func(s *Signup) { s.Name = "" }, errors.ErrCodeValidationRequired},
		{"bad email", func(s *Signup) { s.Email = "ann" }, errors.ErrCodeValidationInvalid},
		{"admin role", func(s *Signup) { s.Role = "ADMIN" }, errors.ErrCodeValidationInvalid},
		{"empty role", func(s *Signup) { s.Role = "" }, errors.ErrCodeValidationInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.edit(&s)
			assertCode(t, s.Validate(), tt.code)
		})
	}
}

func TestTaskForm(t *testing.T) {
	t.Run("assignee required", func(t *testing.T) {
		err := Task{Title: "Inventory"}.Validate()
		assertCode(t, err, errors.ErrCodeValidationRequired)
		assert.Contains(t, err.Error(), MsgSelectAssignee)
	})

	t.Run("bad priority", func(t *testing.T) {
		assertCode(t, Task{Title: "x", AssigneeID: 2, Priority: "URGENT"}.Validate(), errors.ErrCodeValidationInvalid)
	})

	t.Run("bad due date", func(t *testing.T) {
		assertCode(t, Task{Title: "x", AssigneeID: 2, DueDate: "03/01/2026"}.Validate(), errors.ErrCodeValidationInvalid)
	})

	t.Run("defaults", func(t *testing.T) {
		f := Task{Title: " Inventory ", AssigneeID: 2, DueDate: "2026-03-01"}
		require.NoError(t, f.Validate())
		task := f.Payload()
		assert.Equal(t, "Inventory", task.Title)
		assert.Equal(t, api.PriorityMedium, task.Priority)
		assert.Equal(t, api.TaskPending, task.Status)
		assert.Equal(t, "2026-03-01T00:00:00", task.DueDate.String())
	})

	t.Run("no due date", func(t *testing.T) {
		task := Task{Title: "x", AssigneeID: 2, Priority: "high"}.Payload()
		assert.True(t, task.DueDate.IsZero())
		assert.Equal(t, api.PriorityHigh, task.Priority)
	})
}

func TestParseStatuses(t *testing.T) {
	s, err := ParseTaskStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, api.TaskInProgress, s)
	_, err = ParseTaskStatus("DONE")
	assertCode(t, err, errors.ErrCodeValidationInvalid)

	a, err := ParseAppointmentStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, api.AppointmentCompleted, a)
	_, err = ParseAppointmentStatus("")
	assertCode(t, err, errors.ErrCodeValidationInvalid)
}

func TestBookingValidate(t *testing.T) {
	valid := Booking{
		CustomerID:  7,
		Role:        session.RoleCustomer,
		EmployeeID:  2,
		Date:        "2026-05-01",
		Time:        "10:30",
		Description: "Massage",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		edit    func(*Booking)
		code    errors.ErrorCode
		message string
	}{
		{"empty date", func(b *Booking) { b.Date = "" }, errors.ErrCodeValidationRequired, MsgDateRequired},
		{"empty time", func(b *Booking) { b.Time = "" }, errors.ErrCodeValidationRequired, MsgTimeRequired},
		{"no employee", func(b *Booking) { b.EmployeeID = 0 }, errors.ErrCodeValidationRequired, MsgSelectEmployee},
		{"no description", func(b *Booking) { b.Description = " " }, errors.ErrCodeValidationRequired, MsgDescriptionRequired},
		{"no user id", func(b *Booking) { b.CustomerID = 0 }, errors.ErrCodeValidationRequired, MsgUserIDRequired},
		{"bad time", func(b *Booking) { b.Time = "half past ten" }, errors.ErrCodeValidationInvalid, "HH:MM"},
		{"employee role", func(b *Booking) { b.Role = session.RoleEmployee }, errors.ErrCodeAuthDenied, "Your current role is: EMPLOYEE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.edit(&b)
			err := b.Validate()
			assertCode(t, err, tt.code)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestBookingPayload(t *testing.T) {
	appt := Booking{Date: "2026-05-01", Time: "10:30", Description: "Massage"}.Payload()
	assert.Equal(t, "2026-05-01T10:30:00", appt.AppointmentDate.String())
	assert.Equal(t, "Massage", appt.ServiceType)
	assert.Equal(t, api.AppointmentScheduled, appt.Status)
}

func TestDateRange(t *testing.T) {
	assert.NoError(t, DateRange{Start: "2026-05-01", End: "2026-05-31"}.Validate())

	err := DateRange{Start: "2026-05-01"}.Validate()
	assertCode(t, err, errors.ErrCodeValidationRequired)
	assert.Contains(t, err.Error(), MsgRangeRequired)

	assertCode(t, DateRange{Start: "May 1", End: "2026-05-31"}.Validate(), errors.ErrCodeValidationInvalid)
	assertCode(t, DateRange{Start: "2026-05-31", End: "2026-05-01"}.Validate(), errors.ErrCodeValidationInvalid)
}

func TestMessageDraft(t *testing.T) {
	err := MessageDraft{Subject: "Hi", Content: "Hello"}.Validate()
	assertCode(t, err, errors.ErrCodeValidationRequired)
	assert.Contains(t, err.Error(), MsgSelectRecipient)

	assertCode(t, MessageDraft{RecipientID: 2, Content: "Hello"}.Validate(), errors.ErrCodeValidationRequired)
	assertCode(t, MessageDraft{RecipientID: 2, Subject: "Hi"}.Validate(), errors.ErrCodeValidationRequired)

	f := MessageDraft{RecipientID: 2, Subject: " Hi ", Content: "Hello"}
	require.NoError(t, f.Validate())
	assert.Equal(t, "Hi", f.Payload().Subject)
}

func TestFeedback(t *testing.T) {
	for _, rating := range []int{0, 6, -1} {
		assertCode(t, Feedback{Rating: rating}.Validate(), errors.ErrCodeValidationInvalid)
	}
	for rating := 1; rating <= 5; rating++ {
		assert.NoError(t, Feedback{Rating: rating}.Validate())
	}
	assert.Equal(t, "Great", Feedback{Rating: 5, Comments: " Great "}.Payload().Comments)
}

func TestAppointmentUpdate(t *testing.T) {
	assertCode(t, AppointmentUpdate{}.Validate(), errors.ErrCodeValidationRequired)
	assertCode(t, AppointmentUpdate{Status: "LATE"}.Validate(), errors.ErrCodeValidationInvalid)

	current := api.Appointment{ID: 1, Status: api.AppointmentScheduled, Notes: "old", ServiceType: "Massage"}
	u := AppointmentUpdate{Status: "completed", TreatmentDetails: "30 min"}
	require.NoError(t, u.Validate())
	got := u.Apply(current)
	assert.Equal(t, api.AppointmentCompleted, got.Status)
	assert.Equal(t, "old", got.Notes)
	assert.Equal(t, "30 min", got.TreatmentDetails)
	assert.Equal(t, "Massage", got.ServiceType)
}

func TestDocumentForm(t *testing.T) {
	assertCode(t, Document{DocumentType: "REPORT"}.Validate(), errors.ErrCodeValidationRequired)
	assertCode(t, Document{Title: "Q1"}.Validate(), errors.ErrCodeValidationRequired)
	assert.NoError(t, Document{Title: "Q1", DocumentType: "REPORT"}.Validate())
}

func TestFilterAppointments(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) api.DateTime { return api.DateTime{Time: now.Add(d)} }
	appts := []api.Appointment{
		{ID: 1, AppointmentDate: at(24 * time.Hour), Status: api.AppointmentScheduled},
		{ID: 2, AppointmentDate: at(-24 * time.Hour), Status: api.AppointmentScheduled},
		{ID: 3, AppointmentDate: at(48 * time.Hour), Status: api.AppointmentCancelled},
		{ID: 4, AppointmentDate: at(0), Status: api.AppointmentScheduled},
	}

	ids := func(list []api.Appointment) []int64 {
		var out []int64
		for _, a := range list {
			out = append(out, a.ID)
		}
		return out
	}

	assert.Equal(t, []int64{1, 2, 3, 4}, ids(FilterAppointments(appts, HistoryAll, now)))
	assert.Equal(t, []int64{1, 4}, ids(FilterAppointments(appts, HistoryUpcoming, now)))
	assert.Equal(t, []int64{2, 3}, ids(FilterAppointments(appts, HistoryPast, now)))
}

func TestFilterMessages(t *testing.T) {
	me := &api.User{ID: 7}
	other := &api.User{ID: 2}
	msgs := []api.Message{
		{ID: 1, Sender: me, Recipient: other, IsRead: true},
		{ID: 2, Sender: other, Recipient: me},
		{ID: 3, Sender: other, Recipient: me, IsRead: true},
	}

	ids := func(list []api.Message) []int64 {
		var out []int64
		for _, m := range list {
			out = append(out, m.ID)
		}
		return out
	}

	assert.Equal(t, []int64{1, 2, 3}, ids(FilterMessages(msgs, MessagesAll, 7)))
	assert.Equal(t, []int64{2}, ids(FilterMessages(msgs, MessagesUnread, 7)))
	assert.Equal(t, []int64{1}, ids(FilterMessages(msgs, MessagesSent, 7)))
}

func TestParseFilters(t *testing.T) {
	tf, err := ParseTaskFilter("")
	require.NoError(t, err)
	assert.Equal(t, TaskFilterAll, tf)
	_, err = ParseTaskFilter("mine")
	assertCode(t, err, errors.ErrCodeValidationInvalid)

	hf, err := ParseHistoryFilter("upcoming")
	require.NoError(t, err)
	assert.Equal(t, HistoryUpcoming, hf)
	_, err = ParseHistoryFilter("future")
	assertCode(t, err, errors.ErrCodeValidationInvalid)

	mf, err := ParseMessageFilter("sent")
	require.NoError(t, err)
	assert.Equal(t, MessagesSent, mf)
	_, err = ParseMessageFilter("read")
	assertCode(t, err, errors.ErrCodeValidationInvalid)
}
