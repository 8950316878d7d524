package forms

import (
	"fmt"
	"time"

	"github.com/staffdesk/staffdesk/internal/api"
	"github.com/staffdesk/staffdesk/internal/errors"
	"github.com/staffdesk/staffdesk/internal/session"
)

// TaskFilter selects which tasks a self-scoped task list shows.
type TaskFilter string

const (
	TaskFilterAll      TaskFilter = "all"
	TaskFilterAssigned TaskFilter = "assigned"
	TaskFilterCreated  TaskFilter = "created"
)

// HistoryFilter selects appointments by time.
type HistoryFilter string

const (
	HistoryAll      HistoryFilter = "all"
	HistoryUpcoming HistoryFilter = "upcoming"
	HistoryPast     HistoryFilter = "past"
)

// MessageFilter selects messages.
type MessageFilter string

const (
	MessagesAll    MessageFilter = "all"
	MessagesUnread MessageFilter = "unread"
	MessagesSent   MessageFilter = "sent"
)

func badFilter(value string, allowed ...string) error {
	return errors.NewInvalidFieldError("filter", fmt.Sprintf("Unknown filter %q; use one of %v.", value, allowed))
}

// ParseTaskFilter validates a task filter. Empty means all.
func ParseTaskFilter(s string) (TaskFilter, error) {
	switch TaskFilter(s) {
	case "", TaskFilterAll:
		return TaskFilterAll, nil
	case TaskFilterAssigned, TaskFilterCreated:
		return TaskFilter(s), nil
	}
	return "", badFilter(s, "all", "assigned", "created")
}

// ParseHistoryFilter validates an appointment history filter. Empty means all.
func ParseHistoryFilter(s string) (HistoryFilter, error) {
	switch HistoryFilter(s) {
	case "", HistoryAll:
		return HistoryAll, nil
	case HistoryUpcoming, HistoryPast:
		return HistoryFilter(s), nil
	}
	return "", badFilter(s, "all", "upcoming", "past")
}

// ParseMessageFilter validates a message filter. Empty means all.
func ParseMessageFilter(s string) (MessageFilter, error) {
	switch MessageFilter(s) {
	case "", MessagesAll:
		return MessagesAll, nil
	case MessagesUnread, MessagesSent:
		return MessageFilter(s), nil
	}
	return "", badFilter(s, "all", "unread", "sent")
}

// FilterAppointments applies a history filter. Upcoming appointments are
// scheduled and not yet due; everything else is past.
func FilterAppointments(appts []api.Appointment, filter HistoryFilter, now time.Time) []api.Appointment {
	if filter == HistoryAll || filter == "" {
		return appts
	}
	out := make([]api.Appointment, 0, len(appts))
	for _, a := range appts {
		upcoming := !a.AppointmentDate.Before(now) && a.Status == api.AppointmentScheduled
		if (filter == HistoryUpcoming) == upcoming {
			out = append(out, a)
		}
	}
	return out
}

// FilterMessages applies a message filter relative to the current user.
func FilterMessages(msgs []api.Message, filter MessageFilter, me session.UserID) []api.Message {
	if filter == MessagesAll || filter == "" {
		return msgs
	}
	out := make([]api.Message, 0, len(msgs))
	for _, m := range msgs {
		switch filter {
		case MessagesUnread:
			if !m.IsRead {
				out = append(out, m)
			}
		case MessagesSent:
			if m.Sender != nil && m.Sender.ID == me {
				out = append(out, m)
			}
		}
	}
	return out
}
