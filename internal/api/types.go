package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/staffdesk/staffdesk/internal/session"
)

// DateTimeLayout is the backend's local date-time format.
const DateTimeLayout = "2006-01-02T15:04:05"

// DateLayout is the backend's date format for range queries.
const DateLayout = "2006-01-02"

var dateTimeLayouts = []string{
	DateTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	DateLayout,
}

// DateTime is a backend timestamp without zone. The zero value encodes as null.
type DateTime struct {
	time.Time
}

// ParseDateTime accepts the layouts the backend emits.
func ParseDateTime(s string) (DateTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return DateTime{t}, nil
		}
	}
	return DateTime{}, fmt.Errorf("invalid date-time %q", s)
}

// MarshalJSON encodes as 2006-01-02T15:04:05.
func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateTimeLayout))
}

// UnmarshalJSON accepts null, "" and any supported layout.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = DateTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = DateTime{}
		return nil
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML encodes like MarshalJSON.
func (d DateTime) MarshalYAML() (interface{}, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(DateTimeLayout), nil
}

func (d DateTime) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02 15:04")
}

// User is a backend user profile.
type User struct {
	ID       session.UserID `json:"id"`
	Username string         `json:"username"`
	Name     string         `json:"name,omitempty"`
	Email    string         `json:"email,omitempty"`
	Role     session.Role   `json:"role"`
}

// DisplayName prefers the full name.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// Employees keeps only users with the EMPLOYEE role, for assignment pickers.
func Employees(users []User) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if u.Role == session.RoleEmployee {
			out = append(out, u)
		}
	}
	return out
}

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Priorities lists the accepted priorities.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// TaskStatus of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskCancelled  TaskStatus = "CANCELLED"
)

// TaskStatuses lists the accepted task statuses.
var TaskStatuses = []TaskStatus{TaskPending, TaskInProgress, TaskCompleted, TaskCancelled}

// Task is an employee task.
type Task struct {
	ID          int64      `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     DateTime   `json:"dueDate"`
	Priority    Priority   `json:"priority"`
	Status      TaskStatus `json:"status"`
	AssignedTo  *User      `json:"assignedTo,omitempty"`
	CreatedBy   *User      `json:"createdBy,omitempty"`
	CreatedAt   DateTime   `json:"createdAt"`
	UpdatedAt   DateTime   `json:"updatedAt"`
}

// AppointmentStatus of an appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "SCHEDULED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
)

// AppointmentStatuses lists the accepted appointment statuses.
var AppointmentStatuses = []AppointmentStatus{AppointmentScheduled, AppointmentCompleted, AppointmentCancelled}

// Appointment between a customer and an employee.
type Appointment struct {
	ID               int64             `json:"id,omitempty"`
	AppointmentDate  DateTime          `json:"appointmentDate"`
	ServiceType      string            `json:"serviceType"`
	Status           AppointmentStatus `json:"status"`
	Notes            string            `json:"notes"`
	TreatmentDetails string            `json:"treatmentDetails"`
	Customer         *User             `json:"customer,omitempty"`
	Employee         *User             `json:"employee,omitempty"`
	CreatedAt        DateTime          `json:"createdAt"`
	UpdatedAt        DateTime          `json:"updatedAt"`
}

// Message between a customer and an employee.
type Message struct {
	ID        int64    `json:"id,omitempty"`
	Subject   string   `json:"subject"`
	Content   string   `json:"content"`
	SentAt    DateTime `json:"sentAt"`
	IsRead    bool     `json:"isRead"`
	Sender    *User    `json:"sender,omitempty"`
	Recipient *User    `json:"recipient,omitempty"`
}

// Mailbox is the backend's split of a user's messages.
type Mailbox struct {
	Sent     []Message `json:"sent"`
	Received []Message `json:"received"`
}

// All returns sent and received messages together.
func (m Mailbox) All() []Message {
	out := make([]Message, 0, len(m.Sent)+len(m.Received))
	out = append(out, m.Sent...)
	out = append(out, m.Received...)
	return out
}

// Document is an employee document record.
type Document struct {
	ID           int64    `json:"id,omitempty"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	DocumentType string   `json:"documentType"`
	FileName     string   `json:"fileName,omitempty"`
	FilePath     string   `json:"filePath,omitempty"`
	CreatedBy    *User    `json:"createdBy,omitempty"`
	AssignedTo   *User    `json:"assignedTo,omitempty"`
	CreatedAt    DateTime `json:"createdAt"`
	UpdatedAt    DateTime `json:"updatedAt"`
}

// UploadResult is the body of a document upload response.
type UploadResult struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Document *Document `json:"document,omitempty"`
}

// Feedback submitted by a customer.
type Feedback struct {
	ID        int64    `json:"id,omitempty"`
	Rating    int      `json:"rating"`
	Comments  string   `json:"comments"`
	Customer  *User    `json:"customer,omitempty"`
	CreatedAt DateTime `json:"createdAt"`
}

// Calendar is the employee calendar response.
type Calendar struct {
	Tasks        []Task        `json:"tasks"`
	Appointments []Appointment `json:"appointments"`
}
