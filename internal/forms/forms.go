// Package forms validates user input before anything is sent to the backend and
// converts it into request payloads.
package forms

import (
	"fmt"
	"strings"
	"time"

	"github.com/staffdesk/staffdesk/internal/api"
	"github.com/staffdesk/staffdesk/internal/errors"
	"github.com/staffdesk/staffdesk/internal/session"
)

// Messages shown for failed validation.
const (
	MsgCredentialsRequired = "Please enter both username and password."
	MsgSelectAssignee      = "Please select an employee to assign the task to."
	MsgTaskTitleRequired   = "Please enter a task title."
	MsgSelectEmployee      = "Please select an employee."
	MsgDateRequired        = "Please select a date."
	MsgTimeRequired        = "Please select a time."
	MsgDescriptionRequired = "Please describe the service you need."
	MsgUserIDRequired      = "User ID is required. Please make sure you're logged in properly."
	MsgRangeRequired       = "Please select both start and end dates"
	MsgSelectRecipient     = "Please select an employee to send the message to."
	MsgSubjectRequired     = "Please enter a subject."
	MsgContentRequired     = "Please enter a message."
	MsgRatingRange         = "Please choose a rating between 1 and 5."
	MsgDocumentTitle       = "Please enter a document title."
	MsgDocumentType        = "Please enter a document type."
)

func required(field, value, message string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewRequiredFieldError(field, message)
	}
	return nil
}

func requiredID(field string, id session.UserID, message string) error {
	if id <= 0 {
		return errors.NewRequiredFieldError(field, message)
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Login collects credentials.
type Login struct {
	Username string
	Password string
}

// Validate checks both fields are present.
func (f Login) Validate() error {
	if strings.TrimSpace(f.Username) == "" || f.Password == "" {
		return errors.NewRequiredFieldError("username and password", MsgCredentialsRequired)
	}
	return nil
}

// Signup collects a new account.
type Signup struct {
	Username string
	Password string
	Name     string
	Email    string
	Role     string
}

// SignupRoles are the roles a user may pick at signup.
var SignupRoles = []session.Role{session.RoleCustomer, session.RoleEmployee}

// Validate checks required fields and the chosen role.
func (f Signup) Validate() error {
	if err := firstError(
		required("username", f.Username, "Please enter a username."),
		required("password", f.Password, "Please enter a password."),
		required("name", f.Name, "Please enter your name."),
		required("email", f.Email, "Please enter your email."),
	); err != nil {
		return err
	}
	if !strings.Contains(f.Email, "@") {
		return errors.NewInvalidFieldError("email", "Please enter a valid email address.")
	}
	for _, r := range SignupRoles {
		if session.Role(strings.ToUpper(f.Role)) == r {
			return nil
		}
	}
	return errors.NewInvalidFieldError("role", fmt.Sprintf("Role must be one of %s.", joinRoles(SignupRoles)))
}

// Request converts the form.
func (f Signup) Request() api.SignupRequest {
	return api.SignupRequest{
		Username: strings.TrimSpace(f.Username),
		Password: f.Password,
		Role:     session.Role(strings.ToUpper(f.Role)),
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
	}
}

func joinRoles(roles []session.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

// Task is the task creation form. Priority defaults to MEDIUM.
type Task struct {
	Title       string
	Description string
	// DueDate is YYYY-MM-DD; empty means no due date.
	DueDate    string
	Priority   string
	AssigneeID session.UserID
}

// Validate checks the title, assignee, priority and due date.
func (f Task) Validate() error {
	if err := firstError(
		required("title", f.Title, MsgTaskTitleRequired),
		requiredID("assignee", f.AssigneeID, MsgSelectAssignee),
	); err != nil {
		return err
	}
	if _, err := parsePriority(f.Priority); err != nil {
		return err
	}
	if f.DueDate != "" {
		if _, err := time.ParseInLocation(api.DateLayout, f.DueDate, time.Local); err != nil {
			return errors.NewInvalidFieldError("due date", "Due date must be YYYY-MM-DD.")
		}
	}
	return nil
}

func parsePriority(p string) (api.Priority, error) {
	if p == "" {
		return api.PriorityMedium, nil
	}
	for _, known := range api.Priorities {
		if api.Priority(strings.ToUpper(p)) == known {
			return known, nil
		}
	}
	return "", errors.NewInvalidFieldError("priority", "Priority must be LOW, MEDIUM or HIGH.")
}

// Payload builds the new task: status PENDING and the due date at midnight.
// Call Validate first.
func (f Task) Payload() api.Task {
	priority, _ := parsePriority(f.Priority)
	task := api.Task{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Priority:    priority,
		Status:      api.TaskPending,
	}
	if f.DueDate != "" {
		if due, err := time.ParseInLocation(api.DateLayout, f.DueDate, time.Local); err == nil {
			task.DueDate = api.DateTime{Time: due}
		}
	}
	return task
}

// ParseTaskStatus validates a status name.
func ParseTaskStatus(s string) (api.TaskStatus, error) {
	for _, known := range api.TaskStatuses {
		if api.TaskStatus(strings.ToUpper(s)) == known {
			return known, nil
		}
	}
	return "", errors.NewInvalidFieldError("status", "Status must be PENDING, IN_PROGRESS, COMPLETED or CANCELLED.")
}

// ParseAppointmentStatus validates an appointment status name.
func ParseAppointmentStatus(s string) (api.AppointmentStatus, error) {
	for _, known := range api.AppointmentStatuses {
		if api.AppointmentStatus(strings.ToUpper(s)) == known {
			return known, nil
		}
	}
	return "", errors.NewInvalidFieldError("status", "Status must be SCHEDULED, COMPLETED or CANCELLED.")
}

// Booking is the appointment booking form.
type Booking struct {
	CustomerID  session.UserID
	Role        session.Role
	EmployeeID  session.UserID
	Date        string
	Time        string
	Description string
}

// Validate checks the booking before submission. Only customers book; the
// route guard enforces it and this check keeps the form honest on its own.
func (f Booking) Validate() error {
	if f.Role != session.RoleCustomer {
		return errors.New(errors.ErrCodeAuthDenied,
			fmt.Sprintf("Only customers can book appointments. Your current role is: %s", f.Role))
	}
	if err := firstError(
		requiredID("user id", f.CustomerID, MsgUserIDRequired),
		requiredID("employee", f.EmployeeID, MsgSelectEmployee),
		required("date", f.Date, MsgDateRequired),
		required("time", f.Time, MsgTimeRequired),
		required("description", f.Description, MsgDescriptionRequired),
	); err != nil {
		return err
	}
	if _, err := f.when(); err != nil {
		return errors.NewInvalidFieldError("date and time", "Date must be YYYY-MM-DD and time HH:MM.")
	}
	return nil
}

func (f Booking) when() (api.DateTime, error) {
	return api.ParseDateTime(strings.TrimSpace(f.Date) + "T" + strings.TrimSpace(f.Time))
}

// Payload builds the appointment: date and time joined, the description as the
// service type, status SCHEDULED. Call Validate first.
func (f Booking) Payload() api.Appointment {
	when, _ := f.when()
	return api.Appointment{
		AppointmentDate: when,
		ServiceType:     strings.TrimSpace(f.Description),
		Status:          api.AppointmentScheduled,
	}
}

// DateRange is a calendar query.
type DateRange struct {
	Start string
	End   string
}

// Validate requires both dates, in order.
func (f DateRange) Validate() error {
	if strings.TrimSpace(f.Start) == "" || strings.TrimSpace(f.End) == "" {
		return errors.NewRequiredFieldError("start and end", MsgRangeRequired)
	}
	start, err := time.Parse(api.DateLayout, f.Start)
	if err != nil {
		return errors.NewInvalidFieldError("start", "Start date must be YYYY-MM-DD.")
	}
	end, err := time.Parse(api.DateLayout, f.End)
	if err != nil {
		return errors.NewInvalidFieldError("end", "End date must be YYYY-MM-DD.")
	}
	if end.Before(start) {
		return errors.NewInvalidFieldError("end", "End date must not be before the start date.")
	}
	return nil
}

// MessageDraft is the send message form.
type MessageDraft struct {
	RecipientID session.UserID
	Subject     string
	Content     string
}

// Validate checks the recipient and both text fields.
func (f MessageDraft) Validate() error {
	return firstError(
		requiredID("recipient", f.RecipientID, MsgSelectRecipient),
		required("subject", f.Subject, MsgSubjectRequired),
		required("content", f.Content, MsgContentRequired),
	)
}

// Payload builds the message.
func (f MessageDraft) Payload() api.Message {
	return api.Message{Subject: strings.TrimSpace(f.Subject), Content: strings.TrimSpace(f.Content)}
}

// Feedback is the customer feedback form.
type Feedback struct {
	Rating   int
	Comments string
}

// Validate checks the rating range.
func (f Feedback) Validate() error {
	if f.Rating < 1 || f.Rating > 5 {
		return errors.NewInvalidFieldError("rating", MsgRatingRange)
	}
	return nil
}

// Payload builds the feedback.
func (f Feedback) Payload() api.Feedback {
	return api.Feedback{Rating: f.Rating, Comments: strings.TrimSpace(f.Comments)}
}

// AppointmentUpdate edits an appointment from the employee side. Empty fields
// keep the current values.
type AppointmentUpdate struct {
	Status           string
	Notes            string
	TreatmentDetails string
}

// Validate checks the status, if given.
func (f AppointmentUpdate) Validate() error {
	if f.Status == "" && f.Notes == "" && f.TreatmentDetails == "" {
		return errors.NewRequiredFieldError("status, notes or treatment details", "Nothing to update.")
	}
	if f.Status != "" {
		if _, err := ParseAppointmentStatus(f.Status); err != nil {
			return err
		}
	}
	return nil
}

// Apply merges the update into appt.
func (f AppointmentUpdate) Apply(appt api.Appointment) api.Appointment {
	if f.Status != "" {
		status, _ := ParseAppointmentStatus(f.Status)
		appt.Status = status
	}
	if f.Notes != "" {
		appt.Notes = f.Notes
	}
	if f.TreatmentDetails != "" {
		appt.TreatmentDetails = f.TreatmentDetails
	}
	return appt
}

// Document is the document creation form.
type Document struct {
	Title        string
	Content      string
	DocumentType string
	AssigneeID   session.UserID
}

// Validate checks the required fields.
func (f Document) Validate() error {
	return firstError(
		required("title", f.Title, MsgDocumentTitle),
		required("document type", f.DocumentType, MsgDocumentType),
	)
}

// Payload builds the document.
func (f Document) Payload() api.Document {
	return api.Document{
		Title:        strings.TrimSpace(f.Title),
		Content:      f.Content,
		DocumentType: strings.TrimSpace(f.DocumentType),
	}
}
