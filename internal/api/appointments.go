package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/staffdesk/staffdesk/internal/session"
)

// ListAppointments returns every appointment, for employee management.
func (c *Client) ListAppointments(ctx context.Context) ([]Appointment, error) {
	var appts []Appointment
	err := c.do(ctx, request{Method: http.MethodGet, Route: "/employee/appointments", Path: "/employee/appointments"}, &appts)
	return appts, err
}

// GetAppointment returns one appointment.
func (c *Client) GetAppointment(ctx context.Context, id int64) (*Appointment, error) {
	var appt Appointment
	err := c.do(ctx, request{
		Method: http.MethodGet,
		Route:  "/employee/appointments/{id}",
		Path:   fmt.Sprintf("/employee/appointments/%d", id),
	}, &appt)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// UpdateAppointment replaces an appointment.
func (c *Client) UpdateAppointment(ctx context.Context, appt Appointment) (*Appointment, error) {
	var updated Appointment
	err := c.do(ctx, request{
		Method: http.MethodPut,
		Route:  "/employee/appointments/{id}",
		Path:   fmt.Sprintf("/employee/appointments/%d", appt.ID),
		Body:   appt,
	}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// BookAppointment books an appointment for customerID with employeeID.
func (c *Client) BookAppointment(ctx context.Context, appt Appointment, customerID, employeeID session.UserID) (*Appointment, error) {
	var booked Appointment
	err := c.do(ctx, request{
		Method: http.MethodPost,
		Route:  "/customer/appointments",
		Path:   "/customer/appointments",
		Query:  query("customerId", customerID.String(), "employeeId", employeeID.String()),
		Body:   appt,
	}, &booked)
	if err != nil {
		return nil, err
	}
	return &booked, nil
}

// AppointmentHistory returns every appointment of customerID.
func (c *Client) AppointmentHistory(ctx context.Context, customerID session.UserID) ([]Appointment, error) {
	var appts []Appointment
	err := c.do(ctx, request{
		Method: http.MethodGet,
		Route:  "/customer/appointments/history/{customerId}",
		Path:   fmt.Sprintf("/customer/appointments/history/%d", customerID),
	}, &appts)
	return appts, err
}

// CustomerCalendar returns the appointments of customerID between start and end.
func (c *Client) CustomerCalendar(ctx context.Context, customerID session.UserID, start, end string) ([]Appointment, error) {
	var appts []Appointment
	err := c.do(ctx, request{
		Method: http.MethodGet,
		Route:  "/customer/calendar/{customerId}",
		Path:   fmt.Sprintf("/customer/calendar/%d", customerID),
		Query:  query("start", start, "end", end),
	}, &appts)
	return appts, err
}

// SubmitFeedback records feedback from customerID.
func (c *Client) SubmitFeedback(ctx context.Context, fb Feedback, customerID session.UserID) (*Feedback, error) {
	var saved Feedback
	err := c.do(ctx, request{
		Method: http.MethodPost,
		Route:  "/customer/feedback",
		Path:   "/customer/feedback",
		Query:  query("customerId", customerID.String()),
		Body:   fb,
	}, &saved)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
