package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/staffdesk/staffdesk/internal/session"
)

// ListTasks returns every task.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	err := c.do(ctx, request{Method: http.MethodGet, Route: "/employee/tasks", Path: "/employee/tasks"}, &tasks)
	return tasks, err
}

// AssignedTasks returns the tasks assigned to userID.
func (c *Client) AssignedTasks(ctx context.Context, userID session.UserID) ([]Task, error) {
	var tasks []Task
	err := c.do(ctx, request{
		Method: http.MethodGet,
		Route:  "/employee/tasks/assigned/{userId}",
		Path:   fmt.Sprintf("/employee/tasks/assigned/%d", userID),
	}, &tasks)
	return tasks, err
}

// CreatedTasks returns the tasks created by userID.
func (c *Client) CreatedTasks(ctx context.Context, userID session.UserID) ([]Task, error) {
	var tasks []Task
	err := c.do(ctx, request{
		Method: http.MethodGet,
		Route:  "/employee/tasks/created/{userId}",
		Path:   fmt.Sprintf("/employee/tasks/created/%d", userID),
	}, &tasks)
	return tasks, err
}

// GetTask returns one task.
func (c *Client) GetTask(ctx context.Context, id int64) (*Task, error) {
	var task Task
	err := c.do(ctx, request{
		Method: http.MethodGet,
		Route:  "/employee/tasks/{id}",
		Path:   fmt.Sprintf("/employee/tasks/%d", id),
	}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a task on behalf of createdBy and assigns it.
func (c *Client) CreateTask(ctx context.Context, task Task, createdBy, assignedTo session.UserID) (*Task, error) {
	var created Task
	err := c.do(ctx, request{
		Method: http.MethodPost,
		Route:  "/employee/tasks",
		Path:   "/employee/tasks",
		Query:  query("createdById", createdBy.String(), "assignedToId", assignedTo.String()),
		Body:   task,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask replaces a task. The backend expects the full task.
func (c *Client) UpdateTask(ctx context.Context, task Task) (*Task, error) {
	var updated Task
	err := c.do(ctx, request{
		Method: http.MethodPut,
		Route:  "/employee/tasks/{id}",
		Path:   fmt.Sprintf("/employee/tasks/%d", task.ID),
		Body:   task,
	}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateTaskStatus fetches the task and puts it back with status changed.
func (c *Client) UpdateTaskStatus(ctx context.Context, id int64, status TaskStatus) (*Task, error) {
	task, err := c.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Status = status
	return c.UpdateTask(ctx, *task)
}

// EmployeeCalendar returns the tasks and appointments of userID between start and end.
func (c *Client) EmployeeCalendar(ctx context.Context, userID session.UserID, start, end string) (*Calendar, error) {
	var cal Calendar
	err := c.do(ctx, request{
		Method: http.MethodGet,
		Route:  "/employee/calendar/{userId}",
		Path:   fmt.Sprintf("/employee/calendar/%d", userID),
		Query:  query("start", start, "end", end),
	}, &cal)
	if err != nil {
		return nil, err
	}
	return &cal, nil
}
