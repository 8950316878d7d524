package api

import (
	"context"
	"net/http"
)

// ListUsers returns every user. Used by the admin users view and, filtered by
// Employees, by assignment pickers.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	err := c.do(ctx, request{Method: http.MethodGet, Route: "/users", Path: "/users"}, &users)
	return users, err
}

// ListEmployees returns the users with the EMPLOYEE role.
func (c *Client) ListEmployees(ctx context.Context) ([]User, error) {
	users, err := c.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return Employees(users), nil
}

// Ping sends an unauthenticated GET to the base URL. Any HTTP response means
// the backend is reachable; the error then carries the API category.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, request{Method: http.MethodGet, Route: "/", Path: "/", Public: true}, nil)
}
