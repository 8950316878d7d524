package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/staffdesk/staffdesk/internal/errors"
	"github.com/staffdesk/staffdesk/internal/session"
)

// StatusSuccess is the status value of a successful auth response.
const StatusSuccess = "success"

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Username string       `json:"username"`
	Password string       `json:"password"`
	Role     session.Role `json:"role"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
}

// AuthResponse is returned by login and signup. The principal id arrives as
// userId or, from some backends, as id.
type AuthResponse struct {
	Status   string          `json:"status"`
	Message  string          `json:"message,omitempty"`
	Token    string          `json:"token"`
	Username string          `json:"username"`
	Role     session.Role    `json:"role"`
	UserID   *session.UserID `json:"userId,omitempty"`
	ID       *session.UserID `json:"id,omitempty"`
}

// Succeeded reports whether the backend reported success.
func (r *AuthResponse) Succeeded() bool {
	return r.Status == StatusSuccess
}

// Identity builds the session identity from the response. fromID is true when
// userId was absent and id was used instead.
func (r *AuthResponse) Identity() (id session.Identity, fromID bool, err error) {
	id = session.Identity{
		Token:    r.Token,
		Username: r.Username,
		Role:     r.Role,
	}
	switch {
	case r.UserID != nil && *r.UserID != 0:
		id.UserID = *r.UserID
	case r.ID != nil && *r.ID != 0:
		id.UserID = *r.ID
		fromID = true
	}

	if missing := id.Missing(); len(missing) > 0 {
		return session.Anonymous, false, errors.New(errors.ErrCodeAuthLoginFailed, "login response is missing fields").
			WithSuggestion("Missing: " + strings.Join(missing, ", "))
	}
	return id, fromID, nil
}

// Shown when the backend cannot be reached.
const (
	LoginFailedMessage  = "Login failed. Please try again."
	SignupFailedMessage = "Sign up failed. Please try again."
)

// Login posts credentials. Backend rejections carry the server's message;
// transport failures carry LoginFailedMessage.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, request{
		Method: http.MethodPost,
		Route:  "/auth/login",
		Path:   "/auth/login",
		Body:   LoginRequest{Username: username, Password: password},
		Public: true,
	}, &resp)
	if err != nil {
		return nil, authFailure(err, errors.ErrCodeAuthLoginFailed, LoginFailedMessage)
	}
	if !resp.Succeeded() {
		msg := resp.Message
		if msg == "" {
			msg = LoginFailedMessage
		}
		return nil, errors.New(errors.ErrCodeAuthLoginFailed, msg)
	}
	return &resp, nil
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, request{
		Method: http.MethodPost,
		Route:  "/auth/signup",
		Path:   "/auth/signup",
		Body:   req,
		Public: true,
	}, &resp)
	if err != nil {
		return nil, authFailure(err, errors.ErrCodeAuthSignupFailed, SignupFailedMessage)
	}
	if !resp.Succeeded() {
		msg := resp.Message
		if msg == "" {
			msg = SignupFailedMessage
		}
		return nil, errors.New(errors.ErrCodeAuthSignupFailed, msg)
	}
	return &resp, nil
}

// authFailure re-codes backend rejections of public auth calls as
// authorization failures and keeps network failures in their own category.
// Rejections without error text of their own get fallback.
func authFailure(err error, code errors.ErrorCode, fallback string) error {
	appErr, ok := errors.As(err)
	if !ok {
		return err
	}
	switch appErr.Code.Category() {
	case errors.CategoryNetwork:
		return errors.Wrap(appErr.Code, fallback, appErr.Cause).WithSuggestions(appErr.Suggestions...)
	case errors.CategoryAPI:
		if strings.HasPrefix(appErr.Message, statusFailurePrefix) {
			return errors.New(code, fallback)
		}
		return errors.New(code, appErr.Message)
	}
	return err
}
