package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/staffdesk/internal/errors"
	"github.com/staffdesk/staffdesk/internal/session"
)

func TestLoginSuccess(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, LoginRequest{Username: "alice", Password: "x"}, req)

		_, _ = w.Write([]byte(`{"status":"success","token":"t1","username":"alice","role":"EMPLOYEE","userId":7}`))
	}, "")

	resp, err := client.Login(context.Background(), "alice", "x")
	require.NoError(t, err)

	id, fromID, err := resp.Identity()
	require.NoError(t, err)
	assert.False(t, fromID)
	assert.Equal(t, session.Identity{Token: "t1", Username: "alice", Role: session.RoleEmployee, UserID: 7}, id)
}

func TestLoginRejected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"Error":"Invalid username or password"}`))
	}, "")

	_, err := client.Login(context.Background(), "alice", "wrong")
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeAuthLoginFailed, appErr.Code)
	assert.Equal(t, "Invalid username or password", appErr.Message)
}

func TestLoginNonSuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error"}`))
	}, "")

	_, err := client.Login(context.Background(), "alice", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), LoginFailedMessage)
	assert.True(t, errors.IsAuth(err))
}

func TestLoginNoResponse(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", nil)
	_, err := client.Login(context.Background(), "alice", "x")
	require.Error(t, err)
	assert.True(t, errors.IsNetwork(err))
	appErr, _ := errors.As(err)
	assert.Equal(t, LoginFailedMessage, appErr.Message)
}

func TestAuthResponseIdentity(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantID     session.UserID
		wantFromID bool
		wantErr    bool
	}{
		{"userId", `{"status":"success","token":"t","username":"u","role":"ADMIN","userId":7}`, 7, false, false},
		{"id fallback", `{"status":"success","token":"t","username":"u","role":"ADMIN","id":9}`, 9, true, false},
		{"userId preferred", `{"status":"success","token":"t","username":"u","role":"ADMIN","userId":7,"id":9}`, 7, false, false},
		{"string userId", `{"status":"success","token":"t","username":"u","role":"ADMIN","userId":"7"}`, 7, false, false},
		{"no id", `{"status":"success","token":"t","username":"u","role":"ADMIN"}`, 0, false, true},
		{"no token", `{"status":"success","username":"u","role":"ADMIN","userId":7}`, 0, false, true},
		{"unknown role", `{"status":"success","token":"t","username":"u","role":"ROOT","userId":7}`, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp AuthResponse
			require.NoError(t, json.Unmarshal([]byte(tt.body), &resp))

			id, fromID, err := resp.Identity()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, id.IsAnonymous())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id.UserID)
			assert.Equal(t, tt.wantFromID, fromID)
		})
	}
}

func TestSignup(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/signup", r.URL.Path)
		var req SignupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, session.RoleCustomer, req.Role)

		if req.Username == "taken" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Username already exists"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"success","message":"User registered successfully","token":"t","username":"bob","role":"CUSTOMER","userId":11}`))
	}, "")

	resp, err := client.Signup(context.Background(), SignupRequest{Username: "bob", Password: "p", Role: session.RoleCustomer, Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", resp.Message)

	_, err = client.Signup(context.Background(), SignupRequest{Username: "taken", Password: "p", Role: session.RoleCustomer})
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeAuthSignupFailed, appErr.Code)
	assert.Equal(t, "Username already exists", appErr.Message)
}

func TestAuthRejectionWithoutErrorTextUsesFallback(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "empty body", status: http.StatusUnauthorized, body: ""},
		{name: "json without error", status: http.StatusBadRequest, body: `{"status":"error"}`},
		{name: "server error", status: http.StatusInternalServerError, body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, "")

			_, err := client.Login(context.Background(), "alice", "x")
			appErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeAuthLoginFailed, appErr.Code)
			assert.Equal(t, LoginFailedMessage, appErr.Message)

			_, err = client.Signup(context.Background(), SignupRequest{Username: "bob", Password: "p", Role: session.RoleCustomer})
			appErr, ok = errors.As(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeAuthSignupFailed, appErr.Code)
			assert.Equal(t, SignupFailedMessage, appErr.Message)
		})
	}
}
