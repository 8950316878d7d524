package health

import (
	"bytes"
	"context"

	"github.com/staffdesk/staffdesk/internal/errors"
	"github.com/staffdesk/staffdesk/internal/session"
	"github.com/staffdesk/staffdesk/internal/storage"
)

// Pinger reaches the backend without credentials. *api.Client implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BackendChecker reports whether the backend answers at all. Any HTTP
// response counts; only a missing response is unhealthy.
type BackendChecker struct {
	pinger  Pinger
	baseURL string
}

func NewBackendChecker(p Pinger, baseURL string) *BackendChecker {
	return &BackendChecker{pinger: p, baseURL: baseURL}
}

func (c *BackendChecker) Name() string { return "backend" }

func (c *BackendChecker) Check(ctx context.Context) *Result {
	err := c.pinger.Ping(ctx)
	switch {
	case err == nil, errors.IsBackend(err):
		return Healthy("backend is reachable").WithDetail("base_url", c.baseURL)
	case errors.IsNetwork(err):
		return Unhealthy("backend is not reachable").
			WithDetail("base_url", c.baseURL).
			WithDetail("error", err.Error()).
			WithDetail("suggestion", "Check api.base_url or STAFFDESK_API_BASE_URL")
	default:
		return Unhealthy(err.Error()).WithDetail("base_url", c.baseURL)
	}
}

// ProbeKey is written and removed by StoreChecker.
const ProbeKey = "staffdesk.health-probe"

// StoreChecker round-trips a value through the session store.
type StoreChecker struct {
	store storage.Store
}

func NewStoreChecker(store storage.Store) *StoreChecker {
	return &StoreChecker{store: store}
}

func (c *StoreChecker) Name() string { return "session-store" }

func (c *StoreChecker) Check(ctx context.Context) *Result {
	want := []byte("ok")
	if err := c.store.Put(ctx, ProbeKey, want); err != nil {
		return Unhealthy("session store is not writable").WithDetail("error", err.Error())
	}
	defer func() { _ = c.store.Delete(ctx, ProbeKey) }()

	got, err := c.store.Get(ctx, ProbeKey)
	if err != nil {
		return Unhealthy("session store is not readable").WithDetail("error", err.Error())
	}
	if !bytes.Equal(got, want) {
		return Unhealthy("session store returned a different value")
	}
	return Healthy("session store is readable and writable")
}

// SessionChecker reports the signed in identity. An anonymous session is
// degraded, not broken.
type SessionChecker struct {
	session *session.Context
}

func NewSessionChecker(s *session.Context) *SessionChecker {
	return &SessionChecker{session: s}
}

func (c *SessionChecker) Name() string { return "session" }

func (c *SessionChecker) Check(context.Context) *Result {
	id := c.session.Snapshot()
	if id.IsAnonymous() {
		return Degraded("not logged in").WithDetail("suggestion", "Run 'staffdesk auth login'")
	}
	return Healthy("logged in as "+id.Username).
		WithDetail("role", id.Role.String()).
		WithDetail("user_id", int64(id.UserID))
}
