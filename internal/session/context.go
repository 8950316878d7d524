// Package session owns the client's authenticated identity.
//
// A single Context is created at startup, initialized from durable storage, and
// passed by reference to every consumer: the router guard, the API client, CLI
// commands and TUI screens. Login and Logout are the only mutators.
package session

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"time"

	"github.com/staffdesk/staffdesk/internal/log"
	"github.com/staffdesk/staffdesk/internal/storage"
)

// StorageKey is the fixed key the session is persisted under.
const StorageKey = "staffdesk.session"

const persistTimeout = 5 * time.Second

// EventKind describes a session mutation.
type EventKind int

const (
	LoggedIn EventKind = iota + 1
	LoggedOut
)

func (k EventKind) String() string {
	switch k {
	case LoggedIn:
		return "logged_in"
	case LoggedOut:
		return "logged_out"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after every effective mutation.
type Event struct {
	Kind     EventKind
	Identity Identity
}

// Context is the process-wide session.
type Context struct {
	mu       sync.RWMutex
	identity Identity

	store  storage.Store
	logger *log.Logger

	subMu       sync.Mutex
	subscribers map[int]func(Event)
	nextSubID   int
}

// New creates an anonymous session backed by store. A nil store keeps the
// session in memory only.
func New(store storage.Store, logger *log.Logger) *Context {
	if store == nil {
		store = storage.NewMemoryStore()
	}
	return &Context{
		store:       store,
		logger:      log.OrDefault(logger).With("component", "session"),
		subscribers: make(map[int]func(Event)),
	}
}

// Load creates a session and initializes it from the persisted copy. A missing
// copy yields an anonymous session. A malformed or partial copy also yields an
// anonymous session, and the bad copy is removed.
func Load(ctx context.Context, store storage.Store, logger *log.Logger) *Context {
	c := New(store, logger)

	data, err := c.store.Get(ctx, StorageKey)
	if stderrors.Is(err, storage.ErrNotFound) {
		c.logger.Debug("no persisted session")
		return c
	}
	if err != nil {
		c.logger.WithError(err).Warn("persisted session unreadable, starting anonymous")
		c.discard(ctx)
		return c
	}

	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		c.logger.WithError(err).Warn("persisted session malformed, starting anonymous")
		c.discard(ctx)
		return c
	}
	if !id.Complete() {
		c.logger.Warn("persisted session incomplete, starting anonymous", "missing", id.Missing())
		c.discard(ctx)
		return c
	}

	c.identity = id
	c.logger.Debug("session restored", "username", id.Username, "role", string(id.Role), "user_id", int64(id.UserID))
	return c
}

func (c *Context) discard(ctx context.Context) {
	if err := c.store.Delete(ctx, StorageKey); err != nil {
		c.logger.WithError(err).Warn("failed to remove persisted session")
	}
}

// Login replaces the whole identity, persists it and notifies subscribers.
// An incomplete identity is refused and logged; the session is left unchanged.
// Persistence failures are logged and do not undo the in-memory change.
func (c *Context) Login(id Identity) {
	if !id.Complete() {
		c.logger.Error("refusing incomplete identity", "missing", id.Missing())
		return
	}

	c.mu.Lock()
	c.identity = id
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	data, err := json.Marshal(id)
	if err == nil {
		err = c.store.Put(ctx, StorageKey, data)
	}
	if err != nil {
		c.logger.WithError(err).Warn("failed to persist session")
	}

	c.logger.Debug("logged in", "username", id.Username, "role", string(id.Role), "user_id", int64(id.UserID))
	c.publish(Event{Kind: LoggedIn, Identity: id})
}

// Logout clears the identity and removes the persisted copy. On an anonymous
// session it only re-removes the persisted copy and notifies nobody.
func (c *Context) Logout() {
	c.mu.Lock()
	wasAuthenticated := !c.identity.IsAnonymous()
	c.identity = Anonymous
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	c.discard(ctx)

	if !wasAuthenticated {
		return
	}
	c.logger.Debug("logged out")
	c.publish(Event{Kind: LoggedOut, Identity: Anonymous})
}

// Snapshot returns the current identity. The zero Identity means anonymous.
func (c *Context) Snapshot() Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.identity
}

// Authenticated reports whether a token is held.
func (c *Context) Authenticated() bool {
	return !c.Snapshot().IsAnonymous()
}

func (c *Context) Token() string    { return c.Snapshot().Token }
func (c *Context) Username() string { return c.Snapshot().Username }
func (c *Context) Role() Role       { return c.Snapshot().Role }
func (c *Context) UserID() UserID   { return c.Snapshot().UserID }

// Subscribe registers fn for session events and returns a function that removes it.
// Callbacks run synchronously on the goroutine that mutated the session.
func (c *Context) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.subMu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subscribers, id)
			c.subMu.Unlock()
		})
	}
}

func (c *Context) publish(ev Event) {
	c.subMu.Lock()
	fns := make([]func(Event), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
