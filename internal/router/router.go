package router

import (
	"sync"

	"github.com/staffdesk/staffdesk/internal/log"
	"github.com/staffdesk/staffdesk/internal/session"
)

// Observer receives every guard decision. Metrics implement it.
type Observer interface {
	ObserveDecision(Decision)
}

// Router is the single enforcement point between navigation and view bodies.
type Router struct {
	session  *session.Context
	logger   *log.Logger
	observer Observer
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Router) { r.logger = l }
}

// WithObserver reports decisions to o.
func WithObserver(o Observer) Option {
	return func(r *Router) { r.observer = o }
}

// New creates a router over the given session.
func New(s *session.Context, opts ...Option) *Router {
	r := &Router{session: s}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = log.OrDefault(r.logger).With("component", "router")
	return r
}

// Session returns the session the router guards.
func (r *Router) Session() *session.Context { return r.session }

// Guard decides whether view may run for the current session snapshot.
func (r *Router) Guard(view View) Decision {
	d := Decide(r.session.Role(), view)
	r.logger.Debug("guard", "view", string(view), "role", d.Role.String(), "outcome", d.Outcome.String())
	if r.observer != nil {
		r.observer.ObserveDecision(d)
	}
	return d
}

// Navigate is an explicit navigation. Navigating to the login view clears the
// session first.
func (r *Router) Navigate(view View) Decision {
	if view == ViewLogin {
		r.session.Logout()
	}
	return r.Guard(view)
}

// Mount creates an unresolved instance of view. onChange, if set, is called when
// a session change moves the instance to a different outcome.
func (r *Router) Mount(view View, onChange func(Decision)) *ViewInstance {
	return &ViewInstance{view: view, router: r, onChange: onChange}
}

// ViewInstance is the per-view state machine
// Unresolved -> {Authorized, Redirected, Denied}. It re-evaluates only when the
// session changes.
type ViewInstance struct {
	view     View
	router   *Router
	onChange func(Decision)

	mu          sync.Mutex
	decision    Decision
	closed      bool
	unsubscribe func()
}

// View returns the view this instance shows.
func (v *ViewInstance) View() View { return v.view }

// Resolve evaluates the guard once and starts following session changes.
// Calling it again returns the current decision.
func (v *ViewInstance) Resolve() Decision {
	v.mu.Lock()
	if v.closed || v.decision.Outcome != Unresolved {
		d := v.decision
		v.mu.Unlock()
		return d
	}
	v.mu.Unlock()

	d := v.router.Guard(v.view)

	v.mu.Lock()
	defer v.mu.Unlock()
	// A concurrent Resolve may have won; it owns the subscription.
	if v.closed || v.unsubscribe != nil {
		return v.decision
	}
	v.decision = d
	v.unsubscribe = v.router.session.Subscribe(v.sessionChanged)
	return d
}

func (v *ViewInstance) sessionChanged(session.Event) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	prev := v.decision
	v.mu.Unlock()

	d := v.router.Guard(v.view)

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.decision = d
	onChange := v.onChange
	v.mu.Unlock()

	if d.Outcome != prev.Outcome && onChange != nil {
		onChange(d)
	}
}

// State returns the current outcome.
func (v *ViewInstance) State() Outcome {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.decision.Outcome
}

// Decision returns the latest decision.
func (v *ViewInstance) Decision() Decision {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.decision
}

// Active reports whether results for this instance should still be applied.
// Responses that arrive after Close or after the view lost authorization are dropped.
func (v *ViewInstance) Active() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.closed && v.decision.Outcome == Authorized
}

// Close stops following the session. It is safe to call more than once.
func (v *ViewInstance) Close() {
	v.mu.Lock()
	v.closed = true
	unsubscribe := v.unsubscribe
	v.unsubscribe = nil
	v.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}
