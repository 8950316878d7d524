// Package health runs diagnostics over the client's dependencies: the
// backend, the session store and the session itself.
//
//	manager := health.NewManager()
//	manager.AddChecker(health.NewBackendChecker(client))
//	manager.AddChecker(health.NewStoreChecker(store))
//	results := manager.Check(ctx)
package health

import (
	"context"
	"time"
)

// Checker verifies one dependency.
type Checker interface {
	// Name is lowercase with hyphens, e.g. "session-store".
	Name() string

	// Check must respect the context deadline.
	Check(ctx context.Context) *Result
}

// Status of a check.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

func (s Status) String() string {
	return string(s)
}

// Result of a single check.
type Result struct {
	Status  Status                 `json:"status" yaml:"status"`
	Message string                 `json:"message" yaml:"message"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
	Latency time.Duration          `json:"latency" yaml:"latency"`
}

// NewResult creates a result with the given status and message.
func NewResult(status Status, message string) *Result {
	return &Result{
		Status:  status,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WithDetail adds a detail and returns the result for chaining.
func (r *Result) WithDetail(key string, value interface{}) *Result {
	r.Details[key] = value
	return r
}

func Healthy(message string) *Result   { return NewResult(StatusHealthy, message) }
func Degraded(message string) *Result  { return NewResult(StatusDegraded, message) }
func Unhealthy(message string) *Result { return NewResult(StatusUnhealthy, message) }
