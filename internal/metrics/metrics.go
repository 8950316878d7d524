package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/staffdesk/staffdesk/internal/errors"
	"github.com/staffdesk/staffdesk/internal/router"
)

// Metrics holds all Prometheus metrics for staffdesk
type Metrics struct {
	// Command execution metrics
	CommandExecutions *prometheus.CounterVec
	CommandDuration   *prometheus.HistogramVec
	CommandErrors     *prometheus.CounterVec

	// Backend request metrics
	APIRequests *prometheus.CounterVec
	APILatency  *prometheus.HistogramVec
	APIErrors   *prometheus.CounterVec

	// Guard metrics
	GuardDecisions *prometheus.CounterVec

	// Session metrics
	SessionEvents *prometheus.CounterVec

	// Error metrics (by error code from structured errors)
	Errors *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		CommandExecutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "staffdesk_command_executions_total",
				Help: "Total number of command executions",
			},
			[]string{"command", "success"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "staffdesk_command_duration_seconds",
				Help:    "Command execution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
		CommandErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "staffdesk_command_errors_total",
				Help: "Total number of command errors",
			},
			[]string{"command", "error_code"},
		),

		APIRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "staffdesk_api_requests_total",
				Help: "Total number of backend requests by status code",
			},
			[]string{"method", "endpoint", "status"},
		),
		APILatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "staffdesk_api_latency_seconds",
				Help:    "Backend request latency in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			},
			[]string{"method", "endpoint"},
		),
		APIErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "staffdesk_api_errors_total",
				Help: "Total number of failed backend requests by error category",
			},
			[]string{"endpoint", "category"},
		),

		GuardDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "staffdesk_guard_decisions_total",
				Help: "Total number of view guard decisions",
			},
			[]string{"view", "role", "outcome"},
		),

		SessionEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "staffdesk_session_events_total",
				Help: "Total number of session logins and logouts",
			},
			[]string{"kind"},
		),

		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "staffdesk_errors_total",
				Help: "Total number of errors by error code",
			},
			[]string{"error_code"},
		),
	}
}

// RecordCommand records one command execution.
func (m *Metrics) RecordCommand(command string, duration time.Duration, err error) {
	m.CommandExecutions.WithLabelValues(command, strconv.FormatBool(err == nil)).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(duration.Seconds())
	if err != nil {
		code := errorCode(err)
		m.CommandErrors.WithLabelValues(command, code).Inc()
		m.Errors.WithLabelValues(code).Inc()
	}
}

// RecordRequest records one backend round trip. status is 0 when no response arrived.
func (m *Metrics) RecordRequest(method, endpoint string, status int, duration time.Duration, err error) {
	statusLabel := "none"
	if status != 0 {
		statusLabel = strconv.Itoa(status)
	}
	m.APIRequests.WithLabelValues(method, endpoint, statusLabel).Inc()
	m.APILatency.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	if err != nil {
		category := string(errors.CategoryOf(err))
		if category == "" {
			category = "unknown"
		}
		m.APIErrors.WithLabelValues(endpoint, category).Inc()
	}
}

// ObserveDecision implements router.Observer.
func (m *Metrics) ObserveDecision(d router.Decision) {
	m.GuardDecisions.WithLabelValues(string(d.View), d.Role.String(), d.Outcome.String()).Inc()
}

// RecordSessionEvent counts a login or logout.
func (m *Metrics) RecordSessionEvent(kind string) {
	m.SessionEvents.WithLabelValues(kind).Inc()
}

func errorCode(err error) string {
	if appErr, ok := errors.As(err); ok {
		return string(appErr.Code)
	}
	return "UNKNOWN"
}

var _ router.Observer = (*Metrics)(nil)
