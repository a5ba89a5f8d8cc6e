package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the request workflow.
type Metrics struct {
	// Transition attempts by event and outcome
	Transitions *prometheus.CounterVec

	// Reason emails actually dispatched, by status
	ReasonEmails *prometheus.CounterVec

	// Guard rejections by guard name
	GuardFailures *prometheus.CounterVec

	// End-to-end transition latency including side effects
	TransitionLatency *prometheus.HistogramVec
}

// New creates a Metrics instance with all workflow metrics registered.
func New() *Metrics {
	return &Metrics{
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_request_transitions_total",
			Help: "Total request transition attempts by event and outcome",
		}, []string{"event", "outcome"}), // outcome: "ok", "invalid", "guard_failed", "error"

		ReasonEmails: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_request_reason_emails_total",
			Help: "Total reason emails dispatched by status",
		}, []string{"status"}),

		GuardFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_request_guard_failures_total",
			Help: "Total transition guard rejections by guard",
		}, []string{"guard"}),

		TransitionLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "registrar_request_transition_duration_seconds",
			Help:    "Duration of request transitions including side effects",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"event"}),
	}
}

// IncrementTransition records a transition attempt outcome.
func (m *Metrics) IncrementTransition(event, outcome string) {
	if m != nil {
		m.Transitions.WithLabelValues(event, outcome).Inc()
	}
}

// IncrementReasonEmail records a dispatched reason email.
func (m *Metrics) IncrementReasonEmail(status string) {
	if m != nil {
		m.ReasonEmails.WithLabelValues(status).Inc()
	}
}

// IncrementGuardFailure records a guard rejection.
func (m *Metrics) IncrementGuardFailure(guard string) {
	if m != nil {
		m.GuardFailures.WithLabelValues(guard).Inc()
	}
}

// ObserveTransitionLatency records the duration of a transition.
func (m *Metrics) ObserveTransitionLatency(event string, d time.Duration) {
	if m != nil {
		m.TransitionLatency.WithLabelValues(event).Observe(d.Seconds())
	}
}
