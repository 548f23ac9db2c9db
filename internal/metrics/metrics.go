// internal/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks wizard progress and submission outcomes.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	StepTransitions    *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	Submissions        *prometheus.CounterVec
	SubmitDuration     prometheus.Histogram
	ActiveSessions     prometheus.Gauge
}

// New registers the registration metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StepTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trustpanel_registration_step_transitions_total",
			Help: "Wizard step transitions by origin and destination step",
		}, []string{"from", "to"}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trustpanel_registration_validation_failures_total",
			Help: "Field validation failures by field",
		}, []string{"field"}),
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trustpanel_registration_submissions_total",
			Help: "Registration submissions by outcome",
		}, []string{"outcome"}),
		SubmitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "trustpanel_registration_submit_duration_seconds",
			Help:    "Time from finishing step two until the backend resolves",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 10},
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "trustpanel_registration_active_sessions",
			Help: "Open websocket wizard sessions",
		}),
	}
}

// ObserveTransition records a move between two steps.
func (m *Metrics) ObserveTransition(from, to string) {
	if m == nil {
		return
	}
	m.StepTransitions.WithLabelValues(from, to).Inc()
}

// IncrementValidationFailure records one failed field check.
func (m *Metrics) IncrementValidationFailure(field string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(field).Inc()
}

// ObserveSubmission records the outcome and duration of a submission.
// Call with time.Now() taken before the backend was invoked.
func (m *Metrics) ObserveSubmission(start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.Submissions.WithLabelValues(outcome).Inc()
	m.SubmitDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.ActiveSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.ActiveSessions.Dec()
}
