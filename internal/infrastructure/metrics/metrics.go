package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the onboarding workflow.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RequestsSubmitted   *prometheus.CounterVec
	RequestsApproved    prometheus.Counter
	CodeVerifications   *prometheus.CounterVec
	Registrations       *prometheus.CounterVec
	Compensations       *prometheus.CounterVec
	OnboardingFinalized prometheus.Counter
	StatusToggles       *prometheus.CounterVec
	OrphanedIdentities  prometheus.Gauge
	OperationDuration   *prometheus.HistogramVec
}

// New registers the onboarding metrics with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		RequestsSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_requests_submitted_total",
			Help: "Registration requests accepted, by kind",
		}, []string{"kind"}),
		RequestsApproved: factory.NewCounter(prometheus.CounterOpts{
			Name: "onboarding_requests_approved_total",
			Help: "Signup requests approved into partner accounts",
		}),
		CodeVerifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_code_verifications_total",
			Help: "Registration code checks, by outcome",
		}, []string{"outcome"}),
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_registrations_total",
			Help: "Registration completions, by outcome",
		}, []string{"outcome"}),
		Compensations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_compensations_total",
			Help: "Compensating actions run after a failed registration, by step and outcome",
		}, []string{"step", "outcome"}),
		OnboardingFinalized: factory.NewCounter(prometheus.CounterOpts{
			Name: "onboarding_finalized_total",
			Help: "Onboarding questionnaires saved",
		}),
		StatusToggles: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_status_toggles_total",
			Help: "Account status changes, by resulting status",
		}, []string{"status"}),
		OrphanedIdentities: factory.NewGauge(prometheus.GaugeOpts{
			Name: "onboarding_orphaned_identities",
			Help: "Partner identity users without a partner account at the last scan",
		}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "onboarding_operation_duration_seconds",
			Help:    "Duration of onboarding operations",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncRequestSubmitted(kind string) {
	if m == nil {
		return
	}
	m.RequestsSubmitted.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncRequestApproved() {
	if m == nil {
		return
	}
	m.RequestsApproved.Inc()
}

// IncVerification records a code check; outcome is "valid" or "invalid"
func (m *Metrics) IncVerification(outcome string) {
	if m == nil {
		return
	}
	m.CodeVerifications.WithLabelValues(outcome).Inc()
}

// IncRegistration records a completion attempt; outcome is "completed" or "failed"
func (m *Metrics) IncRegistration(outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(outcome).Inc()
}

// IncCompensation records one compensating step; outcome is "ok" or "failed"
func (m *Metrics) IncCompensation(step, outcome string) {
	if m == nil {
		return
	}
	m.Compensations.WithLabelValues(step, outcome).Inc()
}

func (m *Metrics) IncOnboardingFinalized() {
	if m == nil {
		return
	}
	m.OnboardingFinalized.Inc()
}

func (m *Metrics) IncStatusToggle(status string) {
	if m == nil {
		return
	}
	m.StatusToggles.WithLabelValues(status).Inc()
}

func (m *Metrics) SetOrphanedIdentities(n int) {
	if m == nil {
		return
	}
	m.OrphanedIdentities.Set(float64(n))
}

// ObserveOperation records the duration of operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
