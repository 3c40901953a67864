package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics exposes counters for pickup intake and registration flows.
type IntakeMetrics struct {
	leadsTotal         *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	registrationsTotal *prometheus.CounterVec
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		leadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "canback",
			Subsystem: "intake",
			Name:      "leads_total",
			Help:      "Pickup lead submissions by pickup type and outcome",
		}, []string{"pickup_type", "status"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "canback",
			Subsystem: "intake",
			Name:      "validation_failures_total",
			Help:      "Individual validation rule violations by flow",
		}, []string{"flow"}),
		registrationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "canback",
			Subsystem: "accounts",
			Name:      "registrations_total",
			Help:      "Account registrations by outcome",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.leadsTotal, m.validationFailures, m.registrationsTotal)
	return m
}

func (m *IntakeMetrics) ObserveLead(pickupType, status string) {
	if m == nil {
		return
	}
	if pickupType == "" {
		pickupType = "unknown"
	}
	m.leadsTotal.WithLabelValues(pickupType, status).Inc()
}

func (m *IntakeMetrics) ObserveValidationFailures(flow string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.validationFailures.WithLabelValues(flow).Add(float64(count))
}

func (m *IntakeMetrics) ObserveRegistration(status string) {
	if m == nil {
		return
	}
	m.registrationsTotal.WithLabelValues(status).Inc()
}
