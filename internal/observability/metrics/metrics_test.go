package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestIntakeMetricsObserve(t *testing.T) {
	m := NewIntakeMetrics(prometheus.NewRegistry())
	m.ObserveLead("cans", "accepted")
	m.ObserveLead("", "rejected")
	m.ObserveValidationFailures("pickup", 3)
	m.ObserveRegistration("conflict")
}

func TestIntakeMetricsCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewIntakeMetrics(reg)
	m.ObserveRegistration("accepted")
}

func TestIntakeMetricsNilSafe(t *testing.T) {
	var m *IntakeMetrics
	m.ObserveLead("cans", "accepted")
	m.ObserveValidationFailures("pickup", 1)
	m.ObserveRegistration("accepted")
}
