// Package metrics provides Prometheus metrics for inpatient registration.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Admission outcomes
const (
	OutcomeSucceeded = "succeeded"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
	OutcomeRejected  = "rejected"
)

// Metrics holds all application metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	AdmissionsTotal     *prometheus.CounterVec
	AdmissionDuration   prometheus.Histogram
	RegistryPatients    prometheus.Gauge
	PatientQueries      prometheus.Counter
	CircuitBreakerState *prometheus.GaugeVec
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AdmissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inpatient_admissions_total",
			Help: "Admission attempts by outcome",
		}, []string{"outcome"}),
		AdmissionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "inpatient_admission_duration_seconds",
			Help:    "Admission workflow duration",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		RegistryPatients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inpatient_registry_patients",
			Help: "Patients currently held in the registry",
		}),
		PatientQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inpatient_patient_queries_total",
			Help: "Patient list queries served",
		}),
		CircuitBreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "inpatient_store_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		}, []string{"name"}),
	}

	reg.MustRegister(
		m.AdmissionsTotal,
		m.AdmissionDuration,
		m.RegistryPatients,
		m.PatientQueries,
		m.CircuitBreakerState,
	)

	return m
}

func (m *Metrics) ObserveAdmission(outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.AdmissionsTotal.WithLabelValues(outcome).Inc()
	m.AdmissionDuration.Observe(time.Since(started).Seconds())
}

func (m *Metrics) SetRegistrySize(n int) {
	if m == nil {
		return
	}
	m.RegistryPatients.Set(float64(n))
}

func (m *Metrics) IncQueries() {
	if m == nil {
		return
	}
	m.PatientQueries.Inc()
}

func (m *Metrics) SetBreakerState(name string, value float64) {
	if m == nil {
		return
	}
	m.CircuitBreakerState.WithLabelValues(name).Set(value)
}

// Handler returns the Prometheus HTTP handler for the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

// HandlerFor serves the metrics of a specific gatherer.
func HandlerFor(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
