package host

import (
	"errors"
	"time"

	"github.com/ganot/peerconnect/internal/address"
	"github.com/ganot/peerconnect/internal/contract"
	"github.com/ganot/peerconnect/internal/domain/collaboration"
	"github.com/ganot/peerconnect/internal/domain/project"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "peerconnect"

// Invocation outcomes used as the outcome label.
const (
	OutcomeSuccess        = "success"
	OutcomeUnauthorized   = "unauthorized"
	OutcomeNotFound       = "not_found"
	OutcomeNotInitialized = "not_initialized"
	OutcomeInvalid        = "invalid"
	OutcomeError          = "error"
)

// Metrics is a prometheus.Collector for entry point invocations.
type Metrics struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics returns a new Metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "invocations_total",
				Help:      "The number of entry point invocations by outcome.",
			}, []string{"entry_point", "method", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "invocation_duration_seconds",
				Help:      "The time taken to run an entry point invocation.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"entry_point", "method"},
		),
	}
}

// Describe is part of the prometheus.Collector interface.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.invocations.Describe(ch)
	m.duration.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.invocations.Collect(ch)
	m.duration.Collect(ch)
}

func (m *Metrics) observe(entryPoint, method string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.invocations.WithLabelValues(entryPoint, method, Outcome(err)).Inc()
	m.duration.WithLabelValues(entryPoint, method).Observe(elapsed.Seconds())
}

// Outcome classifies an invocation error for metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, project.ErrUnauthorized):
		return OutcomeUnauthorized
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, collaboration.ErrRequestNotFound):
		return OutcomeNotFound
	case errors.Is(err, project.ErrNotInitialized):
		return OutcomeNotInitialized
	case errors.Is(err, project.ErrInvalidStatus),
		errors.Is(err, contract.ErrInvalidMessage),
		errors.Is(err, contract.ErrMissingCaller),
		errors.Is(err, address.ErrInvalidAddress),
		errors.Is(err, ErrInvalidParams),
		errors.Is(err, ErrAlreadyInitialized),
		errors.Is(err, collaboration.ErrAlreadyRequested),
		errors.Is(err, collaboration.ErrOwnerRequest),
		errors.Is(err, collaboration.ErrInvalidStatus),
		errors.Is(err, collaboration.ErrInvalidInput):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
