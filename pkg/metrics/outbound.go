package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OutboundMetrics records metadata for calls to external providers
// (postal lookup, place search).
type OutboundMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewOutboundMetrics registers the outbound call metrics on the provided registerer.
func NewOutboundMetrics(reg prometheus.Registerer) *OutboundMetrics {
	if reg == nil {
		return &OutboundMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "outbound_call_duration_seconds",
		Help:    "Duration of outbound provider calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider", "operation"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outbound_call_success",
		Help: "Successful outbound provider calls.",
	}, []string{"provider", "operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outbound_call_failure",
		Help: "Failed outbound provider calls.",
	}, []string{"provider", "operation"})
	reg.MustRegister(duration, success, failure)
	return &OutboundMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration of a provider operation.
func (m *OutboundMetrics) ObserveDuration(provider, operation string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(provider), normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for a provider operation.
func (m *OutboundMetrics) IncSuccess(provider, operation string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(provider), normalizeLabel(operation)).Inc()
}

// IncFailure increments the failure counter for a provider operation.
func (m *OutboundMetrics) IncFailure(provider, operation string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(provider), normalizeLabel(operation)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
