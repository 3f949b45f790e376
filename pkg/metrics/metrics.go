package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request counts and latency for the web tier.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests handled, by route and status.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{requests: requests, duration: duration}
}

// Observe records one completed request.
func (h *HTTPMetrics) Observe(method, route string, status int, elapsed time.Duration) {
	if h == nil || h.requests == nil {
		return
	}
	h.requests.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Inc()
	h.duration.WithLabelValues(method, normalizeLabel(route)).Observe(elapsed.Seconds())
}

// ProbeMetrics records metadata for recurring health probes.
type ProbeMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewProbeMetrics registers the probe metrics on the provided registerer.
func NewProbeMetrics(reg prometheus.Registerer) *ProbeMetrics {
	if reg == nil {
		return &ProbeMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "probe_duration_seconds",
		Help:    "Duration of health probes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"component"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "probe_success",
		Help: "Successful health probe executions.",
	}, []string{"component"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "probe_failure",
		Help: "Failed health probe executions.",
	}, []string{"component"})
	reg.MustRegister(duration, success, failure)
	return &ProbeMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named component probe.
func (p *ProbeMetrics) ObserveDuration(component string, duration time.Duration) {
	if p == nil || p.duration == nil {
		return
	}
	p.duration.WithLabelValues(normalizeLabel(component)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named component.
func (p *ProbeMetrics) IncSuccess(component string) {
	if p == nil || p.success == nil {
		return
	}
	p.success.WithLabelValues(normalizeLabel(component)).Inc()
}

// IncFailure increments the failure counter for the named component.
func (p *ProbeMetrics) IncFailure(component string) {
	if p == nil || p.failure == nil {
		return
	}
	p.failure.WithLabelValues(normalizeLabel(component)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
