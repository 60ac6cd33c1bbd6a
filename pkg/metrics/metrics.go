package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "clubs"

// Metrics collectors exported on /metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	RequestsCreated    *prometheus.CounterVec
	RequestTransitions *prometheus.CounterVec
	Logins             *prometheus.CounterVec
}

// New registers all collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		RequestsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_created_total",
			Help:      "Club requests submitted, by request type.",
		}, []string{"type"}),
		RequestTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "request_transitions_total",
			Help:      "Status decisions on club requests, by target status and outcome.",
		}, []string{"status", "outcome"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.RequestsCreated, m.RequestTransitions, m.Logins)
	return m
}

// RequestCreated counts a submitted request
func (m *Metrics) RequestCreated(requestType string) {
	if m == nil {
		return
	}
	m.RequestsCreated.WithLabelValues(requestType).Inc()
}

// Transition counts a decision attempt; outcome is "ok", "conflict", "forbidden", ...
func (m *Metrics) Transition(status, outcome string) {
	if m == nil {
		return
	}
	m.RequestTransitions.WithLabelValues(status, outcome).Inc()
}

// Login counts a login attempt
func (m *Metrics) Login(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}
