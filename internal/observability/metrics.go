package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	RPCRequests        *prometheus.CounterVec   // labels: method, code
	RPCDuration        *prometheus.HistogramVec // labels: method
	RequestTransitions *prometheus.CounterVec   // labels: status
	Logins             *prometheus.CounterVec   // labels: outcome={success,failure,throttled}
}

func newMetrics() *Metrics {
	return &Metrics{
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "floodfriend",
			Name:      "rpc_requests_total",
			Help:      "gRPC calls by method and status code.",
		}, []string{"method", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "floodfriend",
			Name:      "rpc_duration_seconds",
			Help:      "gRPC call latency in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method"}),
		RequestTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "floodfriend",
			Name:      "request_transitions_total",
			Help:      "Aid request status changes by target status.",
		}, []string{"status"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "floodfriend",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.RPCRequests, m.RPCDuration, m.RequestTransitions, m.Logins}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() (*Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	m := newMetrics()
	reg.MustRegister(m.collectors()...)
	return m, reg
}

// ObserveTransition counts a request moving into status. Safe on a nil receiver.
func (m *Metrics) ObserveTransition(status string) {
	if m == nil {
		return
	}
	m.RequestTransitions.WithLabelValues(status).Inc()
}

// ObserveLogin counts a login attempt outcome. Safe on a nil receiver.
func (m *Metrics) ObserveLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

// ObserveRPC records one finished call. Safe on a nil receiver.
func (m *Metrics) ObserveRPC(method, code string, seconds float64) {
	if m == nil {
		return
	}
	m.RPCRequests.WithLabelValues(method, code).Inc()
	m.RPCDuration.WithLabelValues(method).Observe(seconds)
}
