package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mobilectl/core/internal/domain/entities"
)

// Metrics holds the Prometheus collectors for the service
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	actionsTotal    *prometheus.CounterVec
	actionDuration  *prometheus.HistogramVec
}

// New creates and registers all collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		actionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mobilectl_actions_total",
				Help: "Total number of dispatched actions by outcome",
			},
			[]string{"action", "outcome"},
		),
		actionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mobilectl_action_duration_seconds",
				Help:    "Action execution time in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action"},
		),
	}

	m.registry.MustRegister(m.requestsTotal, m.requestDuration, m.actionsTotal, m.actionDuration)
	return m
}

// ObserveRequest records one HTTP request
func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveAction implements ports.ActionObserver
func (m *Metrics) ObserveAction(action string, result entities.Result, duration time.Duration) {
	outcome := "success"
	if !result.Success {
		outcome = string(result.Kind)
		if outcome == "" {
			outcome = "failure"
		}
	}

	m.actionsTotal.WithLabelValues(action, outcome).Inc()
	m.actionDuration.WithLabelValues(action).Observe(duration.Seconds())
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
