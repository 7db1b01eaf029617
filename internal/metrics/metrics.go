// Package metrics provides the Prometheus collectors exposed on /metrics.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	healthEventsTotal prometheus.Counter
	remindersCreated  prometheus.Counter
	messagesSent      *prometheus.CounterVec
	snapshotsTotal    *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry together
// with the Go runtime and process collectors.
func New() (*Metrics, error) {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)
	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Time taken for HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	m.healthEventsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "herd_health_events_total",
		Help: "Health events saved, each with its optional vaccination, ration and calendar rows",
	})
	m.remindersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "herd_reminders_created_total",
		Help: "Vaccination reminders created by the reminder sweep",
	})
	m.messagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "herd_whatsapp_messages_total",
			Help: "Outbound WhatsApp messages partitioned by result",
		},
		[]string{"result"},
	)
	m.snapshotsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "herd_snapshots_total",
			Help: "Herd snapshots written partitioned by sink and result",
		},
		[]string{"sink", "result"},
	)

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.healthEventsTotal,
		m.remindersCreated,
		m.messagesSent,
		m.snapshotsTotal,
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics collector: %w", err)
		}
	}

	return m, nil
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one served HTTP request. path is the route pattern.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// HealthEventSaved counts one composite health event save.
func (m *Metrics) HealthEventSaved() {
	if m == nil {
		return
	}
	m.healthEventsTotal.Inc()
}

// RemindersCreated counts new reminder notifications.
func (m *Metrics) RemindersCreated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.remindersCreated.Add(float64(n))
}

// MessageSent counts an outbound message attempt.
func (m *Metrics) MessageSent(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.messagesSent.WithLabelValues(result).Inc()
}

// SnapshotWritten counts a snapshot write to sink ("mongodb" or "sheets").
func (m *Metrics) SnapshotWritten(sink string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.snapshotsTotal.WithLabelValues(sink, result).Inc()
}
