package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Card metrics
	CardsActive prometheus.Gauge
	CardsOpened *prometheus.CounterVec
	CardsClosed *prometheus.CounterVec

	// Gesture metrics
	GestureEvents *prometheus.CounterVec
	SnapCommits   *prometheus.CounterVec

	// Service metrics
	ServiceCalls    *prometheus.CounterVec
	ServiceDuration *prometheus.HistogramVec
	ServiceErrors   *prometheus.CounterVec

	// Session metrics
	SessionsSaved    prometheus.Counter
	SessionsRestored prometheus.Counter

	// Template registry metrics
	RegistryTemplates prometheus.Gauge

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	// Snapshot for the JSON stats endpoint
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values for the JSON API
type Snapshot struct {
	TotalRequests int64
	TotalErrors   int64
	ActiveCards   int64
	Connections   int64
	TotalDuration float64
	RequestCount  int64
}

// NewMetrics creates a metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deck_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "deck_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "deck_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "deck_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		CardsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "deck_cards_active",
				Help: "Number of open cards",
			},
		),
		CardsOpened: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deck_cards_opened_total",
				Help: "Total number of cards opened",
			},
			[]string{"type"},
		),
		CardsClosed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deck_cards_closed_total",
				Help: "Total number of cards closed",
			},
			[]string{"type"},
		),

		GestureEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deck_gesture_events_total",
				Help: "Total number of pointer gesture events",
			},
			[]string{"kind", "phase"},
		),
		SnapCommits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deck_snap_commits_total",
				Help: "Total number of committed snap dockings",
			},
			[]string{"zone"},
		),

		ServiceCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deck_service_calls_total",
				Help: "Total number of service tool calls",
			},
			[]string{"service", "tool", "status"},
		),
		ServiceDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "deck_service_duration_seconds",
				Help:    "Service tool call duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"service", "tool"},
		),
		ServiceErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deck_service_errors_total",
				Help: "Total number of service errors",
			},
			[]string{"service", "tool", "error_type"},
		),

		SessionsSaved: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "deck_sessions_saved_total",
				Help: "Total number of sessions saved",
			},
		),
		SessionsRestored: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "deck_sessions_restored_total",
				Help: "Total number of sessions restored",
			},
		),

		RegistryTemplates: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "deck_registry_templates",
				Help: "Number of installed card templates",
			},
		),

		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "deck_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deck_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "deck_uptime_seconds",
				Help: "Backend uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordCardOpened records a card opening
func (m *Metrics) RecordCardOpened(cardType string) {
	m.CardsOpened.WithLabelValues(cardType).Inc()
	m.CardsActive.Inc()
	m.mu.Lock()
	m.snapshot.ActiveCards++
	m.mu.Unlock()
}

// RecordCardClosed records a card closing
func (m *Metrics) RecordCardClosed(cardType string) {
	m.CardsClosed.WithLabelValues(cardType).Inc()
	m.CardsActive.Dec()
	m.mu.Lock()
	if m.snapshot.ActiveCards > 0 {
		m.snapshot.ActiveCards--
	}
	m.mu.Unlock()
}

// RecordGesture records a pointer gesture event
func (m *Metrics) RecordGesture(kind, phase string) {
	m.GestureEvents.WithLabelValues(kind, phase).Inc()
}

// RecordSnap records a committed snap docking
func (m *Metrics) RecordSnap(zone string) {
	m.SnapCommits.WithLabelValues(zone).Inc()
}

// RecordServiceCall records a service tool call
func (m *Metrics) RecordServiceCall(service, tool, status string, duration time.Duration) {
	m.ServiceCalls.WithLabelValues(service, tool, status).Inc()
	m.ServiceDuration.WithLabelValues(service, tool).Observe(duration.Seconds())
}

// RecordServiceError records a service error
func (m *Metrics) RecordServiceError(service, tool, errorType string) {
	m.ServiceErrors.WithLabelValues(service, tool, errorType).Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncSessionsSaved increments the sessions saved counter
func (m *Metrics) IncSessionsSaved() {
	m.SessionsSaved.Inc()
}

// IncSessionsRestored increments the sessions restored counter
func (m *Metrics) IncSessionsRestored() {
	m.SessionsRestored.Inc()
}

// SetRegistryTemplates sets the number of installed templates
func (m *Metrics) SetRegistryTemplates(count int) {
	m.RegistryTemplates.Set(float64(count))
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.Connections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	if m.snapshot.Connections > 0 {
		m.snapshot.Connections--
	}
	m.mu.Unlock()
}

// GetSnapshot returns current counters for the JSON stats endpoint
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// UptimeSeconds returns seconds since startup
func (m *Metrics) UptimeSeconds() float64 {
	return time.Since(m.startTime).Seconds()
}
