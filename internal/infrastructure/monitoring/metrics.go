package monitoring

import (
	"strconv"
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
	ResponseSize    *prometheus.HistogramVec

	// Desktop metrics
	DesktopsActive prometheus.Gauge
	DesktopsTotal  prometheus.Counter
	WindowsOpen    prometheus.Gauge
	WindowOps      *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time

	registry *prometheus.Registry

	snapshot MetricsSnapshot
	mu       sync.RWMutex
}

// MetricsSnapshot holds current metric values for the JSON health endpoint
type MetricsSnapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	ActiveDesktops    int64   `json:"active_desktops"`
	OpenWindows       int64   `json:"open_windows"`
	ActiveConnections int64   `json:"active_connections"`
	AvgResponseTimeMs float64 `json:"avg_response_time_ms"`
	totalDuration     float64
}

// NewMetrics creates a metrics collector registered on its own registry
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.NewRegistry())
}

// NewMetricsWithRegistry creates a metrics collector registered on reg
func NewMetricsWithRegistry(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),
		registry:  reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "retrodesk_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "retrodesk_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "retrodesk_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		DesktopsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "retrodesk_desktops_active",
				Help: "Number of live desktop sessions",
			},
		),
		DesktopsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "retrodesk_desktops_total",
				Help: "Total number of desktop sessions created",
			},
		),
		WindowsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "retrodesk_windows_open",
				Help: "Number of open windows across all desktops",
			},
		),
		WindowOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "retrodesk_window_operations_total",
				Help: "Window store operations by type and whether they applied",
			},
			[]string{"op", "applied"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "retrodesk_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "retrodesk_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "retrodesk_uptime_seconds",
			Help: "Server uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry returns the registry the metrics are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordWindowOp counts one window store operation
func (m *Metrics) RecordWindowOp(op string, applied bool) {
	m.WindowOps.WithLabelValues(op, strconv.FormatBool(applied)).Inc()
}

// AddWindowsOpen adjusts the open window gauge
func (m *Metrics) AddWindowsOpen(delta int) {
	m.WindowsOpen.Add(float64(delta))
	m.mu.Lock()
	m.snapshot.OpenWindows += int64(delta)
	m.mu.Unlock()
}

// DesktopOpened records a new desktop session
func (m *Metrics) DesktopOpened() {
	m.DesktopsActive.Inc()
	m.DesktopsTotal.Inc()
	m.mu.Lock()
	m.snapshot.ActiveDesktops++
	m.mu.Unlock()
}

// DesktopClosed records the end of a desktop session
func (m *Metrics) DesktopClosed() {
	m.DesktopsActive.Dec()
	m.mu.Lock()
	m.snapshot.ActiveDesktops--
	m.mu.Unlock()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns the current aggregate values
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.snapshot
	if snap.TotalRequests > 0 {
		snap.AvgResponseTimeMs = snap.totalDuration / float64(snap.TotalRequests) * 1000
	}
	return snap
}

// UptimeSeconds returns how long the collector has existed
func (m *Metrics) UptimeSeconds() float64 {
	return time.Since(m.startTime).Seconds()
}
