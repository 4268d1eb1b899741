package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// MetricsSummary provides high-level metrics
type MetricsSummary struct {
	Timestamp         time.Time `json:"timestamp"`
	TotalRequests     int64     `json:"total_requests"`
	AverageLatencyMs  float64   `json:"average_latency_ms"`
	ErrorRate         float64   `json:"error_rate"`
	ActiveConnections int64     `json:"active_connections"`
	ActiveDesktops    int64     `json:"active_desktops"`
	OpenWindows       int64     `json:"open_windows"`
	UptimeSeconds     float64   `json:"uptime_seconds"`
}

// MetricsJSON returns the aggregate metrics as JSON
func (h *Handlers) MetricsJSON(c *gin.Context) {
	snap := h.metrics.Snapshot()

	summary := MetricsSummary{
		Timestamp:         time.Now(),
		TotalRequests:     snap.TotalRequests,
		AverageLatencyMs:  snap.AvgResponseTimeMs,
		ActiveConnections: snap.ActiveConnections,
		ActiveDesktops:    snap.ActiveDesktops,
		OpenWindows:       snap.OpenWindows,
		UptimeSeconds:     h.metrics.UptimeSeconds(),
	}
	if snap.TotalRequests > 0 {
		summary.ErrorRate = float64(snap.TotalErrors) / float64(snap.TotalRequests)
	}

	c.JSON(http.StatusOK, summary)
}
