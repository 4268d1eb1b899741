package http

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/retrodesk/internal/domain/catalog"
	"github.com/GriffinCanCode/retrodesk/internal/domain/desktop"
	"github.com/GriffinCanCode/retrodesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/retrodesk/internal/render"
	"github.com/GriffinCanCode/retrodesk/internal/shared/utils"
)

const htmlContentType = "text/html; charset=utf-8"

// Handlers contains all HTTP handlers
type Handlers struct {
	catalog  *catalog.Catalog
	renderer *render.Renderer
	metrics  *monitoring.Metrics
	icons    *IconStore
	startup  []string
	logger   *zap.Logger
}

// NewHandlers creates a new handler set. startup lists the programs open on
// a fresh desktop.
func NewHandlers(
	cat *catalog.Catalog,
	renderer *render.Renderer,
	metrics *monitoring.Metrics,
	icons *IconStore,
	startup []string,
	logger *zap.Logger,
) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		catalog:  cat,
		renderer: renderer,
		metrics:  metrics,
		icons:    icons,
		startup:  startup,
		logger:   logger,
	}
}

// Desktop renders the initial desktop. The live session starts on the
// WebSocket with the same startup programs.
func (h *Handlers) Desktop(c *gin.Context) {
	d := desktop.New(h.catalog, h.logger)
	if err := d.Start(h.startup...); err != nil {
		h.logger.Warn("Startup program failed", zap.Error(err))
	}

	var buf bytes.Buffer
	if err := h.renderer.Desktop(&buf, d.Snapshot()); err != nil {
		h.renderError(c, err)
		return
	}
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

// Archive renders the archive page
func (h *Handlers) Archive(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.renderer.Archive(&buf); err != nil {
		h.renderError(c, err)
		return
	}
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

// Script serves the client script
func (h *Handlers) Script(c *gin.Context) {
	serveCached(c, "text/javascript; charset=utf-8", "public, max-age=300", h.renderer.Script())
}

// serveCached writes data with an ETag, answering 304 when the client
// already holds it.
func serveCached(c *gin.Context, contentType, cacheControl string, data []byte) {
	etag := utils.ETag(data)
	c.Header("Cache-Control", cacheControl)
	c.Header("ETag", etag)
	if utils.ETagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}

// ListPrograms lists the launchable programs
func (h *Handlers) ListPrograms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"programs": h.catalog.List(),
		"count":    h.catalog.Len(),
		"startup":  h.startup,
	})
}

// GetProgram returns one program
func (h *Handlers) GetProgram(c *gin.Context) {
	id := c.Param("id")
	prog, ok := h.catalog.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "program not found", "id": id})
		return
	}
	c.JSON(http.StatusOK, prog)
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	snap := h.metrics.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"uptime_seconds": h.metrics.UptimeSeconds(),
		"programs":       h.catalog.Len(),
		"desktops":       snap.ActiveDesktops,
		"windows":        snap.OpenWindows,
		"connections":    snap.ActiveConnections,
	})
}

func (h *Handlers) renderError(c *gin.Context, err error) {
	h.logger.Error("Render failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	_ = c.Error(err)
	c.String(http.StatusInternalServerError, "render failed")
}
