package ws

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/retrodesk/internal/domain/catalog"
	"github.com/GriffinCanCode/retrodesk/internal/domain/desktop"
	"github.com/GriffinCanCode/retrodesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/retrodesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/retrodesk/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/retrodesk/internal/render"
	"github.com/GriffinCanCode/retrodesk/internal/shared/id"
	"github.com/GriffinCanCode/retrodesk/internal/shared/utils"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// connections are cut off above this multiple of the message limit
	hardLimitFactor = 4
)

// Config tunes per-connection limits
type Config struct {
	MaxMessageBytes int
	EventsPerSecond int
	EventBurst      int
	StartupPrograms []string
}

// DefaultConfig returns the limits used when none are configured
func DefaultConfig() Config {
	return Config{
		MaxMessageBytes: utils.MaxMessageSize,
		EventsPerSecond: 120,
		EventBurst:      240,
		StartupPrograms: []string{"hello-world"},
	}
}

// Handler manages WebSocket connections
type Handler struct {
	catalog  *catalog.Catalog
	renderer *render.Renderer
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
	config   Config
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewHandler creates a new WebSocket handler
func NewHandler(
	cat *catalog.Catalog,
	renderer *render.Renderer,
	metrics *monitoring.Metrics,
	tracer *tracing.Tracer,
	cfg Config,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	def := DefaultConfig()
	if cfg.MaxMessageBytes <= 0 {
		cfg.MaxMessageBytes = def.MaxMessageBytes
	}
	if cfg.EventsPerSecond <= 0 {
		cfg.EventsPerSecond = def.EventsPerSecond
	}
	if cfg.EventBurst <= 0 {
		cfg.EventBurst = def.EventBurst
	}

	return &Handler{
		catalog:  cat,
		renderer: renderer,
		metrics:  metrics,
		tracer:   tracer,
		config:   cfg,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 16384,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

type renderReply struct {
	Type     string           `json:"type"`
	HTML     string           `json:"html"`
	Snapshot desktop.Snapshot `json:"snapshot"`
}

type errorReply struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// session is one connection and the desktop it drives
type session struct {
	id      id.ConnectionID
	conn    *websocket.Conn
	desktop *desktop.Desktop
	limiter *rate.Limiter
	logger  *zap.Logger
	done    chan struct{}
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	s := h.open(conn)
	defer h.close(s)

	reqCtx := c.Request.Context()

	if err := h.sendRender(s); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}

		if err := h.handleMessage(reqCtx, s, data); err != nil {
			s.logger.Debug("WebSocket write failed", zap.Error(err))
			return
		}
	}
}

func (h *Handler) open(conn *websocket.Conn) *session {
	connID := id.NewConnectionID()
	logger := h.logger.With(logging.ConnID(connID.String()))

	d := desktop.New(h.catalog, logger).WithRecorder(h.metrics)
	if err := d.Start(h.config.StartupPrograms...); err != nil {
		logger.Warn("Startup program failed", zap.Error(err))
	}

	conn.SetReadLimit(int64(h.config.MaxMessageBytes) * hardLimitFactor)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	h.metrics.IncWSConnections()
	h.metrics.DesktopOpened()
	logger.Info("Desktop session opened", logging.DesktopID(d.ID()))

	s := &session{
		id:      connID,
		conn:    conn,
		desktop: d,
		limiter: rate.NewLimiter(rate.Limit(h.config.EventsPerSecond), h.config.EventBurst),
		logger:  logger,
		done:    make(chan struct{}),
	}
	go h.keepAlive(s)
	return s
}

func (h *Handler) close(s *session) {
	h.mu.Lock()
	delete(h.conns, s.conn)
	h.mu.Unlock()

	close(s.done)
	s.desktop.Close()
	h.metrics.DesktopClosed()
	h.metrics.DecWSConnections()
	_ = s.conn.Close()

	s.logger.Info("Desktop session closed")
}

// keepAlive pings until the session ends or a ping fails
func (h *Handler) keepAlive(s *session) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// handleMessage applies one client message. Only write failures are
// returned; everything else is reported to the client.
func (h *Handler) handleMessage(ctx context.Context, s *session, data []byte) error {
	if err := utils.ValidateMessageSize(data, h.config.MaxMessageBytes); err != nil {
		h.metrics.RecordWSMessage("in", "oversized")
		return h.sendError(s, err.Error())
	}

	// a ping is an event with type "ping"
	ev, err := desktop.DecodeEvent(data)
	if err != nil {
		h.metrics.RecordWSMessage("in", "malformed")
		return h.sendError(s, "malformed message")
	}

	msgType := string(ev.Type)
	h.metrics.RecordWSMessage("in", msgType)

	if msgType == "ping" {
		return h.send(s, "pong", map[string]any{"type": "pong", "timestamp": time.Now().Unix()})
	}

	if !releasesPointer(ev.Type) && !s.limiter.Allow() {
		return h.sendError(s, "rate limit exceeded")
	}

	span, _ := h.tracer.Start(ctx, "ws."+msgType)
	span.SetTag(logging.KeyDesktopID, s.desktop.ID())
	span.SetTag(logging.KeyConnID, s.id.String())
	defer h.tracer.End(span)

	if _, err := s.desktop.Handle(ev); err != nil {
		span.SetError(err)
		switch {
		case errors.Is(err, desktop.ErrInvalidEvent), errors.Is(err, catalog.ErrUnknownProgram):
			s.logger.Debug("Event rejected", logging.Event(msgType), zap.Error(err))
		default:
			s.logger.Warn("Event failed", logging.Event(msgType), zap.Error(err))
		}
		return h.sendError(s, err.Error())
	}

	return h.sendRender(s)
}

func releasesPointer(t desktop.EventType) bool {
	return t == desktop.EventPointerUp || t == desktop.EventPointerCancel
}

func (h *Handler) sendRender(s *session) error {
	snap := s.desktop.Snapshot()
	html, err := h.renderer.WindowsHTML(snap)
	if err != nil {
		s.logger.Error("Render failed", zap.Error(err))
		return h.sendError(s, "render failed")
	}
	return h.send(s, "render", renderReply{Type: "render", HTML: html, Snapshot: snap})
}

func (h *Handler) send(s *session, msgType string, data any) error {
	payload, err := sonic.Marshal(data)
	if err != nil {
		return err
	}

	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return err
	}
	h.metrics.RecordWSMessage("out", msgType)
	return nil
}

func (h *Handler) sendError(s *session, msg string) error {
	return h.send(s, "error", errorReply{
		Type:      "error",
		Message:   msg,
		Timestamp: time.Now().Unix(),
	})
}

// ActiveConnections returns the number of open connections
func (h *Handler) ActiveConnections() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Shutdown sends a close frame to every open connection. Their read loops
// then exit and release their desktops.
func (h *Handler) Shutdown() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	deadline := time.Now().Add(writeWait)
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for _, conn := range conns {
		_ = conn.WriteControl(websocket.CloseMessage, msg, deadline)
		_ = conn.Close()
	}
}
