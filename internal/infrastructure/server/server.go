package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/retrodesk/internal/api/http"
	"github.com/GriffinCanCode/retrodesk/internal/api/middleware"
	"github.com/GriffinCanCode/retrodesk/internal/api/ws"
	"github.com/GriffinCanCode/retrodesk/internal/domain/catalog"
	"github.com/GriffinCanCode/retrodesk/internal/infrastructure/config"
	"github.com/GriffinCanCode/retrodesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/retrodesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/retrodesk/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/retrodesk/internal/render"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	handler http.Handler
	http    *http.Server
	ws      *ws.Handler
	catalog *catalog.Catalog
	tracer  *tracing.Tracer
	logger  *logging.Logger
	log     *zap.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance with a logger built from cfg
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.FromConfig(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return New(cfg, logger)
}

// New creates a new server instance
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	log := logger.Component(logging.ComponentServer)

	log.Info("Initializing retrodesk server",
		zap.String("addr", cfg.Addr()),
		zap.String("catalog_dir", cfg.Desktop.CatalogDir),
		zap.Strings("startup", cfg.Desktop.StartupPrograms),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("retrodesk", logger.Component(logging.ComponentTrace))

	cat, err := LoadCatalog(cfg.Desktop.CatalogDir, logger.Component(logging.ComponentCatalog))
	if err != nil {
		tracer.Close()
		return nil, err
	}
	for _, id := range cfg.Desktop.StartupPrograms {
		if _, ok := cat.Get(id); !ok {
			log.Warn("Startup program not in catalog", logging.Program(id))
		}
	}

	renderer, err := render.New(render.Site{
		Title: cfg.Desktop.SiteTitle,
		URL:   cfg.Desktop.SiteURL,
	}, cat)
	if err != nil {
		tracer.Close()
		return nil, err
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Recovery(logger.Component(logging.ComponentHTTP)))
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.RequestLogger(logger.Component(logging.ComponentHTTP)))
	origins := middleware.DefaultOriginPolicy()
	origins.Origins = cfg.Server.CORSOrigins
	router.Use(middleware.CORS(origins))
	if cfg.RateLimit.Enabled {
		log.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(
		cat,
		renderer,
		metrics,
		apihttp.NewIconStore(cfg.Desktop.IconsDir),
		cfg.Desktop.StartupPrograms,
		logger.Component(logging.ComponentHTTP),
	)
	wsHandler := ws.NewHandler(cat, renderer, metrics, tracer, ws.Config{
		MaxMessageBytes: cfg.Desktop.MaxMessageBytes,
		EventsPerSecond: cfg.Desktop.EventsPerSecond,
		EventBurst:      cfg.Desktop.EventBurst,
		StartupPrograms: cfg.Desktop.StartupPrograms,
	}, logger.Component(logging.ComponentWS))

	// Pages
	router.GET("/", handlers.Desktop)
	router.GET("/archive", handlers.Archive)
	router.GET("/desktop.js", handlers.Script)
	router.GET("/icons/*path", handlers.Icon)

	// Catalog
	router.GET("/programs", handlers.ListPrograms)
	router.GET("/programs/:id", handlers.GetProgram)

	// Health and metrics
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/metrics/json", handlers.MetricsJSON)

	// WebSocket
	router.GET("/stream", wsHandler.HandleConnection)

	s := &Server{
		router:  router,
		ws:      wsHandler,
		catalog: cat,
		tracer:  tracer,
		logger:  logger,
		log:     log,
		config:  cfg,
		metrics: metrics,
	}
	s.handler = s.buildHandler()
	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("Server initialized successfully", zap.Int("programs", cat.Len()))
	return s, nil
}

// LoadCatalog returns the built-in programs extended with the manifests in
// dir. An empty dir yields the built-ins.
func LoadCatalog(dir string, logger *zap.Logger) (*catalog.Catalog, error) {
	if dir == "" {
		return catalog.Default(), nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cat, stats, err := catalog.NewLoader(dir, logger).Load(catalog.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	logger.Info("Catalog loaded",
		zap.String("dir", dir),
		zap.Int("files", stats.Files),
		zap.Int("loaded", stats.Loaded),
		zap.Int("failed", stats.Failed),
		zap.Int("programs", stats.Programs),
	)
	return cat, nil
}

// buildHandler wraps the router with gzip. WebSocket upgrades bypass the
// wrapper since they need the raw connection.
func (s *Server) buildHandler() http.Handler {
	if !s.config.Compression.Enabled {
		return s.router
	}

	gz := gzhttp.GzipHandler(s.router)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			s.router.ServeHTTP(w, r)
			return
		}
		gz.ServeHTTP(w, r)
	})
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Catalog returns the programs the server offers
func (s *Server) Catalog() *catalog.Catalog {
	return s.catalog
}

// Run starts the HTTP server and blocks until it is shut down
func (s *Server) Run() error {
	s.log.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, closes live desktop sessions and
// flushes the tracer and logger.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Server stopping", zap.Int("sessions", s.ws.ActiveConnections()))

	s.ws.Shutdown()
	err := s.http.Shutdown(ctx)
	if err != nil {
		s.log.Error("HTTP shutdown failed", zap.Error(err))
	}

	s.tracer.Close()
	_ = s.logger.Sync()

	if err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

// Close shuts down within the configured timeout
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}
