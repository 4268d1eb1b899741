package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/retrodesk/internal/infrastructure/tracing"
)

// OriginPolicy says which sites may read the catalog, health and icon
// routes from a browser. Every route is read-only, so only origins and the
// preflight cache are configurable.
type OriginPolicy struct {
	Origins []string // "*" or empty allows any origin
	MaxAge  time.Duration
}

// DefaultOriginPolicy allows any origin and caches preflights for 12 hours
func DefaultOriginPolicy() OriginPolicy {
	return OriginPolicy{Origins: []string{"*"}, MaxAge: 12 * time.Hour}
}

func (p OriginPolicy) allowsAll() bool {
	return len(p.Origins) == 0 || slices.Contains(p.Origins, "*")
}

// CORS answers preflights and tags cross-origin responses per p. Clients may
// send conditional requests and trace headers, and may read ETag and the
// trace headers back.
func CORS(p OriginPolicy) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders:  []string{"Accept", "Cache-Control", "If-None-Match", tracing.TraceHeader, tracing.SpanHeader},
		ExposeHeaders: []string{"ETag", tracing.TraceHeader, tracing.SpanHeader},
		MaxAge:        p.MaxAge,
	}
	if p.allowsAll() {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = p.Origins
	}
	return cors.New(cfg)
}
