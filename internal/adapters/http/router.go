package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteshare/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quoteshare/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quoteshare/internal/platform/config"
	"github.com/jsamuelsen/quoteshare/internal/platform/telemetry"
	"github.com/jsamuelsen/quoteshare/internal/ports"
)

// DefaultRequestTimeout is used when RouterConfig.Timeout is zero.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains everything SetupRouter wires together.
type RouterConfig struct {
	// Logger seeds the per-request context logger.
	Logger *slog.Logger

	// ServiceName names the otelgin tracer. Empty disables telemetry middleware.
	ServiceName string

	// Verifier checks bearer tokens on the protected quote routes.
	Verifier ports.TokenVerifier

	// CORS configures browser access.
	CORS config.CORSConfig

	HealthHandler *handlers.HealthHandler
	QuoteHandler  *handlers.QuoteHandler

	// Timeout is the deadline put on every /quotes request.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery
//  2. ContextLogger
//  3. Request ID, then Correlation ID
//  4. OpenTelemetry tracing and metrics
//  5. Logging (skips /-/ paths)
//  6. CORS
//
// Route groups:
//   - /-/ health checks and metrics, no auth
//   - / the banner
//   - /quotes/all public, everything else under /quotes needs a bearer token
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.ContextLogger(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)

	if cfg.ServiceName != "" {
		engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	}

	engine.Use(
		middleware.Logging(),
		middleware.CORS(cfg.CORS),
	)

	if cfg.HealthHandler != nil {
		engine.GET("/", cfg.HealthHandler.Root)
		cfg.HealthHandler.Register(engine.Group("/-"))
	}

	if cfg.QuoteHandler != nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultRequestTimeout
		}

		setupQuoteRoutes(engine.Group("/quotes", middleware.Timeout(timeout)), cfg)
	}
}

func setupQuoteRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	h := cfg.QuoteHandler

	rg.GET("/all", h.ListAll)

	protected := rg.Group("", middleware.RequireBearer(cfg.Verifier))
	protected.GET("/my", h.ListMine)
	protected.POST("", h.Create)
	protected.PUT("/:id", h.Update)
	protected.DELETE("/:id", h.Delete)
}
