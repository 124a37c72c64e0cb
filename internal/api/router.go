package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockseries/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterOptions carries the HTTP-layer settings from config.
type RouterOptions struct {
	// AllowOrigins is the CORS origin list; empty or ["*"] allows every origin.
	AllowOrigins []string
	// RequestTimeout bounds each request, provider call included. Zero disables it.
	RequestTimeout time.Duration
	// RateLimitRPS enables the per-client limiter when positive.
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Metrics, Recovery, ErrorHandler, CORS).
//   - Adds the optional per-client rate limiter and the request timeout.
//   - Mounts Swagger docs (/swagger/*any) and Prometheus metrics (/metrics).
//   - Configures POST /stock.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Metrics(), // outside Recovery so panics are counted as 500s
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.CORS(opts.AllowOrigins),
	)
	if opts.RateLimitRPS > 0 {
		router.Use(middleware.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).Handler())
	}
	if opts.RequestTimeout > 0 {
		router.Use(middleware.Timeout(opts.RequestTimeout))
	}

	// ─── Docs & metrics ───────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ─── API ──────────────────────────────────────
	router.POST("/stock", handler.PostStock)

	return router
}
