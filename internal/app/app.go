package app

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockseries/config"
	"github.com/guttosm/stockseries/internal/api"
	"github.com/guttosm/stockseries/internal/logger"
	"github.com/guttosm/stockseries/internal/market"
	"github.com/guttosm/stockseries/internal/service"
)

var errDraining = errors.New("shutting down")

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the market data provider using InitProvider().
//   - Wires fetcher -> stock service -> HTTP handler.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function that marks the service as not ready and
//     releases idle provider connections. Call it before server.Shutdown so
//     /readyz reports 503 while in-flight requests drain.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// indirection for unit testing
	provider, client, err := providerOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize market provider: %w", err)
	}

	fetcher := market.NewFetcher(provider)
	svc := service.NewStockService(fetcher)
	handler := api.NewHandler(svc)

	router := api.NewRouter(handler, api.RouterOptions{
		AllowOrigins:   cfg.Server.AllowOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	})

	var draining atomic.Bool
	api.NewHealthHandler(func() error {
		if draining.Load() {
			return errDraining
		}
		return nil
	}).Register(router)

	logger.L().Info().
		Str("provider", fetcher.ProviderName()).
		Dur("request_timeout", cfg.Server.RequestTimeout).
		Strs("cors_origins", cfg.Server.AllowOrigins).
		Msg("application initialized")

	cleanup := func() {
		draining.Store(true)
		if client != nil {
			client.CloseIdleConnections()
		}
	}

	return router, cleanup, nil
}
