package main

//
//  @title           stockseries API
//  @version         1.0
//  @description     Daily stock price series grouped by date.
//  @termsOfService  https://github.com/guttosm/stockseries
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/stockseries
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:2949
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        stock
//  @tag.description Daily price series for a list of symbols
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/stockseries/config"
	_ "github.com/guttosm/stockseries/docs" // swagger docs
	"github.com/guttosm/stockseries/internal/app"
	"github.com/guttosm/stockseries/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - addr (string): host:port to listen on.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, addr string) *http.Server {
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("addr", addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown waits for SIGINT or SIGTERM, then runs cleanup (which
// flips /readyz to 503) and drains in-flight requests.
//
// Parameters:
//   - ctx (context.Context): parent context for the shutdown timeout.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): marks the app as draining and releases provider connections.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")
	cleanup()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("server forced to shutdown")
		return
	}

	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the stockseries API.
//
// Flags:
//   - --host: Interface to bind. Defaults to SERVER_HOST.
//   - --port: Port for the API server. Defaults to SERVER_PORT.
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Reconfigure the JSON logger from the loaded settings
	logger.Configure(config.AppConfig.Log.Level, config.AppConfig.Log.Pretty, os.Stdout)

	// Parse CLI flags (override config defaults if provided)
	host := flag.String("host", config.AppConfig.Server.Host, "Interface to bind")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for the API server")
	flag.Parse()

	router, cleanup, err := app.InitializeApp()
	if err != nil {
		logger.L().Fatal().Err(err).Msg("app init error")
	}

	server := startServer(router, net.JoinHostPort(*host, *port))
	gracefulShutdown(ctx, server, cleanup)
}
