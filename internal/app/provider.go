package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/guttosm/stockseries/config"
	"github.com/guttosm/stockseries/internal/market"
)

// InitProvider builds the market data provider selected by cfg.Provider.Name.
//
// Behavior:
//   - "yahoo" (default): Yahoo chart API over a dedicated *http.Client.
//   - "financego": piquette/finance-go; it uses its own HTTP backend, so the
//     returned client is nil.
//   - The provider is wrapped in market.Instrumented for Prometheus metrics.
//
// Returns:
//   - market.Provider: ready to be handed to market.NewFetcher.
//   - *http.Client: the client owned by the provider, if any, so the caller
//     can release idle connections on shutdown.
//   - error: unknown provider name.
func InitProvider(cfg config.Config) (market.Provider, *http.Client, error) {
	var (
		p      market.Provider
		client *http.Client
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Provider.Name)) {
	case "", config.ProviderYahoo:
		client = market.NewHTTPClient(cfg.Provider.Timeout)
		p = market.NewYahooProvider(market.YahooConfig{
			BaseURL:     cfg.Provider.YahooBaseURL,
			UserAgent:   cfg.Provider.UserAgent,
			Concurrency: cfg.Provider.Concurrency,
		}, client)
	case config.ProviderFinanceGo:
		p = market.NewFinanceGoProvider()
	default:
		return nil, nil, fmt.Errorf("unknown market provider %q", cfg.Provider.Name)
	}
	return market.NewInstrumented(p), client, nil
}

// providerOpener is an indirection used by InitializeApp; overridden in tests
// to avoid real network calls.
var providerOpener = InitProvider
