//go:build integration
// +build integration

package market_test

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/stockseries/internal/domain/models"
	"github.com/guttosm/stockseries/internal/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hits the live Yahoo chart API. Run with: go test -tags=integration ./internal/market/...
func TestYahooProvider_Live(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	f := market.NewFetcher(market.NewYahooProvider(market.YahooConfig{}, market.NewHTTPClient(20*time.Second)))
	req := models.StockRequest{
		TimeFrame: models.TimeFrame{
			Start: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		Symbols: []string{"AAPL", "MSFT"},
		Column:  models.ColumnClose,
	}

	table, err := f.Fetch(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, table.Symbols)
	assert.Len(t, table.Dates, 6)
	for i := 1; i < len(table.Dates); i++ {
		assert.True(t, table.Dates[i-1].Before(table.Dates[i]))
	}

	_, err = f.Fetch(ctx, models.StockRequest{TimeFrame: req.TimeFrame, Symbols: []string{"NOT-A-REAL-TICKER-XYZ"}, Column: models.ColumnClose})
	var perr *models.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "yahoo", perr.Provider)
}
