package market

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/stockseries/internal/domain/models"
	"github.com/guttosm/stockseries/internal/logger"
)

// Fetcher calls a Provider and narrows its answer down to one price column.
type Fetcher struct {
	provider Provider
}

func NewFetcher(p Provider) *Fetcher {
	return &Fetcher{provider: p}
}

// ProviderName returns the name of the wrapped provider.
func (f *Fetcher) ProviderName() string {
	return f.provider.Name()
}

// Fetch requests every symbol in a single provider call and returns the
// requested column as a table. Every failure is returned as a
// *models.ProviderError; nothing is retried.
func (f *Fetcher) Fetch(ctx context.Context, req models.StockRequest) (models.PriceTable, error) {
	if len(req.Symbols) == 0 {
		return models.PriceTable{}, f.fail(errors.New("no symbols requested"))
	}
	if !req.Column.Valid() {
		return models.PriceTable{}, f.fail(&models.ErrInvalidColumn{Value: req.Column.String()})
	}

	// Columns keep the caller's spelling; the provider sees upper-cased tickers.
	labels := uniqueSymbols(req.Symbols)
	query := providerSymbols(labels)

	start := time.Now()
	histories, err := f.provider.History(ctx, query, req.TimeFrame.Start, req.TimeFrame.End)
	if err != nil {
		logger.L().Warn().
			Str("provider", f.provider.Name()).
			Strs("symbols", query).
			Dur("elapsed", time.Since(start)).
			Err(err).
			Msg("provider fetch failed")
		return models.PriceTable{}, f.fail(err)
	}
	if len(histories) == 0 {
		return models.PriceTable{}, f.fail(fmt.Errorf("no data returned for %s", strings.Join(req.Symbols, ", ")))
	}

	var table models.PriceTable
	if len(labels) == 1 && len(histories) == 1 {
		table = models.FromSeries(req.Column, labels[0], series(histories[0], req.Column))
	} else {
		table = buildTable(req.Column, labels, histories)
	}

	if table.Empty() {
		return models.PriceTable{}, f.fail(fmt.Errorf(
			"no price data found for %s between %s and %s",
			strings.Join(req.Symbols, ", "),
			req.TimeFrame.Start.Format(models.DateLayout),
			req.TimeFrame.End.Format(models.DateLayout),
		))
	}

	logger.L().Debug().
		Str("provider", f.provider.Name()).
		Int("symbols", len(table.Symbols)).
		Int("rows", len(table.Dates)).
		Str("column", req.Column.String()).
		Dur("elapsed", time.Since(start)).
		Msg("provider fetch done")

	return table, nil
}

func (f *Fetcher) fail(err error) error {
	var perr *models.ProviderError
	if errors.As(err, &perr) {
		return perr
	}
	return &models.ProviderError{Provider: f.provider.Name(), Err: err}
}

func series(h History, c models.Column) []models.Point {
	out := make([]models.Point, 0, len(h.Bars))
	for _, b := range h.Bars {
		out = append(out, models.Point{Date: b.Date, Value: b.Field(c)})
	}
	return out
}

// buildTable lays the histories out under the requested labels, in request
// order. Histories are matched case-insensitively; a label without bars still
// gets a column of nulls and histories nobody asked for are dropped.
func buildTable(column models.Column, labels []string, histories []History) models.PriceTable {
	byTicker := make(map[string]History, len(histories))
	for _, h := range histories {
		byTicker[normalizeSymbol(h.Symbol)] = h
	}

	b := models.NewTableBuilder(column, labels)
	for _, label := range labels {
		h, ok := byTicker[normalizeSymbol(label)]
		if !ok {
			continue
		}
		for _, bar := range h.Bars {
			b.Set(label, bar.Date, bar.Field(column))
		}
	}
	return b.Build()
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// providerSymbols upper-cases labels and drops the duplicates that creates.
func providerSymbols(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		out = append(out, normalizeSymbol(l))
	}
	return uniqueSymbols(out)
}

func uniqueSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
