// Package market talks to external market data providers and turns their
// answers into models.PriceTable values.
package market

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/stockseries/internal/domain/models"
)

// Provider is an external source of daily price history.
//
// History is called once per request with every symbol. It is atomic from the
// caller's point of view: if any symbol fails the whole call fails and no
// partial data is returned. end is forwarded with the provider's own
// inclusivity convention.
type Provider interface {
	Name() string
	History(ctx context.Context, symbols []string, start, end time.Time) ([]History, error)
}

// History is the daily bar series of one symbol, in any order.
type History struct {
	Symbol string
	Bars   []Bar
}

// Bar is one trading day. Nil fields are values the provider did not report.
type Bar struct {
	Date   time.Time
	Open   *float64
	High   *float64
	Low    *float64
	Close  *float64
	Volume *float64
}

// Field returns the bar's value for the given column.
func (b Bar) Field(c models.Column) *float64 {
	switch c {
	case models.ColumnOpen:
		return b.Open
	case models.ColumnHigh:
		return b.High
	case models.ColumnLow:
		return b.Low
	case models.ColumnClose:
		return b.Close
	case models.ColumnVolume:
		return b.Volume
	default:
		panic(fmt.Sprintf("market: unhandled column %v", c))
	}
}
