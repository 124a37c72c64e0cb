package market

import (
	"context"
	"fmt"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"
)

// FinanceGoProvider reads daily bars through github.com/piquette/finance-go.
// Symbols are fetched one after another.
type FinanceGoProvider struct{}

var _ Provider = (*FinanceGoProvider)(nil)

func NewFinanceGoProvider() *FinanceGoProvider {
	return &FinanceGoProvider{}
}

func (p *FinanceGoProvider) Name() string { return "financego" }

func (p *FinanceGoProvider) History(ctx context.Context, symbols []string, start, end time.Time) ([]History, error) {
	symbols = uniqueSymbols(symbols)
	out := make([]History, 0, len(symbols))
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bars, err := p.bars(ctx, symbol, start, end)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", symbol, err)
		}
		out = append(out, History{Symbol: symbol, Bars: bars})
	}
	return out, nil
}

func (p *FinanceGoProvider) bars(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error) {
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}
	params.Context = &ctx

	iter := chart.Get(params)
	var (
		bars   []Bar
		offset int64
	)
	for iter.Next() {
		if bars == nil {
			offset = int64(iter.Meta().Gmtoffset)
		}
		bars = append(bars, barFromChart(iter.Bar(), offset))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return bars, nil
}

// barFromChart converts a finance-go bar. gmtoffset is the exchange's offset
// from the chart meta; shifting by it keeps the bar on the exchange's
// calendar day, as the Yahoo adapter does. finance-go decodes JSON nulls as
// zero, so a bar whose prices are all zero is a missing session.
func barFromChart(b *finance.ChartBar, gmtoffset int64) Bar {
	out := Bar{Date: time.Unix(int64(b.Timestamp)+gmtoffset, 0).UTC()}
	if b.Open.IsZero() && b.High.IsZero() && b.Low.IsZero() && b.Close.IsZero() {
		return out
	}
	out.Open = decimalPtr(b.Open)
	out.High = decimalPtr(b.High)
	out.Low = decimalPtr(b.Low)
	out.Close = decimalPtr(b.Close)
	volume := float64(b.Volume)
	out.Volume = &volume
	return out
}

func decimalPtr(d decimal.Decimal) *float64 {
	v, _ := d.Float64()
	return &v
}
