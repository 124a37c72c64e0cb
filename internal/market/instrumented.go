package market

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stockseries",
		Subsystem: "provider",
		Name:      "fetch_duration_seconds",
		Help:      "Latency of market data provider calls.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
	}, []string{"provider", "outcome"})

	fetchSymbols = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stockseries",
		Subsystem: "provider",
		Name:      "symbols_requested_total",
		Help:      "Symbols requested from market data providers.",
	}, []string{"provider"})
)

// Instrumented wraps a Provider and records call latency and outcome.
type Instrumented struct {
	next Provider
}

var _ Provider = (*Instrumented)(nil)

func NewInstrumented(next Provider) *Instrumented {
	return &Instrumented{next: next}
}

func (i *Instrumented) Name() string { return i.next.Name() }

func (i *Instrumented) History(ctx context.Context, symbols []string, start, end time.Time) ([]History, error) {
	begin := time.Now()
	out, err := i.next.History(ctx, symbols, start, end)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	fetchDuration.WithLabelValues(i.next.Name(), outcome).Observe(time.Since(begin).Seconds())
	fetchSymbols.WithLabelValues(i.next.Name()).Add(float64(len(symbols)))
	return out, err
}
