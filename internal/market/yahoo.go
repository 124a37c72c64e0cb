package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultYahooBaseURL   = "https://query1.finance.yahoo.com"
	DefaultYahooUserAgent = "Mozilla/5.0 (compatible; stockseries/1.0)"
)

// YahooConfig configures the Yahoo Finance chart provider.
type YahooConfig struct {
	BaseURL     string
	UserAgent   string
	Concurrency int // max symbols fetched at once; <1 means one at a time
}

// YahooProvider reads daily bars from the Yahoo Finance v8 chart endpoint.
// Yahoo has no multi-symbol history endpoint, so History issues one chart
// request per symbol and fails as a whole if any of them fails.
type YahooProvider struct {
	cfg    YahooConfig
	client *http.Client
}

var _ Provider = (*YahooProvider)(nil)

func NewYahooProvider(cfg YahooConfig, client *http.Client) *YahooProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultYahooBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultYahooUserAgent
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &YahooProvider{cfg: cfg, client: client}
}

func (y *YahooProvider) Name() string { return "yahoo" }

// History fetches bars in [start, end). Results keep the order of the
// de-duplicated symbols.
func (y *YahooProvider) History(ctx context.Context, symbols []string, start, end time.Time) ([]History, error) {
	symbols = uniqueSymbols(symbols)
	out := make([]History, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(y.cfg.Concurrency)
	for i, symbol := range symbols {
		g.Go(func() error {
			bars, err := y.chart(gctx, symbol, start, end)
			if err != nil {
				return fmt.Errorf("%s: %w", symbol, err)
			}
			out[i] = History{Symbol: symbol, Bars: bars}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// yahooChart mirrors the subset of the chart response we read. Quote values
// are pointers because Yahoo reports missing sessions as JSON null.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol    string `json:"symbol"`
				GMTOffset int64  `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (y *YahooProvider) chart(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error) {
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(start.Unix(), 10))
	q.Set("period2", strconv.FormatInt(end.Unix(), 10))
	q.Set("interval", "1d")
	q.Set("events", "history")
	q.Set("includePrePost", "false")
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", y.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	res, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}

	var chart yahooChart
	decodeErr := json.Unmarshal(body, &chart)
	// Yahoo reports unknown symbols as a 404 that still carries a chart.error.
	if decodeErr == nil && chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo: %s", chart.Chart.Error.Description)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d", res.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("yahoo decode: %w", decodeErr)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: empty chart result")
	}

	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 {
		return nil, nil
	}
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: chart has %d timestamps but no quotes", len(result.Timestamp))
	}
	quote := result.Indicators.Quote[0]

	bars := make([]Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		bars = append(bars, Bar{
			// Daily bars are stamped at the session open; shifting by the
			// exchange offset keeps them on the exchange's calendar day.
			Date:   time.Unix(ts+result.Meta.GMTOffset, 0).UTC(),
			Open:   at(quote.Open, i),
			High:   at(quote.High, i),
			Low:    at(quote.Low, i),
			Close:  at(quote.Close, i),
			Volume: at(quote.Volume, i),
		})
	}
	return bars, nil
}

func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}
