package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-02 and 2024-01-03 14:30 UTC (09:30 New York).
const aaplChart = `{"chart":{"result":[{
	"meta":{"symbol":"AAPL","gmtoffset":-18000},
	"timestamp":[1704205800,1704292200],
	"indicators":{"quote":[{
		"open":[187.15,184.22],
		"high":[188.44,185.88],
		"low":[183.89,183.43],
		"close":[185.64,null],
		"volume":[82488700,58414500]
	}]}
}],"error":null}}`

const notFoundChart = `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

const emptyChart = `{"chart":{"result":[{"meta":{"symbol":"MSFT","gmtoffset":-18000},"indicators":{"quote":[{}]}}],"error":null}}`

func newYahooServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("missing User-Agent header")
		}
		if r.URL.Query().Get("interval") != "1d" {
			t.Errorf("expected interval=1d, got %q", r.URL.Query().Get("interval"))
		}
		w.Header().Set("Content-Type", "application/json")
		switch strings.TrimPrefix(r.URL.Path, "/v8/finance/chart/") {
		case "AAPL":
			_, _ = w.Write([]byte(aaplChart))
		case "MSFT":
			_, _ = w.Write([]byte(emptyChart))
		case "BROKEN":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`<html>bad gateway</html>`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(notFoundChart))
		}
	}))
}

func TestYahooProvider_History(t *testing.T) {
	srv := newYahooServer(t, nil)
	defer srv.Close()

	p := NewYahooProvider(YahooConfig{BaseURL: srv.URL + "/", Concurrency: 2}, srv.Client())
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)

	out, err := p.History(context.Background(), []string{"AAPL", "MSFT", "AAPL"}, start, end)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "AAPL", out[0].Symbol)
	require.Len(t, out[0].Bars, 2)
	first := out[0].Bars[0]
	assert.Equal(t, time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC), first.Date)
	assert.Equal(t, 187.15, *first.Open)
	assert.Equal(t, 82488700.0, *first.Volume)
	assert.Nil(t, out[0].Bars[1].Close, "null close stays missing")

	assert.Equal(t, "MSFT", out[1].Symbol)
	assert.Empty(t, out[1].Bars)
}

func TestYahooProvider_Errors(t *testing.T) {
	srv := newYahooServer(t, nil)
	defer srv.Close()

	p := NewYahooProvider(YahooConfig{BaseURL: srv.URL}, srv.Client())
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		symbols []string
		want    string
	}{
		{name: "unknown symbol", symbols: []string{"AAPL", "NOPE"}, want: "NOPE: yahoo: No data found, symbol may be delisted"},
		{name: "upstream failure", symbols: []string{"BROKEN"}, want: "BROKEN: yahoo: status 502"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := p.History(context.Background(), tc.symbols, day, day.AddDate(0, 0, 1))
			require.Error(t, err)
			assert.Nil(t, out, "no partial results")
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestYahooProvider_Unreachable(t *testing.T) {
	srv := newYahooServer(t, nil)
	base := srv.URL
	srv.Close()

	p := NewYahooProvider(YahooConfig{BaseURL: base}, NewHTTPClient(time.Second))
	_, err := p.History(context.Background(), []string{"AAPL"}, time.Now().AddDate(0, 0, -3), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yahoo fetch")
}

func TestYahooProvider_ContextCanceled(t *testing.T) {
	var calls int32
	srv := newYahooServer(t, &calls)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewYahooProvider(YahooConfig{BaseURL: srv.URL}, srv.Client())
	_, err := p.History(ctx, []string{"AAPL"}, time.Now().AddDate(0, 0, -3), time.Now())
	require.Error(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestNewYahooProvider_Defaults(t *testing.T) {
	p := NewYahooProvider(YahooConfig{}, nil)
	assert.Equal(t, DefaultYahooBaseURL, p.cfg.BaseURL)
	assert.Equal(t, DefaultYahooUserAgent, p.cfg.UserAgent)
	assert.Equal(t, 1, p.cfg.Concurrency)
	assert.Equal(t, "yahoo", p.Name())
}
