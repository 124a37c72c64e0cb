package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func day(s string) time.Time {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTableBuilder_UnionOfDatesAscending(t *testing.T) {
	b := NewTableBuilder(ColumnClose, []string{"MSFT", "AAPL"})
	b.Set("AAPL", day("2024-01-03"), f(3))
	b.Set("AAPL", day("2024-01-02"), f(2))
	b.Set("MSFT", day("2024-01-04"), f(40))
	b.Set("MSFT", day("2024-01-02"), f(20))

	tbl := b.Build()

	assert.Equal(t, ColumnClose, tbl.Column)
	assert.Equal(t, []string{"MSFT", "AAPL"}, tbl.Symbols)
	require.Len(t, tbl.Dates, 3)
	assert.Equal(t, day("2024-01-02"), tbl.Dates[0])
	assert.Equal(t, day("2024-01-03"), tbl.Dates[1])
	assert.Equal(t, day("2024-01-04"), tbl.Dates[2])

	require.Len(t, tbl.Values, 3)
	for _, row := range tbl.Values {
		assert.Len(t, row, 2)
	}
	assert.Equal(t, 20.0, *tbl.Values[0][0])
	assert.Equal(t, 2.0, *tbl.Values[0][1])
	assert.Nil(t, tbl.Values[1][0], "MSFT has no value on 01-03")
	assert.Equal(t, 3.0, *tbl.Values[1][1])
	assert.Equal(t, 40.0, *tbl.Values[2][0])
	assert.Nil(t, tbl.Values[2][1], "AAPL has no value on 01-04")
}

func TestTableBuilder_DuplicateSymbolsCollapse(t *testing.T) {
	b := NewTableBuilder(ColumnOpen, []string{"AAPL", "AAPL", "MSFT"})
	b.Set("AAPL", day("2024-01-02"), f(1))
	tbl := b.Build()
	assert.Equal(t, []string{"AAPL", "MSFT"}, tbl.Symbols)
	require.Len(t, tbl.Values, 1)
	assert.Len(t, tbl.Values[0], 2)
}

func TestTableBuilder_IntradayTimestampsShareADay(t *testing.T) {
	b := NewTableBuilder(ColumnOpen, []string{"AAPL"})
	b.Set("AAPL", time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC), f(1))
	b.Set("AAPL", time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC), nil)
	tbl := b.Build()
	require.Len(t, tbl.Dates, 1)
	require.NotNil(t, tbl.Values[0][0], "nil must not overwrite a known value")
	assert.Equal(t, 1.0, *tbl.Values[0][0])
}

func TestTableBuilder_LateSymbolsPadEarlierRows(t *testing.T) {
	b := NewTableBuilder(ColumnHigh, []string{"AAPL"})
	b.Set("AAPL", day("2024-01-05"), nil)
	b.Set("TSLA", day("2024-01-02"), f(9))
	tbl := b.Build()
	assert.Equal(t, []string{"AAPL", "TSLA"}, tbl.Symbols)
	require.Len(t, tbl.Dates, 2)
	assert.Equal(t, []*float64{nil, nil}, tbl.Values[1])
}

func TestFromSeries(t *testing.T) {
	tbl := FromSeries(ColumnVolume, "AAPL", []Point{
		{Date: day("2024-01-03"), Value: f(300)},
		{Date: day("2024-01-02"), Value: nil},
	})
	assert.Equal(t, []string{"AAPL"}, tbl.Symbols)
	require.Len(t, tbl.Dates, 2)
	assert.Nil(t, tbl.Values[0][0])
	assert.Equal(t, 300.0, *tbl.Values[1][0])
	assert.False(t, tbl.Empty())
	assert.True(t, FromSeries(ColumnVolume, "AAPL", nil).Empty())
}

func TestErrors(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	perr := &ProviderError{Provider: "yahoo", Err: cause}
	assert.Equal(t, cause.Error(), perr.Error())
	assert.True(t, errors.Is(perr, cause))
	assert.Contains(t, (&ProviderError{Provider: "yahoo"}).Error(), "yahoo")

	verr := NewValidationError("%s: is required", "symbol_list")
	assert.Equal(t, "symbol_list: is required", verr.Error())

	terr := &TransformError{Reason: "no symbols"}
	assert.Equal(t, "reshape failed: no symbols", terr.Error())
}
