package models

import (
	"sort"
	"time"
)

// PriceTable is a single price column laid out as dates x symbols.
//
// Invariants (guaranteed by TableBuilder and FromSeries):
//   - Dates are truncated to midnight UTC, strictly ascending, no duplicates.
//   - Symbols holds one entry per column, in request order, without duplicates.
//   - len(Values) == len(Dates) and every row has len(Symbols) cells.
//   - A nil cell means the provider had no value for that (date, symbol).
type PriceTable struct {
	Column  Column
	Symbols []string
	Dates   []time.Time
	Values  [][]*float64
}

// Empty reports whether the table has no rows.
func (t PriceTable) Empty() bool {
	return len(t.Dates) == 0
}

// Point is one observation of a flat single-symbol series.
type Point struct {
	Date  time.Time
	Value *float64
}

// FromSeries turns a flat series into a one-column table keyed by symbol,
// so that callers never need to special-case a single requested symbol.
func FromSeries(column Column, symbol string, series []Point) PriceTable {
	b := NewTableBuilder(column, []string{symbol})
	for _, p := range series {
		b.Set(symbol, p.Date, p.Value)
	}
	return b.Build()
}

// TableBuilder accumulates cells and produces a PriceTable.
// It is not safe for concurrent use.
type TableBuilder struct {
	column  Column
	symbols []string
	index   map[string]int
	cells   map[time.Time][]*float64
}

// NewTableBuilder starts a table whose columns follow symbols. Repeated
// symbols collapse into the first occurrence.
func NewTableBuilder(column Column, symbols []string) *TableBuilder {
	b := &TableBuilder{
		column: column,
		index:  make(map[string]int, len(symbols)),
		cells:  make(map[time.Time][]*float64),
	}
	for _, s := range symbols {
		b.addSymbol(s)
	}
	return b
}

func (b *TableBuilder) addSymbol(symbol string) int {
	if i, ok := b.index[symbol]; ok {
		return i
	}
	b.index[symbol] = len(b.symbols)
	b.symbols = append(b.symbols, symbol)
	return len(b.symbols) - 1
}

// Set records a value for (symbol, date). The date is truncated to its UTC
// calendar day; a later Set for the same cell overwrites an earlier one unless
// the new value is nil. Unknown symbols are appended as new columns.
func (b *TableBuilder) Set(symbol string, date time.Time, value *float64) {
	col := b.addSymbol(symbol)
	day := truncateDay(date)
	row := b.cells[day]
	if len(row) < len(b.symbols) {
		grown := make([]*float64, len(b.symbols))
		copy(grown, row)
		row = grown
	}
	if value != nil || row[col] == nil {
		row[col] = value
	}
	b.cells[day] = row
}

// Build returns the table with dates ascending and every row padded to the
// full set of symbols.
func (b *TableBuilder) Build() PriceTable {
	dates := make([]time.Time, 0, len(b.cells))
	for d := range b.cells {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	values := make([][]*float64, len(dates))
	for i, d := range dates {
		row := make([]*float64, len(b.symbols))
		copy(row, b.cells[d])
		values[i] = row
	}

	symbols := make([]string, len(b.symbols))
	copy(symbols, b.symbols)

	return PriceTable{
		Column:  b.column,
		Symbols: symbols,
		Dates:   dates,
		Values:  values,
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
