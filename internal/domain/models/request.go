package models

import "time"

// DateLayout is the calendar date format used on the wire (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// TimeFrame is the requested date range. End is passed to the provider as-is;
// whether it is inclusive is the provider's convention. Start is not required
// to precede End.
type TimeFrame struct {
	Start time.Time
	End   time.Time
}

// StockRequest is a validated request for one price column over a date range.
// It is built once per HTTP request and never mutated afterwards.
type StockRequest struct {
	TimeFrame TimeFrame
	Symbols   []string
	Column    Column
}
