package models

// SymbolValue is one symbol's value on a given day. A nil Value is encoded as
// JSON null and marks a cell the provider had no data for.
type SymbolValue struct {
	Symbol string   `json:"symbol" example:"AAPL"`
	Value  *float64 `json:"value" example:"187.15"`
}

// DayRecord holds every symbol's value for one date.
//
// swagger:model DayRecord
type DayRecord struct {
	Time string        `json:"time" example:"2024-01-02"`
	Data []SymbolValue `json:"data"`
}
