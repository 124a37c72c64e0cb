package service

import (
	"fmt"

	"github.com/guttosm/stockseries/internal/domain/models"
)

// Reshape turns a price table into one DayRecord per date, most recent first.
//
// Every symbol column appears in every record, in table column order; cells
// the provider had no value for are kept with a nil Value. Nothing is
// aggregated or interpolated.
func Reshape(t models.PriceTable) ([]models.DayRecord, error) {
	if err := checkTable(t); err != nil {
		return nil, err
	}

	records := make([]models.DayRecord, 0, len(t.Dates))
	for i := len(t.Dates) - 1; i >= 0; i-- {
		row := t.Values[i]
		data := make([]models.SymbolValue, len(t.Symbols))
		for j, symbol := range t.Symbols {
			data[j] = models.SymbolValue{Symbol: symbol, Value: row[j]}
		}
		records = append(records, models.DayRecord{
			Time: t.Dates[i].Format(models.DateLayout),
			Data: data,
		})
	}
	return records, nil
}

func checkTable(t models.PriceTable) error {
	if len(t.Symbols) == 0 {
		return &models.TransformError{Reason: "table has no symbol columns"}
	}
	if len(t.Values) != len(t.Dates) {
		return &models.TransformError{Reason: fmt.Sprintf("table has %d dates but %d rows", len(t.Dates), len(t.Values))}
	}
	for i, row := range t.Values {
		if len(row) != len(t.Symbols) {
			return &models.TransformError{Reason: fmt.Sprintf(
				"row %s has %d cells, want %d", t.Dates[i].Format(models.DateLayout), len(row), len(t.Symbols))}
		}
		if i > 0 && !t.Dates[i-1].Before(t.Dates[i]) {
			return &models.TransformError{Reason: fmt.Sprintf(
				"dates out of order at %s", t.Dates[i].Format(models.DateLayout))}
		}
	}
	return nil
}
