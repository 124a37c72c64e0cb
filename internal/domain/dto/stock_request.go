package dto

import (
	"strings"
	"time"

	"github.com/guttosm/stockseries/internal/domain/models"
)

// TimeFrameRequest is the date range of a POST /stock body.
type TimeFrameRequest struct {
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02" example:"2024-01-01"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02" example:"2024-02-01"`
}

// StockRequest represents the JSON body accepted by POST /stock.
//
// Column is decoded straight into models.Column, so an unknown literal fails
// JSON decoding before the validator runs.
type StockRequest struct {
	TimeFrame  TimeFrameRequest `json:"timeframe"`
	SymbolList []string         `json:"symbol_list" binding:"required,min=1,dive,required" example:"AAPL,MSFT"`
	Column     models.Column    `json:"column" binding:"required" swaggertype:"string" enums:"Open,High,Low,Close,Volume" example:"Close"`
}

// ToModel converts a bound request into the domain request. Symbols are
// trimmed but keep their case, so responses echo the caller's spelling; blank
// symbols are rejected.
func (r StockRequest) ToModel() (models.StockRequest, error) {
	start, err := time.Parse(models.DateLayout, r.TimeFrame.StartDate)
	if err != nil {
		return models.StockRequest{}, models.NewValidationError("timeframe.start_date: %q is not a YYYY-MM-DD date", r.TimeFrame.StartDate)
	}
	end, err := time.Parse(models.DateLayout, r.TimeFrame.EndDate)
	if err != nil {
		return models.StockRequest{}, models.NewValidationError("timeframe.end_date: %q is not a YYYY-MM-DD date", r.TimeFrame.EndDate)
	}

	symbols := make([]string, 0, len(r.SymbolList))
	for i, s := range r.SymbolList {
		s = strings.TrimSpace(s)
		if s == "" {
			return models.StockRequest{}, models.NewValidationError("symbol_list[%d]: symbol must not be blank", i)
		}
		symbols = append(symbols, s)
	}
	if len(symbols) == 0 {
		return models.StockRequest{}, models.NewValidationError("symbol_list: must contain at least one symbol")
	}
	if !r.Column.Valid() {
		return models.StockRequest{}, models.NewValidationError("column: is required")
	}

	return models.StockRequest{
		TimeFrame: models.TimeFrame{Start: start, End: end},
		Symbols:   symbols,
		Column:    r.Column,
	}, nil
}
