package dto

import "github.com/guttosm/stockseries/internal/domain/models"

// StatusOK is the only status value the envelope ever carries; failures use
// ErrorResponse instead.
const StatusOK = 1

// StockResponse represents the JSON structure returned by POST /stock.
type StockResponse struct {
	Status int                `json:"status" example:"1"`
	Result []models.DayRecord `json:"result"`
}

// NewStockResponse wraps records in the success envelope. A nil slice is
// encoded as an empty array.
func NewStockResponse(records []models.DayRecord) StockResponse {
	if records == nil {
		records = []models.DayRecord{}
	}
	return StockResponse{Status: StatusOK, Result: records}
}
