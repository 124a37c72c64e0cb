package service

import (
	"context"

	"github.com/guttosm/stockseries/internal/domain/models"
)

// TableFetcher returns the requested price column as a table.
// *market.Fetcher satisfies it.
type TableFetcher interface {
	Fetch(ctx context.Context, req models.StockRequest) (models.PriceTable, error)
}

// StockService defines the fetch-and-reshape flow behind POST /stock.
type StockService interface {
	GetPrices(ctx context.Context, req models.StockRequest) ([]models.DayRecord, error)
}

type stockService struct {
	fetcher TableFetcher
}

func NewStockService(fetcher TableFetcher) StockService {
	return &stockService{fetcher: fetcher}
}

// GetPrices runs one fetch then one reshape. The first failure is returned
// unchanged; there is no retry and no partial result.
func (s *stockService) GetPrices(ctx context.Context, req models.StockRequest) ([]models.DayRecord, error) {
	table, err := s.fetcher.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	return Reshape(table)
}
