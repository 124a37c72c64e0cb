package dto

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/stockseries/internal/domain/models"
)

func TestStockRequest_ToModel(t *testing.T) {
	var req StockRequest
	body := `{"timeframe":{"start_date":"2024-01-01","end_date":"2024-02-01"},"symbol_list":[" aapl ","MSFT","aapl"],"column":"High"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	m, err := req.ToModel()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), m.TimeFrame.Start)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), m.TimeFrame.End)
	assert.Equal(t, []string{"aapl", "MSFT", "aapl"}, m.Symbols)
	assert.Equal(t, models.ColumnHigh, m.Column)
}

func TestStockRequest_ToModelRejects(t *testing.T) {
	good := TimeFrameRequest{StartDate: "2024-01-01", EndDate: "2024-02-01"}
	cases := []struct {
		name string
		req  StockRequest
		want string
	}{
		{
			name: "bad start",
			req:  StockRequest{TimeFrame: TimeFrameRequest{StartDate: "01/01/2024", EndDate: "2024-02-01"}, SymbolList: []string{"AAPL"}, Column: models.ColumnOpen},
			want: `timeframe.start_date: "01/01/2024" is not a YYYY-MM-DD date`,
		},
		{
			name: "bad end",
			req:  StockRequest{TimeFrame: TimeFrameRequest{StartDate: "2024-01-01", EndDate: "2024-02-31"}, SymbolList: []string{"AAPL"}, Column: models.ColumnOpen},
			want: `timeframe.end_date: "2024-02-31" is not a YYYY-MM-DD date`,
		},
		{
			name: "blank symbol",
			req:  StockRequest{TimeFrame: good, SymbolList: []string{"AAPL", "  "}, Column: models.ColumnOpen},
			want: "symbol_list[1]: symbol must not be blank",
		},
		{
			name: "empty list",
			req:  StockRequest{TimeFrame: good, Column: models.ColumnOpen},
			want: "symbol_list: must contain at least one symbol",
		},
		{
			name: "missing column",
			req:  StockRequest{TimeFrame: good, SymbolList: []string{"AAPL"}},
			want: "column: is required",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.req.ToModel()
			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestNewStockResponse(t *testing.T) {
	b, err := json.Marshal(NewStockResponse(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":1,"result":[]}`, string(b))
}
