package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockseries/internal/domain/dto"
	"github.com/guttosm/stockseries/internal/middleware"
	"github.com/guttosm/stockseries/internal/service"
)

// Handler provides the HTTP handler for the price-series endpoint.
//
// Responsibilities:
//   - Bind and validate the JSON body
//   - Call the stock service with the request context
//   - Translate domain errors into the {"detail": ...} envelope
type Handler struct {
	svc service.StockService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.StockService) *Handler {
	useJSONFieldNames()
	return &Handler{svc: svc}
}

// PostStock handles POST /stock requests.
//
// Responses:
//   - 200 OK: {"status": 1, "result": [...]} with dates most recent first.
//   - 400 Bad Request: invalid body, provider failure or unusable provider data.
//
// PostStock godoc
// @Summary      Daily price series
// @Description  Fetches one daily price column for a list of symbols and returns it grouped by date, most recent first. Missing values are null.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request  body      dto.StockRequest       true  "Symbols, date range and column"
// @Success      200      {object}  dto.StockResponse      "Success"
// @Failure      400      {object}  dto.ErrorResponse      "Bad Request"
// @Failure      500      {object}  dto.ErrorResponse      "Internal Error"
// @Router       /stock [post]
func (h *Handler) PostStock(c *gin.Context) {
	var body dto.StockRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "", bindError(err))
		return
	}

	req, err := body.ToModel()
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "", err)
		return
	}

	records, err := h.svc.GetPrices(c.Request.Context(), req)
	if err != nil {
		middleware.AbortWithError(c, middleware.StatusFor(err), "", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStockResponse(records))
}
