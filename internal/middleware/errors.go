package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockseries/internal/domain/dto"
	"github.com/guttosm/stockseries/internal/domain/models"
)

// StatusFor maps a domain error to its HTTP status.
//
// Validation, provider and reshape failures all answer 400: callers of
// POST /stock rely on that contract, even though 502/503 would describe a
// provider outage better. Anything else is a 500.
func StatusFor(err error) int {
	var (
		verr *models.ValidationError
		perr *models.ProviderError
		terr *models.TransformError
	)
	switch {
	case errors.As(err, &verr), errors.As(err, &perr), errors.As(err, &terr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithError records err on the gin context (so RequestLogger can log
// it) and writes the standard error body.
//
// Example:
//
//	middleware.AbortWithError(c, http.StatusBadRequest, "", err)
//	// HTTP/1.1 400 Bad Request
//	// {"detail": "yahoo: No data found, symbol may be delisted"}
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}

// ErrorHandler writes a response for errors that handlers attached with
// c.Error but did not answer themselves.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if c.Writer.Written() || len(c.Errors) == 0 {
		return
	}
	err := c.Errors.Last().Err
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		c.AbortWithStatusJSON(status, dto.NewErrorResponse("internal server error", nil))
		return
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse("", err))
}
