package handler

import (
	"errors"
	"net/http"

	"food-facility-api/internal/geo"
	"food-facility-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps service errors onto HTTP statuses. Client mistakes echo
// the error message; anything else is logged and hidden.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, geo.ErrInvalidArgument),
		errors.Is(err, geo.ErrInvalidCoordinate),
		errors.Is(err, service.ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
