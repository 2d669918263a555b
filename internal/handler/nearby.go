package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"postalgeo-api/internal/models"
	"postalgeo-api/internal/service"

	"github.com/gin-gonic/gin"
)

// NearbyHandler handles radius search requests
type NearbyHandler struct {
	service NearbyService
}

// NearbyService interface for dependency injection
type NearbyService interface {
	Nearby(code string, radiusKm float64) ([]models.Neighbor, error)
}

// NearbyResponse is the body of a successful radius search.
type NearbyResponse struct {
	Code     string            `json:"code"`
	RadiusKm float64           `json:"radius_km"`
	Count    int               `json:"count"`
	Results  []models.Neighbor `json:"results"`
}

// NewNearbyHandler creates a new nearby handler
func NewNearbyHandler(svc NearbyService) *NearbyHandler {
	return &NearbyHandler{service: svc}
}

// Nearby handles GET /nearby requests
//
//	@Summary		Postal codes within a radius
//	@Description	Every postal code within radius kilometers of the reference code, nearest first.
//	@Tags			postal-codes
//	@Produce		json
//	@Param			code	query		string	true	"reference postal code (e.g. E2E)"
//	@Param			radius	query		number	true	"search radius in kilometers"
//	@Success		200		{object}	NearbyResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/nearby [get]
func (h *NearbyHandler) Nearby(c *gin.Context) {
	rawCode, rawRadius := c.Query("code"), c.Query("radius")
	if rawCode == "" || rawRadius == "" {
		abortWithError(c, http.StatusBadRequest, "missing required query parameters 'code' and 'radius'")
		return
	}

	code, ok := parsePostalCode(rawCode)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "invalid postal code: format must be Letter-Digit-Letter (e.g. H1E)")
		return
	}

	radius, err := strconv.ParseFloat(rawRadius, 64)
	if err != nil || radius < 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		abortWithError(c, http.StatusBadRequest, "invalid radius: must be a non-negative number of kilometers")
		return
	}

	neighbors, err := h.service.Nearby(code, radius)
	if err != nil {
		if body, ok := notFound(err); ok {
			c.JSON(http.StatusNotFound, body)
			return
		}
		if errors.Is(err, service.ErrInvalidRadius) {
			abortWithError(c, http.StatusBadRequest, "invalid radius: must be a non-negative number of kilometers")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, NearbyResponse{
		Code:     code,
		RadiusKm: radius,
		Count:    len(neighbors),
		Results:  neighbors,
	})
}
