package handler

import (
	"net/http"

	"postalgeo-api/internal/geo"

	"github.com/gin-gonic/gin"
)

// DistanceHandler handles distance requests
type DistanceHandler struct {
	service DistanceService
}

// DistanceService interface for dependency injection
type DistanceService interface {
	DistanceBetween(from, to string) (float64, error)
}

// DistanceResponse is the body of a successful distance request.
type DistanceResponse struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	DistanceKm float64 `json:"distance_km"`
	DistanceMi float64 `json:"distance_mi"`
}

// NewDistanceHandler creates a new distance handler
func NewDistanceHandler(svc DistanceService) *DistanceHandler {
	return &DistanceHandler{service: svc}
}

// Distance handles GET /distance requests
//
//	@Summary		Distance between two postal codes
//	@Description	Great-circle distance between the centroids of two postal codes.
//	@Tags			postal-codes
//	@Produce		json
//	@Param			from	query		string	true	"origin postal code (e.g. H1E)"
//	@Param			to		query		string	true	"destination postal code (e.g. J7C)"
//	@Success		200		{object}	DistanceResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/distance [get]
func (h *DistanceHandler) Distance(c *gin.Context) {
	rawFrom, rawTo := c.Query("from"), c.Query("to")
	if rawFrom == "" || rawTo == "" {
		abortWithError(c, http.StatusBadRequest, "missing required query parameters 'from' and 'to'")
		return
	}

	from, ok := parsePostalCode(rawFrom)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "invalid 'from' postal code: format must be Letter-Digit-Letter (e.g. H1E)")
		return
	}

	to, ok := parsePostalCode(rawTo)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "invalid 'to' postal code: format must be Letter-Digit-Letter (e.g. H1E)")
		return
	}

	km, err := h.service.DistanceBetween(from, to)
	if err != nil {
		if body, ok := notFound(err); ok {
			c.JSON(http.StatusNotFound, body)
			return
		}
		abortWithError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, DistanceResponse{
		From:       from,
		To:         to,
		DistanceKm: km,
		DistanceMi: geo.KmToMiles(km),
	})
}
