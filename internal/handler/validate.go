package handler

import (
	"net/http"

	"postalgeo-api/internal/diagnostic"
	"postalgeo-api/internal/validation"

	"github.com/gin-gonic/gin"
)

// ValidationHandler runs the data-quality pass on demand
type ValidationHandler struct {
	service ValidationService
}

// ValidationService interface for dependency injection
type ValidationService interface {
	Validate(reporter diagnostic.Reporter) validation.Result
}

// ValidationResponse is the body of a validation run.
type ValidationResponse struct {
	validation.Result
	Findings []diagnostic.Diagnostic `json:"findings"`
}

// NewValidationHandler creates a new validation handler
func NewValidationHandler(svc ValidationService) *ValidationHandler {
	return &ValidationHandler{service: svc}
}

// Validate handles GET /validate requests
//
//	@Summary		Validate loaded postal codes
//	@Description	Advisory checks of code length, city, province and coordinate ranges. Nothing is modified.
//	@Tags			postal-codes
//	@Produce		json
//	@Success		200	{object}	ValidationResponse
//	@Router			/validate [get]
func (h *ValidationHandler) Validate(c *gin.Context) {
	collector := &diagnostic.Collector{}
	res := h.service.Validate(collector)

	findings := collector.Diagnostics()
	c.JSON(http.StatusOK, ValidationResponse{Result: res, Findings: findings})
}
