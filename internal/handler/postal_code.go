package handler

import (
	"errors"
	"regexp"
	"strings"

	"postalgeo-api/internal/service"

	"github.com/gin-gonic/gin"
)

// postalCodePattern is the Letter-Digit-Letter forward sortation area format.
var postalCodePattern = regexp.MustCompile(`^[A-Z][0-9][A-Z]$`)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}

// parsePostalCode trims raw and checks it against the postal code format.
func parsePostalCode(raw string) (string, bool) {
	code := strings.TrimSpace(raw)
	return code, postalCodePattern.MatchString(code)
}

// notFound builds the 404 body for a service not-found error.
func notFound(err error) (ErrorResponse, bool) {
	var nf *service.NotFoundError
	if !errors.As(err, &nf) {
		return ErrorResponse{}, false
	}
	return ErrorResponse{Error: "postal code not found", Missing: nf.Codes}, true
}

func abortWithError(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorResponse{Error: msg})
}
