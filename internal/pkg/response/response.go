package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	searchtypes "github.com/docbridge-io/docbridge/internal/search/types"
	"github.com/docbridge-io/docbridge/internal/upstream"
)

// The legacy surface returns flat payloads, so success responses pass the
// payload through untouched and errors use a single {"error": ...} shape.

// OK writes a flat 200 response.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Error writes an error payload with the given status.
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{"error": message})
}

// BadRequest writes a 400 error.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound writes a 404 error.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// BadGateway writes a 502 error.
func BadGateway(c *gin.Context, message string) {
	Error(c, http.StatusBadGateway, message)
}

// InternalError writes a 500 error.
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// HandleError maps the adapter's error taxonomy onto HTTP statuses:
// validation and unknown-strategy errors are the caller's fault (400),
// a missing upstream document passes through as 404, and everything that
// went wrong while talking to the upstream repository is a gateway
// failure (502).
func HandleError(c *gin.Context, err error) {
	var validationErr *searchtypes.ValidationError
	var authErr *upstream.AuthError
	var upstreamErr *upstream.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		BadRequest(c, validationErr.Error())
	case errors.Is(err, searchtypes.ErrUnknownStrategy), errors.Is(err, searchtypes.ErrNestedBatch):
		BadRequest(c, err.Error())
	case errors.As(err, &authErr):
		BadGateway(c, authErr.Error())
	case errors.As(err, &upstreamErr):
		if upstreamErr.Status == http.StatusNotFound {
			NotFound(c, upstreamErr.Error())
			return
		}
		BadGateway(c, upstreamErr.Error())
	default:
		InternalError(c, err.Error())
	}
}
