package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/JNHNG0205/ai-content-workflow/internal/apperr"
	"github.com/JNHNG0205/ai-content-workflow/internal/models"
	"github.com/gin-gonic/gin"
)

// errorResponse is the body of every failed request
type errorResponse struct {
	Error   string                   `json:"error"`
	Code    string                   `json:"code"`
	Details []models.ValidationError `json:"details,omitempty"`
}

// writeError maps a service error onto its HTTP status and stable code.
// Internal errors never expose their cause to the client.
func writeError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal("Internal server error", err)
	}

	msg := appErr.Message
	if appErr.Kind == apperr.KindInternal {
		msg = "Internal server error"
		_ = c.Error(err)
	}

	c.JSON(appErr.Kind.HTTPStatus(), errorResponse{
		Error:   msg,
		Code:    appErr.Kind.Code(),
		Details: appErr.Details,
	})
}

// bindJSON decodes the request body, answering 400 on malformed input
func bindJSON(c *gin.Context, dst interface{}) bool {
	return decodeBody(c, dst, false)
}

// bindOptionalJSON is bindJSON for endpoints whose body may be absent.
// An empty body leaves dst untouched whatever the declared length.
func bindOptionalJSON(c *gin.Context, dst interface{}) bool {
	return decodeBody(c, dst, true)
}

func decodeBody(c *gin.Context, dst interface{}, optional bool) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	c.JSON(http.StatusBadRequest, errorResponse{
		Error: "Invalid request body",
		Code:  apperr.KindValidationFailed.Code(),
	})
	return false
}
