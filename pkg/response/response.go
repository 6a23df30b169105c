package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-session-profile/internal/domain/apperr"
)

// APIResponse is the JSON error body. Successful calls write a flat object
// with "success": true plus their own fields.
type APIResponse struct {
	Success   bool        `json:"success"`
	Error     string      `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

// Success writes {"success": true, ...fields}.
func Success(ctx *gin.Context, status int, fields gin.H) {
	if status == 0 {
		status = http.StatusOK
	}
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	ctx.JSON(status, body)
}

// Error writes an error body and aborts the chain.
func Error(ctx *gin.Context, status int, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, APIResponse{
		Success:   false,
		Error:     message,
		RequestID: ctx.GetString("request_id"),
		Details:   details,
	})
}

// FromError maps err to its HTTP status and writes a safe message.
func FromError(ctx *gin.Context, err error) {
	Error(ctx, StatusFor(err), apperr.Message(err), nil)
}

// StatusFor maps an error kind to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, apperr.ErrInvalidCredentials), errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrStaleSession):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
