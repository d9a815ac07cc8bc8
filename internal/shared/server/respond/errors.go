package respond

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"cvsec-backend/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object. Code is a stable, machine
// readable failure kind; Message is a human readable detail.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Unavailable sends a 503 with a Retry-After header and a retry hint in the
// error details.
func Unavailable(c *gin.Context, code, message string, retryAfterSeconds int) {
	if retryAfterSeconds <= 0 {
		retryAfterSeconds = 1
	}
	c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
	Error(c, 503, code, message, gin.H{"retry_after": retryAfterSeconds})
}
