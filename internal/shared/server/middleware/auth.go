package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cvsec-backend/internal/shared/server/respond"
	"cvsec-backend/internal/shared/telemetry"
)

const apiKeyHeader = "X-API-Key"

// APIKeyAuth rejects requests whose X-API-Key header is missing or not in the
// allow-list. It inspects headers only, so an unauthenticated upload is
// refused before any of the multipart body is read.
func APIKeyAuth(validKeys []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(validKeys))
	for _, k := range validKeys {
		if trimmed := strings.TrimSpace(k); trimmed != "" {
			allowed[trimmed] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		key := strings.TrimSpace(c.GetHeader(apiKeyHeader))
		if key == "" {
			respond.Error(c, http.StatusUnauthorized, "INVALID_REQUEST", "Missing API key. Provide X-API-Key header.", nil)
			return
		}
		if _, ok := allowed[key]; !ok {
			telemetry.Warn("auth.invalid_api_key", map[string]any{
				"request_id":  RequestIDFromContext(c),
				"key_preview": keyPreview(key),
			})
			respond.Error(c, http.StatusUnauthorized, "INVALID_REQUEST", "Invalid API key", nil)
			return
		}
		c.Next()
	}
}

// keyPreview returns a short identifier for logging without exposing the key.
func keyPreview(key string) string {
	if len(key) < 8 {
		return "[INVALID]"
	}
	return key[:8]
}
