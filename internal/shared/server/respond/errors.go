package respond

import (
	"github.com/gin-gonic/gin"

	"applywise-backend/internal/shared/telemetry"
)

// ErrorBody is the standardized error payload. Failures carry a single
// human-readable detail string alongside the HTTP status.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// Error sends a standardized error response and logs it.
func Error(c *gin.Context, status int, detail string) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"detail":     detail,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorBody{Detail: detail})
}
