package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"agenthub-backend/internal/shared/metrics"
	"agenthub-backend/internal/shared/server/respond"
	"agenthub-backend/internal/shared/telemetry"
)

// Recovery recovers from panics and returns a standardized error response.
// A panic inside an agent handler counts as a failed invocation.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				agentID := c.GetString(AgentIDKey)
				if agentID != "" {
					metrics.IncInvocationFailed()
				}
				telemetry.Error("panic", map[string]any{
					"request_id": RequestIDFromContext(c),
					"agent_id":   agentID,
					"error":      rec,
					"stack":      string(debug.Stack()),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
				})
				respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
				c.Abort()
			}
		}()
		c.Next()
	}
}
