package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"agenthub-backend/internal/shared/telemetry"
)

// AgentIDKey is the context key handlers use to tag a request with the agent that served it.
const AgentIDKey = "agentId"

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		reqID := RequestIDFromContext(c)

		agentID, _ := c.Get(AgentIDKey)
		fileName, _ := c.Get("fileName")

		telemetry.Info("request.complete", map[string]any{
			"request_id":  reqID,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"agent_id":    agentID,
			"file_name":   fileName,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
