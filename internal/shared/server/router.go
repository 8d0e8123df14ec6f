package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agenthub-backend/internal/education"
	"agenthub-backend/internal/finance"
	"agenthub-backend/internal/healthcare"
	"agenthub-backend/internal/marketing"
	"agenthub-backend/internal/shared/config"
	"agenthub-backend/internal/shared/metrics"
	"agenthub-backend/internal/shared/server/middleware"
	"agenthub-backend/internal/summarizer"
	"agenthub-backend/internal/uploads"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config            config.Config
	FinanceHandler    *finance.Handler
	MarketingHandler  *marketing.Handler
	HealthcareHandler *healthcare.Handler
	EducationHandler  *education.Handler
	SummarizerHandler *summarizer.Handler
	UploadsHandler    *uploads.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(rateLimits()),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	deps.UploadsHandler.RegisterRoutes(api)
	deps.FinanceHandler.RegisterRoutes(api)
	deps.MarketingHandler.RegisterRoutes(api)
	deps.HealthcareHandler.RegisterRoutes(api)
	deps.EducationHandler.RegisterRoutes(api)
	deps.SummarizerHandler.RegisterRoutes(api)

	return r
}

// rateLimits keeps catalog reads cheap while document uploads and agent
// invocations share a tighter default bucket.
func rateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 5, Burst: 20},
			"LISTING": {Rate: 20, Burst: 60},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodGet {
				return "LISTING"
			}
			return "DEFAULT"
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":9000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
