package finance

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"agenthub-backend/internal/shared/metrics"
	"agenthub-backend/internal/shared/server/middleware"
	"agenthub-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the finance service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches finance routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze_tickers", h.analyzeTickers)
}

type analyzeTickersRequest struct {
	Tickers []string `json:"tickers"`
}

func (h *Handler) analyzeTickers(c *gin.Context) {
	c.Set(middleware.AgentIDKey, "finance")

	var req analyzeTickersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "tickers array is required", nil)
		return
	}
	if len(req.Tickers) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "tickers array is required", nil)
		return
	}

	metrics.IncInvocationStarted("finance")
	start := time.Now()

	batch := h.Svc.Analyze(c.Request.Context(), req.Tickers)

	metrics.IncInvocationCompleted()
	metrics.ObserveInvocationDurationMs(float64(time.Since(start).Milliseconds()))

	respond.OK(c, batch)
}
