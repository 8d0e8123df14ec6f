package education

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"agenthub-backend/internal/shared/metrics"
	"agenthub-backend/internal/shared/server/middleware"
	"agenthub-backend/internal/shared/server/respond"
	"agenthub-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the education service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches education routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/search_resources", h.searchResources)
	rg.POST("/answer_question", h.answerQuestion)
}

func (h *Handler) searchResources(c *gin.Context) {
	c.Set(middleware.AgentIDKey, "education")

	var req struct {
		Topic string `json:"topic"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Topic == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Topic is required", nil)
		return
	}

	metrics.IncInvocationStarted("education")
	start := time.Now()

	resources, err := h.Svc.SearchResources(c.Request.Context(), req.Topic)
	if err != nil {
		metrics.IncInvocationFailed()
		telemetry.Error("education.search_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "resource search failed", nil)
		return
	}

	metrics.IncInvocationCompleted()
	metrics.ObserveInvocationDurationMs(float64(time.Since(start).Milliseconds()))
	respond.OK(c, resources)
}

func (h *Handler) answerQuestion(c *gin.Context) {
	c.Set(middleware.AgentIDKey, "education")

	var req struct {
		Topic    string `json:"topic"`
		Question string `json:"question"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Topic == "" || req.Question == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Topic and question are required", nil)
		return
	}

	metrics.IncInvocationStarted("education")
	start := time.Now()

	answer, err := h.Svc.AnswerQuestion(c.Request.Context(), req.Topic, req.Question)
	if err != nil {
		metrics.IncInvocationFailed()
		telemetry.Error("education.answer_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "question answering failed", nil)
		return
	}

	metrics.IncInvocationCompleted()
	metrics.ObserveInvocationDurationMs(float64(time.Since(start).Milliseconds()))
	respond.OK(c, gin.H{"answer": answer})
}
