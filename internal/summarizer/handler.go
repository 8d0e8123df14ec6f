package summarizer

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"agenthub-backend/internal/shared/metrics"
	"agenthub-backend/internal/shared/server/middleware"
	"agenthub-backend/internal/shared/server/respond"
	"agenthub-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the summarizer service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches summarizer routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/summarize", h.summarize)
}

func (h *Handler) summarize(c *gin.Context) {
	c.Set(middleware.AgentIDKey, "summarizer")

	var req struct {
		FileID string `json:"file_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.FileID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Document not found or not processed", nil)
		return
	}

	metrics.IncInvocationStarted("summarizer")
	start := time.Now()

	summary, err := h.Svc.Summarize(c.Request.Context(), req.FileID)
	if err != nil {
		metrics.IncInvocationFailed()
		if errors.Is(err, ErrDocumentNotFound) {
			respond.Error(c, http.StatusBadRequest, "not_processed", "Document not found or not processed", nil)
			return
		}
		telemetry.Error("summarizer.summarize_failed", map[string]any{"file_id": req.FileID, "error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "summarization failed", nil)
		return
	}

	metrics.IncInvocationCompleted()
	metrics.ObserveInvocationDurationMs(float64(time.Since(start).Milliseconds()))
	respond.OK(c, gin.H{"summary": summary})
}
