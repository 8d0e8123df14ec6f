package healthcare

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"agenthub-backend/internal/shared/metrics"
	"agenthub-backend/internal/shared/server/middleware"
	"agenthub-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the healthcare service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches healthcare routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze_symptoms", h.analyzeSymptoms)
	rg.GET("/wellness_tip", h.wellnessTip)
	rg.POST("/answer_health_question", h.answerHealthQuestion)
}

// run executes one healthcare operation with the status/response envelope
// the clients expect.
func (h *Handler) run(c *gin.Context, op string, fn func() (string, error)) {
	c.Set(middleware.AgentIDKey, "healthcare")
	metrics.IncInvocationStarted("healthcare")
	start := time.Now()

	response, err := fn()
	if err != nil {
		metrics.IncInvocationFailed()
		telemetry.Error("healthcare.op_failed", map[string]any{"op": op, "error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "healthcare operation failed",
		})
		return
	}

	metrics.IncInvocationCompleted()
	metrics.ObserveInvocationDurationMs(float64(time.Since(start).Milliseconds()))
	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"response": response,
	})
}

func (h *Handler) analyzeSymptoms(c *gin.Context) {
	var req struct {
		Symptoms string `json:"symptoms"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Symptoms == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "symptoms is required"})
		return
	}
	h.run(c, "analyze_symptoms", func() (string, error) {
		return h.Svc.AnalyzeSymptoms(c.Request.Context(), req.Symptoms)
	})
}

func (h *Handler) wellnessTip(c *gin.Context) {
	h.run(c, "wellness_tip", func() (string, error) {
		return h.Svc.WellnessTip(c.Request.Context())
	})
}

func (h *Handler) answerHealthQuestion(c *gin.Context) {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "query is required"})
		return
	}
	h.run(c, "answer_health_question", func() (string, error) {
		return h.Svc.AnswerHealthQuestion(c.Request.Context(), req.Query)
	})
}
