package marketing

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"agenthub-backend/internal/shared/metrics"
	"agenthub-backend/internal/shared/server/middleware"
	"agenthub-backend/internal/shared/server/respond"
	"agenthub-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the marketing service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches marketing routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze_seo", h.analyzeSEO)
	rg.POST("/analyze_competitors", h.analyzeCompetitors)
	rg.POST("/recommend_products", h.recommendProducts)
	rg.POST("/create_content", h.createContent)
	rg.POST("/create_email_campaign", h.createEmailCampaign)
	rg.POST("/analyze_sentiment", h.analyzeSentiment)
	rg.POST("/predict_content_performance", h.predictContentPerformance)
	rg.POST("/monitor_prices", h.monitorPrices)
	rg.POST("/map_customer_journey", h.mapCustomerJourney)
}

// run wraps one marketing operation with metrics and the shared error path.
func (h *Handler) run(c *gin.Context, op string, fn func() (any, error)) {
	c.Set(middleware.AgentIDKey, "marketing")
	metrics.IncInvocationStarted("marketing")
	start := time.Now()

	out, err := fn()
	if err != nil {
		metrics.IncInvocationFailed()
		telemetry.Error("marketing.op_failed", map[string]any{"op": op, "error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "marketing operation failed", nil)
		return
	}

	metrics.IncInvocationCompleted()
	metrics.ObserveInvocationDurationMs(float64(time.Since(start).Milliseconds()))
	respond.OK(c, out)
}

func (h *Handler) analyzeSEO(c *gin.Context) {
	var req struct {
		URL      string   `json:"url"`
		Keywords []string `json:"keywords"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "url is required", nil)
		return
	}
	h.run(c, "analyze_seo", func() (any, error) {
		return h.Svc.AnalyzeSEO(c.Request.Context(), req.URL, req.Keywords)
	})
}

func (h *Handler) analyzeCompetitors(c *gin.Context) {
	var req struct {
		Competitors []string `json:"competitors"`
		Keywords    []string `json:"keywords"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Competitors) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "competitors array is required", nil)
		return
	}
	h.run(c, "analyze_competitors", func() (any, error) {
		return h.Svc.AnalyzeCompetitors(c.Request.Context(), req.Competitors, req.Keywords)
	})
}

func (h *Handler) recommendProducts(c *gin.Context) {
	var req struct {
		CustomerData map[string]any `json:"customer_data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.CustomerData) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "customer_data is required", nil)
		return
	}
	h.run(c, "recommend_products", func() (any, error) {
		return h.Svc.RecommendProducts(c.Request.Context(), req.CustomerData)
	})
}

func (h *Handler) createContent(c *gin.Context) {
	var req struct {
		Topic    string `json:"topic"`
		Platform string `json:"platform"`
		Tone     string `json:"tone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Topic == "" || req.Platform == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "topic and platform are required", nil)
		return
	}
	h.run(c, "create_content", func() (any, error) {
		return h.Svc.CreateContent(c.Request.Context(), req.Topic, req.Platform, req.Tone)
	})
}

func (h *Handler) createEmailCampaign(c *gin.Context) {
	var req struct {
		CampaignType string    `json:"campaign_type"`
		Audience     []Segment `json:"audience"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.CampaignType == "" || len(req.Audience) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "campaign_type and audience are required", nil)
		return
	}
	h.run(c, "create_email_campaign", func() (any, error) {
		return h.Svc.CreateEmailCampaign(c.Request.Context(), req.CampaignType, req.Audience)
	})
}

func (h *Handler) analyzeSentiment(c *gin.Context) {
	var req struct {
		BrandName string `json:"brand_name"`
		Timeframe string `json:"timeframe"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.BrandName == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "brand_name is required", nil)
		return
	}
	h.run(c, "analyze_sentiment", func() (any, error) {
		return h.Svc.AnalyzeSentiment(c.Request.Context(), req.BrandName, req.Timeframe)
	})
}

func (h *Handler) predictContentPerformance(c *gin.Context) {
	var req struct {
		Content  string `json:"content"`
		Platform string `json:"platform"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" || req.Platform == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "content and platform are required", nil)
		return
	}
	h.run(c, "predict_content_performance", func() (any, error) {
		return h.Svc.PredictContentPerformance(c.Request.Context(), req.Content, req.Platform)
	})
}

func (h *Handler) monitorPrices(c *gin.Context) {
	var req struct {
		ProductURL  string   `json:"product_url"`
		Competitors []string `json:"competitors"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductURL == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "product_url is required", nil)
		return
	}
	h.run(c, "monitor_prices", func() (any, error) {
		return h.Svc.MonitorPrices(c.Request.Context(), req.ProductURL, req.Competitors)
	})
}

func (h *Handler) mapCustomerJourney(c *gin.Context) {
	var req struct {
		CustomerData map[string]any `json:"customer_data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.CustomerData) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "customer_data is required", nil)
		return
	}
	h.run(c, "map_customer_journey", func() (any, error) {
		return h.Svc.MapCustomerJourney(c.Request.Context(), req.CustomerData)
	})
}
