// Package uploads routes document uploads to the agent that can process
// them and exposes the agent catalog.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"agenthub-backend/internal/registry"
	"agenthub-backend/internal/shared/metrics"
	"agenthub-backend/internal/shared/server/middleware"
	"agenthub-backend/internal/shared/server/respond"
	"agenthub-backend/internal/shared/telemetry"
)

const defaultAgent = "summarizer"

// maxUploadBytes bounds in-memory reads of uploaded files.
const maxUploadBytes = 100 << 20

// Handler dispatches uploads through the agent registry.
type Handler struct {
	Registry *registry.Registry
}

// NewHandler constructs a Handler.
func NewHandler(reg *registry.Registry) *Handler {
	return &Handler{Registry: reg}
}

// RegisterRoutes attaches upload and catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/process_document", h.processDocument)
	rg.GET("/agents", h.listAgents)
	rg.GET("/agents/:id", h.getAgent)
}

func (h *Handler) processDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file provided", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file too large", nil)
		return
	}

	agentID := strings.TrimSpace(c.PostForm("agent_type"))
	if agentID == "" {
		agentID = defaultAgent
	}
	c.Set(middleware.AgentIDKey, agentID)

	descriptor, processor, err := h.Registry.Lookup(agentID)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "unknown_agent", fmt.Sprintf("Unknown agent: %s", agentID), nil)
		return
	}
	if processor == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", fmt.Sprintf("Agent %s does not accept file uploads", agentID), nil)
		return
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
	if !descriptor.SupportsExtension(ext) {
		respond.Error(c, http.StatusBadRequest, "unsupported_type", fmt.Sprintf("Unsupported file type: %s", ext), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read upload", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read upload", nil)
		return
	}

	metrics.IncInvocationStarted(agentID)
	start := time.Now()

	out, err := processor.ProcessUpload(c.Request.Context(), fileHeader.Filename, data, ext)
	if err != nil {
		metrics.IncInvocationFailed()
		telemetry.Error("uploads.process_failed", map[string]any{
			"agent": agentID, "file": fileHeader.Filename, "error": err.Error(),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "document processing failed", nil)
		return
	}

	metrics.IncInvocationCompleted()
	metrics.ObserveInvocationDurationMs(float64(time.Since(start).Milliseconds()))
	respond.OK(c, out)
}

func (h *Handler) listAgents(c *gin.Context) {
	respond.OK(c, gin.H{"agents": h.Registry.List()})
}

func (h *Handler) getAgent(c *gin.Context) {
	descriptor, _, err := h.Registry.Lookup(c.Param("id"))
	if err != nil {
		if errors.Is(err, registry.ErrUnknownAgent) {
			respond.Error(c, http.StatusNotFound, "not_found", "agent not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "lookup failed", nil)
		return
	}
	respond.OK(c, descriptor)
}
