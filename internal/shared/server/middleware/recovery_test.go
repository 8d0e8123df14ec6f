package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"agenthub-backend/internal/shared/metrics"
)

func failedTotal(t *testing.T) uint64 {
	t.Helper()
	for _, line := range strings.Split(metrics.Render(), "\n") {
		if strings.HasPrefix(line, "agent_invocations_failed_total ") {
			v, err := strconv.ParseUint(strings.TrimPrefix(line, "agent_invocations_failed_total "), 10, 64)
			if err != nil {
				t.Fatalf("parse failed counter: %v", err)
			}
			return v
		}
	}
	t.Fatal("failed counter not rendered")
	return 0
}

func TestRecoveryCountsAgentPanicAsFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/boom", func(c *gin.Context) {
		c.Set(AgentIDKey, "finance")
		panic("kaput")
	})

	before := failedTotal(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Unexpected server error") {
		t.Errorf("body = %s", w.Body.String())
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Error("expected a request id header")
	}
	if got := failedTotal(t); got != before+1 {
		t.Errorf("failed counter = %d, want %d", got, before+1)
	}
}

func TestRecoveryOutsideAgentSkipsCounter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/boom", func(c *gin.Context) {
		panic("kaput")
	})

	before := failedTotal(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if got := failedTotal(t); got != before {
		t.Errorf("failed counter = %d, want %d", got, before)
	}
}
