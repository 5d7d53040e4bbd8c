package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"glowcheck/internal/ai"
	"glowcheck/internal/report"
	"glowcheck/pkg/logger"
)

func newReportRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	service := report.NewService(ai.NewClient("", ""), report.NewMailer(log), log)
	h := NewReportHandler(service, log)

	r := gin.New()
	r.Use(sessions.Sessions("glowcheck_session", cookie.NewStore([]byte("test-secret"))))
	r.POST("/api/generate-report", h.Generate)
	return r
}

func TestGenerateReportWithoutAIKey(t *testing.T) {
	r := newReportRouter()

	// With no API key the completion is skipped and canned copy is
	// emailed; the funnel still advances.
	rec := do(t, r, http.MethodPost, "/api/generate-report", map[string]any{
		"answers": map[string]any{"1": "Balanced", "2": []string{"Breakouts"}},
		"email":   "quiz@example.com",
		"name":    "Quiz Taker",
	}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reportTitle")
	assert.Contains(t, rec.Body.String(), "quiz@example.com")
}

func TestGenerateReportRequiresEmail(t *testing.T) {
	r := newReportRouter()

	rec := do(t, r, http.MethodPost, "/api/generate-report", map[string]any{
		"answers": map[string]any{"1": "Balanced"},
		"name":    "Quiz Taker",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email")
}
