package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"glowcheck/internal/ai"
	"glowcheck/pkg/logger"
)

func newChatRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewChatHandler(ai.NewClient("", ""), logger.NewNop())

	r := gin.New()
	r.POST("/api/glowbot-chat", h.Glowbot)
	return r
}

func TestGlowbotFallbackWithoutAPIKey(t *testing.T) {
	r := newChatRouter()

	rec := do(t, r, http.MethodPost, "/api/glowbot-chat",
		map[string]any{"userMessage": "How often should I exfoliate?"}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "botMessage")
}

func TestGlowbotRequiresMessage(t *testing.T) {
	r := newChatRouter()

	rec := do(t, r, http.MethodPost, "/api/glowbot-chat", map[string]any{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodPost, "/api/glowbot-chat",
		map[string]any{"latestSkinReport": "skin looks fine"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
