package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glowcheck/internal/ai"
	"glowcheck/pkg/logger"
)

const fallbackBotMessage = "I'm having trouble reaching my skincare knowledge right now. " +
	"In the meantime: gentle cleansing, daily SPF and consistent sleep cover most of the basics. Try me again in a bit!"

type ChatHandler struct {
	ai  *ai.Client
	log *logger.Logger
}

func NewChatHandler(aiClient *ai.Client, log *logger.Logger) *ChatHandler {
	return &ChatHandler{ai: aiClient, log: log}
}

type chatRequest struct {
	UserMessage      string `json:"userMessage"`
	LatestSkinReport string `json:"latestSkinReport"`
}

// Glowbot handles POST /api/glowbot-chat. The latest skin report, when the
// client has one, is folded into the system prompt as context; its
// freshness is best-effort only.
func (h *ChatHandler) Glowbot(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserMessage == "" {
		errorJSON(c, http.StatusBadRequest, "userMessage is required")
		return
	}

	if !h.ai.Enabled() {
		c.JSON(http.StatusOK, gin.H{"botMessage": fallbackBotMessage})
		return
	}

	reply, err := h.ai.Chat(c.Request.Context(), ai.ChatSystemPrompt(req.LatestSkinReport), req.UserMessage)
	if err != nil {
		h.log.Errorw("Glowbot chat call failed, serving fallback", "error", err)
		c.JSON(http.StatusOK, gin.H{"botMessage": fallbackBotMessage})
		return
	}

	c.JSON(http.StatusOK, gin.H{"botMessage": reply})
}
