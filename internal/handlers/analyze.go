package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"glowcheck/internal/ai"
	"glowcheck/internal/analysis"
	"glowcheck/internal/models"
	"glowcheck/pkg/logger"
)

// AnalyzeHandler serves the three image analysis endpoints. Validation
// failures are the only errors a caller ever sees; everything after
// validation degrades to the mock payload so the UI always gets a
// renderable result. One upstream failure means permanent fallback for
// that request, there is no retry.
type AnalyzeHandler struct {
	ai  *ai.Client
	log *logger.Logger
}

func NewAnalyzeHandler(aiClient *ai.Client, log *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{ai: aiClient, log: log}
}

// Product handles POST /api/analyze-product.
func (h *AnalyzeHandler) Product(c *gin.Context) {
	image, mimeType, ok := h.readImage(c)
	if !ok {
		return
	}

	var mode models.Mode
	switch c.PostForm("product_type") {
	case "food":
		mode = models.ModeFood
	case "other":
		mode = models.ModeGeneric
	default:
		errorJSON(c, http.StatusBadRequest, "product_type must be one of: food, other")
		return
	}

	c.JSON(http.StatusOK, h.analyzeProduct(c.Request.Context(), mode, image, mimeType))
}

// Specialized handles POST /api/analyze-product-specialized.
func (h *AnalyzeHandler) Specialized(c *gin.Context) {
	image, mimeType, ok := h.readImage(c)
	if !ok {
		return
	}

	var mode models.Mode
	switch c.PostForm("analysis_type") {
	case "food_label":
		mode = models.ModeFoodLabel
	case "skincare_label":
		mode = models.ModeSkincareLabel
	case "raw_product":
		mode = models.ModeRawProduct
	default:
		errorJSON(c, http.StatusBadRequest, "analysis_type must be one of: food_label, skincare_label, raw_product")
		return
	}

	c.JSON(http.StatusOK, h.analyzeProduct(c.Request.Context(), mode, image, mimeType))
}

// Skin handles POST /api/analyze-skin.
func (h *AnalyzeHandler) Skin(c *gin.Context) {
	image, mimeType, ok := h.readImage(c)
	if !ok {
		return
	}

	result := h.analyzeSkin(c.Request.Context(), image, mimeType)

	// A previous analysis, when supplied, adds the progress comparison.
	if prev := c.PostForm("previousAnalysis"); prev != "" {
		var previous models.SkinAnalysis
		if err := json.Unmarshal([]byte(prev), &previous); err != nil {
			h.log.Warnw("Ignoring malformed previousAnalysis payload", "error", err)
		} else {
			comparison := analysis.CompareProgress(result.Scores, previous.Scores)
			result.ProgressComparison = &comparison
		}
	}

	c.JSON(http.StatusOK, result)
}

func (h *AnalyzeHandler) analyzeProduct(ctx context.Context, mode models.Mode, image []byte, mimeType string) models.AnalysisResult {
	if !h.ai.Enabled() {
		return analysis.MockProduct(mode)
	}

	raw, err := h.ai.AnalyzeImage(ctx, ai.ProductPrompt(mode), image, mimeType)
	if err != nil {
		h.log.Errorw("Product analysis call failed, serving mock", "mode", mode, "error", err)
		return analysis.MockProduct(mode)
	}

	return analysis.NormalizeProduct(raw, mode)
}

func (h *AnalyzeHandler) analyzeSkin(ctx context.Context, image []byte, mimeType string) models.SkinAnalysis {
	if !h.ai.Enabled() {
		return analysis.MockSkin()
	}

	raw, err := h.ai.AnalyzeImage(ctx, ai.SkinPrompt(), image, mimeType)
	if err != nil {
		h.log.Errorw("Skin analysis call failed, serving mock", "error", err)
		return analysis.MockSkin()
	}

	return analysis.NormalizeSkin(raw)
}

// readImage pulls the uploaded image out of the multipart form. A missing
// or unreadable file fails the request with a field-specific 400.
func (h *AnalyzeHandler) readImage(c *gin.Context) ([]byte, string, bool) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "image file is required")
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "could not read image file")
		return nil, "", false
	}

	return data, header.Header.Get("Content-Type"), true
}
