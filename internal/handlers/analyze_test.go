package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glowcheck/internal/ai"
	"glowcheck/internal/models"
	"glowcheck/pkg/logger"
)

// The test client has no API key, so every request exercises the mock
// fallback path.
func newAnalyzeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewAnalyzeHandler(ai.NewClient("", ""), logger.NewNop())

	r := gin.New()
	r.POST("/api/analyze-product", h.Product)
	r.POST("/api/analyze-product-specialized", h.Specialized)
	r.POST("/api/analyze-skin", h.Skin)
	return r
}

func multipartImage(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fw, err := w.CreateFormFile("image", "photo.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not-really-a-jpeg"))
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	return body, w.FormDataContentType()
}

func TestAnalyzeProductMockFallbackWithoutAPIKey(t *testing.T) {
	r := newAnalyzeRouter()

	for _, productType := range []string{"food", "other"} {
		body, contentType := multipartImage(t, map[string]string{"product_type": productType})
		req := httptest.NewRequest(http.MethodPost, "/api/analyze-product", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "type %s", productType)
		assert.Contains(t, rec.Body.String(), "Mock analysis", "type %s", productType)

		var result models.AnalysisResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, models.SourceMocked, result.Source)
		assert.GreaterOrEqual(t, result.SkinCompatibilityScore, 0)
		assert.LessOrEqual(t, result.SkinCompatibilityScore, 100)
		assert.NotNil(t, result.DetectedItems)
	}
}

func TestAnalyzeProductMissingImage(t *testing.T) {
	r := newAnalyzeRouter()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("product_type", "food"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-product", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "image")
}

func TestAnalyzeProductRejectsUnknownType(t *testing.T) {
	r := newAnalyzeRouter()

	body, contentType := multipartImage(t, map[string]string{"product_type": "gadget"})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-product", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "product_type")
}

func TestAnalyzeSpecializedModes(t *testing.T) {
	r := newAnalyzeRouter()

	for _, analysisType := range []string{"food_label", "skincare_label", "raw_product"} {
		body, contentType := multipartImage(t, map[string]string{"analysis_type": analysisType})
		req := httptest.NewRequest(http.MethodPost, "/api/analyze-product-specialized", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "type %s", analysisType)
		assert.Contains(t, rec.Body.String(), "Mock analysis", "type %s", analysisType)
	}

	body, contentType := multipartImage(t, map[string]string{"analysis_type": "palm_reading"})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-product-specialized", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeSkinMockShapeAndBounds(t *testing.T) {
	r := newAnalyzeRouter()

	body, contentType := multipartImage(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-skin", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mock analysis")

	var result models.SkinAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	for _, score := range []int{
		result.Scores.Acne, result.Scores.Dryness, result.Scores.Oiliness,
		result.Scores.Redness, result.Scores.DarkCircles, result.Scores.Texture,
	} {
		assert.GreaterOrEqual(t, score, 1)
		assert.LessOrEqual(t, score, 10)
	}
	assert.GreaterOrEqual(t, result.OverallScore, 0)
	assert.LessOrEqual(t, result.OverallScore, 100)
	assert.Nil(t, result.ProgressComparison)
}

func TestAnalyzeSkinWithPreviousAnalysis(t *testing.T) {
	r := newAnalyzeRouter()

	previous := models.SkinAnalysis{
		Scores: models.SkinScores{Acne: 5, Dryness: 5, Oiliness: 5, Redness: 5, DarkCircles: 5, Texture: 5},
	}
	prevJSON, err := json.Marshal(previous)
	require.NoError(t, err)

	body, contentType := multipartImage(t, map[string]string{"previousAnalysis": string(prevJSON)})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-skin", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result models.SkinAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotNil(t, result.ProgressComparison)

	// Mock scores are mostly below 5, so the comparison reads as improved.
	assert.Equal(t, models.ProgressImproved, result.ProgressComparison.OverallProgress)
	assert.Contains(t, result.ProgressComparison.ImprovementAreas, "acne")
	expected := (len(result.ProgressComparison.ImprovementAreas) - len(result.ProgressComparison.AreasNeedingAttention)) * 10
	assert.Equal(t, expected, result.ProgressComparison.ProgressPercentage)
}

func TestAnalyzeSkinIgnoresMalformedPrevious(t *testing.T) {
	r := newAnalyzeRouter()

	body, contentType := multipartImage(t, map[string]string{"previousAnalysis": "{broken"})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-skin", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result models.SkinAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Nil(t, result.ProgressComparison)
}
