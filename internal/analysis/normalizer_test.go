package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glowcheck/internal/models"
)

func TestNormalizeProductDecodesWellFormedJSON(t *testing.T) {
	raw := `Here is the analysis you asked for:
{"productName": "Vitamin C Serum", "skinCompatibilityScore": 85,
"detectedItems": ["ascorbic acid", "glycerin"], "skinBenefits": ["brightening"],
"warnings": [], "recommendations": "Use in the morning.", "alternatives": []}`

	got := NormalizeProduct(raw, models.ModeSkincareLabel)

	assert.Equal(t, models.SourceDecoded, got.Source)
	assert.Equal(t, "Vitamin C Serum", got.ProductName)
	assert.Equal(t, 85, got.SkinCompatibilityScore)
	assert.Equal(t, []string{"ascorbic acid", "glycerin"}, got.DetectedItems)
}

func TestNormalizeProductClampsScore(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"over range", `{"productName": "X", "skinCompatibilityScore": 150}`, 100},
		{"negative", `{"productName": "X", "skinCompatibilityScore": -5}`, 0},
		{"missing defaults to midpoint", `{"productName": "X"}`, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeProduct(tc.raw, models.ModeGeneric)
			assert.Equal(t, tc.want, got.SkinCompatibilityScore)
		})
	}
}

func TestNormalizeProductArraysNeverNil(t *testing.T) {
	got := NormalizeProduct(`{"productName": "Bare Minimum"}`, models.ModeGeneric)

	assert.NotNil(t, got.DetectedItems)
	assert.NotNil(t, got.SkinBenefits)
	assert.NotNil(t, got.Warnings)
	assert.NotNil(t, got.Alternatives)
	assert.NotNil(t, got.UsageNotes)
	assert.Equal(t, defaultRecommendation, got.Recommendations)
}

func TestNormalizeProductRecoversFromFreeText(t *testing.T) {
	raw := `The product name: Hydro Boost Gel Cream
It looks gentle overall. Compatibility score: 72 out of 100.
Ingredients: water, glycerin, dimethicone, hyaluronic acid
Harmful entries to watch: fragrance, parabens`

	got := NormalizeProduct(raw, models.ModeGeneric)

	assert.Equal(t, models.SourceRecovered, got.Source)
	assert.Equal(t, 72, got.SkinCompatibilityScore)
	assert.Contains(t, got.DetectedItems, "glycerin")
	assert.Contains(t, got.Warnings, "fragrance")
}

func TestNormalizeProductNothingRecognizable(t *testing.T) {
	got := NormalizeProduct("I cannot tell what this is at all.", models.ModeFood)

	assert.Equal(t, models.SourceRecovered, got.Source)
	assert.Equal(t, 50, got.SkinCompatibilityScore)
	assert.Equal(t, "Food Product", got.ProductName)
	assert.Empty(t, got.DetectedItems)
	assert.NotNil(t, got.DetectedItems)
}

func TestNormalizeSkinClampsDimensions(t *testing.T) {
	raw := `{"scores": {"acne": 55, "dryness": 0, "oiliness": 7, "redness": -3,
"darkCircles": 4, "texture": 2}, "overallScore": 120, "skinType": "OILY",
"recommendations": {"skincare": ["spf"], "diet": [], "lifestyle": []}}`

	got := NormalizeSkin(raw)

	assert.Equal(t, 10, got.Scores.Acne)
	assert.Equal(t, 1, got.Scores.Dryness)
	assert.Equal(t, 7, got.Scores.Oiliness)
	assert.Equal(t, 1, got.Scores.Redness)
	assert.Equal(t, 100, got.OverallScore)
	assert.Equal(t, "oily", got.SkinType)
}

func TestNormalizeSkinUnknownTypeFallsBackToNormal(t *testing.T) {
	got := NormalizeSkin(`{"scores": {}, "overallScore": 60, "skinType": "glowy"}`)

	assert.Equal(t, "normal", got.SkinType)
	assert.Equal(t, 5, got.Scores.Acne)
	assert.NotNil(t, got.Recommendations.Diet)
}

func TestNormalizeSkinWithoutJSON(t *testing.T) {
	got := NormalizeSkin("Overall your skin looks fine. Score: 80.")

	assert.Equal(t, models.SourceRecovered, got.Source)
	assert.Equal(t, 80, got.OverallScore)
	assert.Equal(t, "normal", got.SkinType)
}

func TestExtractJSONBraceMatching(t *testing.T) {
	js, ok := extractJSON(`noise {"a": {"b": "}"}, "c": 1} trailing {"other": 2}`)

	require.True(t, ok)
	assert.Equal(t, `{"a": {"b": "}"}, "c": 1}`, js)

	_, ok = extractJSON("no json here")
	assert.False(t, ok)

	_, ok = extractJSON(`{"unterminated": true`)
	assert.False(t, ok)
}
