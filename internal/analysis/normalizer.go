package analysis

import (
	"encoding/json"
	"strings"

	"glowcheck/internal/models"
)

// The normalizer turns raw completion text into a well-shaped result. It
// degrades through three tiers: strict JSON decode, regex extraction, and
// finally the static mock. It never panics past its boundary and never
// returns a field outside its declared range.

const defaultRecommendation = "Always patch test new products and consult a dermatologist for personalized advice."

// productPayload is the loose decode target for tier one. Pointers
// distinguish absent fields from zero values.
type productPayload struct {
	ProductName            *string  `json:"productName"`
	SkinCompatibilityScore *float64 `json:"skinCompatibilityScore"`
	DetectedItems          []string `json:"detectedItems"`
	SkinBenefits           []string `json:"skinBenefits"`
	Warnings               []string `json:"warnings"`
	Recommendations        *string  `json:"recommendations"`
	Alternatives           []string `json:"alternatives"`
	UsageNotes             []string `json:"usageNotes"`
	ProductTypeIdentified  *string  `json:"productTypeIdentified"`
}

type skinPayload struct {
	Scores struct {
		Acne        *float64 `json:"acne"`
		Dryness     *float64 `json:"dryness"`
		Oiliness    *float64 `json:"oiliness"`
		Redness     *float64 `json:"redness"`
		DarkCircles *float64 `json:"darkCircles"`
		Texture     *float64 `json:"texture"`
	} `json:"scores"`
	OverallScore    *float64 `json:"overallScore"`
	SkinType        *string  `json:"skinType"`
	Recommendations struct {
		Skincare  []string `json:"skincare"`
		Diet      []string `json:"diet"`
		Lifestyle []string `json:"lifestyle"`
	} `json:"recommendations"`
}

// NormalizeProduct converts raw completion text into an AnalysisResult.
func NormalizeProduct(raw string, mode models.Mode) models.AnalysisResult {
	if js, ok := extractJSON(raw); ok {
		var p productPayload
		if err := json.Unmarshal([]byte(js), &p); err == nil {
			return models.AnalysisResult{
				ProductName:            strOr(p.ProductName, "Unknown Product"),
				SkinCompatibilityScore: clamp(intOr(p.SkinCompatibilityScore, 50), 0, 100),
				DetectedItems:          orEmpty(p.DetectedItems),
				SkinBenefits:           orEmpty(p.SkinBenefits),
				Warnings:               orEmpty(p.Warnings),
				Recommendations:        strOr(p.Recommendations, defaultRecommendation),
				Alternatives:           orEmpty(p.Alternatives),
				UsageNotes:             orEmpty(p.UsageNotes),
				ProductTypeIdentified:  strOr(p.ProductTypeIdentified, ""),
				Source:                 models.SourceDecoded,
			}
		}
	}

	// Tier two: mine the unstructured text for whatever is recognizable.
	fields := ExtractApproximate(raw)

	name := fields.ProductName
	if name == "" {
		name = genericName(mode)
	}
	score := 50
	if fields.ScoreFound {
		score = clamp(fields.Score, 0, 100)
	}

	return models.AnalysisResult{
		ProductName:            name,
		SkinCompatibilityScore: score,
		DetectedItems:          orEmpty(fields.Detected),
		SkinBenefits:           []string{},
		Warnings:               orEmpty(fields.Harmful),
		Recommendations:        defaultRecommendation,
		Alternatives:           []string{},
		UsageNotes:             []string{},
		Source:                 models.SourceRecovered,
	}
}

// NormalizeSkin converts raw completion text into a SkinAnalysis.
func NormalizeSkin(raw string) models.SkinAnalysis {
	if js, ok := extractJSON(raw); ok {
		var p skinPayload
		if err := json.Unmarshal([]byte(js), &p); err == nil {
			return models.SkinAnalysis{
				Scores: models.SkinScores{
					Acne:        clamp(intOr(p.Scores.Acne, 5), 1, 10),
					Dryness:     clamp(intOr(p.Scores.Dryness, 5), 1, 10),
					Oiliness:    clamp(intOr(p.Scores.Oiliness, 5), 1, 10),
					Redness:     clamp(intOr(p.Scores.Redness, 5), 1, 10),
					DarkCircles: clamp(intOr(p.Scores.DarkCircles, 5), 1, 10),
					Texture:     clamp(intOr(p.Scores.Texture, 5), 1, 10),
				},
				OverallScore: clamp(intOr(p.OverallScore, 50), 0, 100),
				SkinType:     normalizeSkinType(strOr(p.SkinType, "normal")),
				Recommendations: models.SkinRecommendations{
					Skincare:  orEmpty(p.Recommendations.Skincare),
					Diet:      orEmpty(p.Recommendations.Diet),
					Lifestyle: orEmpty(p.Recommendations.Lifestyle),
				},
				Source: models.SourceDecoded,
			}
		}
	}

	// No usable JSON. Salvage an overall score if the text mentions one,
	// otherwise fall back to midpoint defaults.
	fields := ExtractApproximate(raw)
	overall := 50
	if fields.ScoreFound {
		overall = clamp(fields.Score, 0, 100)
	}

	return models.SkinAnalysis{
		Scores: models.SkinScores{
			Acne: 5, Dryness: 5, Oiliness: 5, Redness: 5, DarkCircles: 5, Texture: 5,
		},
		OverallScore: overall,
		SkinType:     "normal",
		Recommendations: models.SkinRecommendations{
			Skincare:  []string{defaultRecommendation},
			Diet:      []string{},
			Lifestyle: []string{},
		},
		Source: models.SourceRecovered,
	}
}

// extractJSON locates the first balanced top-level {...} substring.
// Braces inside string literals are skipped.
func extractJSON(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func intOr(v *float64, def int) int {
	if v == nil {
		return def
	}
	return int(*v)
}

func strOr(v *string, def string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return def
	}
	return strings.TrimSpace(*v)
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func normalizeSkinType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	for _, known := range models.SkinTypes {
		if t == known {
			return t
		}
	}
	return "normal"
}

func genericName(mode models.Mode) string {
	switch mode {
	case models.ModeFood, models.ModeFoodLabel:
		return "Food Product"
	case models.ModeSkincareLabel:
		return "Skincare Product"
	case models.ModeRawProduct:
		return "Raw Food Item"
	default:
		return "Consumer Product"
	}
}
