package analysis

import (
	"glowcheck/internal/models"
)

// Static mock payloads, one per request mode. Served whenever the upstream
// call cannot be made or fails, so the UI always has something plausible
// to render. Every mock carries an explicit warning naming itself.

const MockWarning = "Mock analysis: configure the vision API key to get real results."

// MockProduct returns the mode-specific canned product analysis.
func MockProduct(mode models.Mode) models.AnalysisResult {
	var r models.AnalysisResult

	switch mode {
	case models.ModeFood, models.ModeFoodLabel:
		r = models.AnalysisResult{
			ProductName:            "Mixed Berry Yogurt",
			SkinCompatibilityScore: 62,
			DetectedItems:          []string{"yogurt", "strawberries", "blueberries", "sugar", "pectin"},
			SkinBenefits:           []string{"probiotics support the skin microbiome", "berries provide antioxidants"},
			Warnings:               []string{"added sugar can aggravate acne", MockWarning},
			Recommendations:        "Choose an unsweetened version and add fresh berries yourself.",
			Alternatives:           []string{"plain Greek yogurt with fresh fruit", "coconut yogurt"},
			ProductTypeIdentified:  "food",
		}
	case models.ModeSkincareLabel:
		r = models.AnalysisResult{
			ProductName:            "Hydrating Facial Cleanser",
			SkinCompatibilityScore: 78,
			DetectedItems:          []string{"aqua", "glycerin", "niacinamide", "ceramide NP", "phenoxyethanol"},
			SkinBenefits:           []string{"niacinamide calms redness", "ceramides support the skin barrier"},
			Warnings:               []string{MockWarning},
			Recommendations:        "Suitable for daily use on most skin types. Follow with a moisturizer.",
			Alternatives:           []string{"fragrance-free gel cleanser"},
			UsageNotes:             []string{"use morning and evening", "avoid the eye area"},
			ProductTypeIdentified:  "skincare",
		}
	case models.ModeRawProduct:
		r = models.AnalysisResult{
			ProductName:            "Avocado",
			SkinCompatibilityScore: 90,
			DetectedItems:          []string{"avocado"},
			SkinBenefits:           []string{"healthy fats support skin elasticity", "vitamin E protects against oxidative stress"},
			Warnings:               []string{MockWarning},
			Recommendations:        "A great regular addition to a skin-friendly diet.",
			Alternatives:           []string{},
			ProductTypeIdentified:  "raw food",
		}
	default:
		r = models.AnalysisResult{
			ProductName:            "Consumer Product",
			SkinCompatibilityScore: 55,
			DetectedItems:          []string{},
			SkinBenefits:           []string{},
			Warnings:               []string{MockWarning},
			Recommendations:        defaultRecommendation,
			Alternatives:           []string{},
		}
	}

	r.Source = models.SourceMocked
	return r
}

// MockSkin returns the canned facial skin analysis.
func MockSkin() models.SkinAnalysis {
	return models.SkinAnalysis{
		Scores: models.SkinScores{
			Acne:        3,
			Dryness:     4,
			Oiliness:    5,
			Redness:     2,
			DarkCircles: 4,
			Texture:     3,
		},
		OverallScore: 72,
		SkinType:     "combination",
		Recommendations: models.SkinRecommendations{
			Skincare:  []string{"gentle cleanser twice daily", "niacinamide serum in the morning", "SPF 30+ every day"},
			Diet:      []string{"more omega-3 rich foods", "reduce added sugar"},
			Lifestyle: []string{"aim for 7-8 hours of sleep", "drink 2 liters of water daily"},
		},
		Note:   MockWarning,
		Source: models.SourceMocked,
	}
}
