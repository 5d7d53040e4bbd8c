package ai

import (
	"fmt"

	"glowcheck/internal/models"
)

// Prompt templates are static strings with the scoring rubric embedded.
// Every product template asks for the same JSON shape so the normalizer
// can decode all modes with one struct.

const productJSONShape = `Respond with a single JSON object using exactly these keys:
{"productName": string, "skinCompatibilityScore": number 0-100, "detectedItems": [string], "skinBenefits": [string], "warnings": [string], "recommendations": string, "alternatives": [string], "usageNotes": [string], "productTypeIdentified": string}`

const foodPrompt = `You are a dermatology-aware nutrition assistant. Analyze this photo of a food product.
Identify the product, list its visible or likely ingredients, and judge how the product affects skin health.
Score skin compatibility 0-100: 80-100 means actively good for skin (antioxidants, omega-3, low glycemic),
50-79 neutral, 20-49 likely to aggravate acne or inflammation (high sugar, dairy-heavy, fried), below 20 strongly discouraged.
` + productJSONShape

const genericProductPrompt = `You are a skincare assistant. Analyze this photo of a consumer product.
Identify what the product is, detect ingredients or materials where possible, and judge its effect on skin.
Score skin compatibility 0-100: 80-100 beneficial, 50-79 neutral, 20-49 potentially irritating, below 20 harmful.
` + productJSONShape

const foodLabelPrompt = `You are a nutrition label expert. Read the ingredient label in this photo carefully.
List every ingredient you can read under detectedItems, flag added sugars, seed oils, dairy and other
skin-aggravating entries under warnings, and score skin compatibility 0-100 using the label contents:
80-100 clean whole-food label, 50-79 average processed food, 20-49 high sugar or inflammatory oils, below 20 avoid.
` + productJSONShape

const skincareLabelPrompt = `You are a cosmetic chemist. Read the INCI ingredient list in this photo.
List the ingredients under detectedItems, flag comedogenic, sensitizing or stripping entries (denatured alcohol,
fragrance, essential oils, sulfates) under warnings, note beneficial actives under skinBenefits, and score
skin compatibility 0-100: 80-100 gentle and effective, 50-79 fine for most skin, 20-49 problematic for
sensitive or acne-prone skin, below 20 avoid.
` + productJSONShape

const rawProductPrompt = `You are a dermatology-aware nutrition assistant. Analyze this photo of a raw, unpackaged
food (produce, nuts, eggs, etc.). Identify it, describe its skin-relevant nutrients under skinBenefits, and score
skin compatibility 0-100: most whole foods land 70-100, high-glycemic fruit 50-70, anything fried or processed lower.
` + productJSONShape

const skinPrompt = `You are a dermatologist. Analyze the facial skin in this photo.
Rate each dimension 1-10 where 1 is no concern and 10 is severe: acne, dryness, oiliness, redness, darkCircles, texture.
Give an overall skin health score 0-100 where 100 is perfect skin, classify the skin type as one of
oily, dry, combination, normal, sensitive, and give practical recommendations.
Respond with a single JSON object using exactly these keys:
{"scores": {"acne": n, "dryness": n, "oiliness": n, "redness": n, "darkCircles": n, "texture": n},
"overallScore": number 0-100, "skinType": string,
"recommendations": {"skincare": [string], "diet": [string], "lifestyle": [string]}}`

// ProductPrompt returns the template for a product analysis mode.
func ProductPrompt(mode models.Mode) string {
	switch mode {
	case models.ModeFood:
		return foodPrompt
	case models.ModeFoodLabel:
		return foodLabelPrompt
	case models.ModeSkincareLabel:
		return skincareLabelPrompt
	case models.ModeRawProduct:
		return rawProductPrompt
	default:
		return genericProductPrompt
	}
}

// SkinPrompt returns the facial skin analysis template.
func SkinPrompt() string {
	return skinPrompt
}

// ChatSystemPrompt builds the Glowbot persona prompt, folding in the
// user's latest skin report when one is available.
func ChatSystemPrompt(latestSkinReport string) string {
	base := `You are Glowbot, a friendly skincare coach. Answer questions about skincare,
nutrition for skin health, and daily habits. Keep answers short, practical and encouraging.
Recommend seeing a dermatologist for anything medical.`

	if latestSkinReport == "" {
		return base
	}
	return fmt.Sprintf("%s\n\nThe user's most recent skin analysis, for context:\n%s", base, latestSkinReport)
}
