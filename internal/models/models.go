package models

import (
	"time"
)

// Mode selects the prompt template and the mock payload used for a
// product or skin analysis request.
type Mode string

const (
	ModeFood          Mode = "food"
	ModeGeneric       Mode = "other"
	ModeFoodLabel     Mode = "food_label"
	ModeSkincareLabel Mode = "skincare_label"
	ModeRawProduct    Mode = "raw_product"
	ModeSkin          Mode = "skin"
)

// Source records which tier of the normalizer produced a result.
type Source string

const (
	SourceDecoded   Source = "decoded"
	SourceRecovered Source = "recovered"
	SourceMocked    Source = "mocked"
)

// AnalysisResult is the response shape for all product analysis endpoints.
// Score is always inside [0,100] and the slice fields are never nil.
type AnalysisResult struct {
	ProductName            string   `json:"productName"`
	SkinCompatibilityScore int      `json:"skinCompatibilityScore"`
	DetectedItems          []string `json:"detectedItems"`
	SkinBenefits           []string `json:"skinBenefits"`
	Warnings               []string `json:"warnings"`
	Recommendations        string   `json:"recommendations"`
	Alternatives           []string `json:"alternatives"`
	UsageNotes             []string `json:"usageNotes,omitempty"`
	ProductTypeIdentified  string   `json:"productTypeIdentified,omitempty"`
	Source                 Source   `json:"source"`
}

// SkinScores holds the six tracked dimensions, each in [1,10].
// Lower is better on every dimension.
type SkinScores struct {
	Acne        int `json:"acne"`
	Dryness     int `json:"dryness"`
	Oiliness    int `json:"oiliness"`
	Redness     int `json:"redness"`
	DarkCircles int `json:"darkCircles"`
	Texture     int `json:"texture"`
}

type SkinRecommendations struct {
	Skincare  []string `json:"skincare"`
	Diet      []string `json:"diet"`
	Lifestyle []string `json:"lifestyle"`
}

type OverallProgress string

const (
	ProgressImproved OverallProgress = "improved"
	ProgressStable   OverallProgress = "stable"
	ProgressWorsened OverallProgress = "worsened"
)

type ProgressComparison struct {
	ImprovementAreas      []string        `json:"improvementAreas"`
	AreasNeedingAttention []string        `json:"areasNeedingAttention"`
	OverallProgress       OverallProgress `json:"overallProgress"`
	ProgressPercentage    int             `json:"progressPercentage"`
}

// SkinAnalysis is the response shape of the facial skin analysis endpoint.
type SkinAnalysis struct {
	Scores             SkinScores          `json:"scores"`
	OverallScore       int                 `json:"overallScore"`
	SkinType           string              `json:"skinType"`
	Recommendations    SkinRecommendations `json:"recommendations"`
	ProgressComparison *ProgressComparison `json:"progressComparison,omitempty"`
	Note               string              `json:"note,omitempty"`
	Source             Source              `json:"source"`
}

// SkinTypes lists the accepted skinType values; anything else is
// normalized to "normal".
var SkinTypes = []string{"oily", "dry", "combination", "normal", "sensitive"}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Plan is a fixed subscription tier. Amount is in the smallest currency
// unit (cents).
type Plan struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	DurationDays int    `json:"durationDays"`
}

// Subscription is one paid period. The expiration date is derived from
// the plan duration, never stored.
type Subscription struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"user_id"`
	PlanID                string    `json:"plan_id"`
	StripePaymentIntentID string    `json:"stripe_payment_intent_id"`
	PurchaseDate          time.Time `json:"purchase_date"`
}

// ExpirationDate derives the end of the subscription from the plan.
func (s *Subscription) ExpirationDate(plan Plan) time.Time {
	return s.PurchaseDate.AddDate(0, 0, plan.DurationDays)
}
