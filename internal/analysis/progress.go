package analysis

import (
	"glowcheck/internal/models"
)

// CompareProgress classifies each of the six tracked dimensions against a
// previous analysis. Lower is better on every dimension: a strictly lower
// score means improvement, strictly higher means the area needs attention.
// The percentage is (improved - attention) * 10, range [-60, 60].
func CompareProgress(current, previous models.SkinScores) models.ProgressComparison {
	dims := []struct {
		name string
		cur  int
		prev int
	}{
		{"acne", current.Acne, previous.Acne},
		{"dryness", current.Dryness, previous.Dryness},
		{"oiliness", current.Oiliness, previous.Oiliness},
		{"redness", current.Redness, previous.Redness},
		{"darkCircles", current.DarkCircles, previous.DarkCircles},
		{"texture", current.Texture, previous.Texture},
	}

	out := models.ProgressComparison{
		ImprovementAreas:      []string{},
		AreasNeedingAttention: []string{},
	}

	for _, d := range dims {
		switch {
		case d.cur < d.prev:
			out.ImprovementAreas = append(out.ImprovementAreas, d.name)
		case d.cur > d.prev:
			out.AreasNeedingAttention = append(out.AreasNeedingAttention, d.name)
		}
	}

	improved := len(out.ImprovementAreas)
	attention := len(out.AreasNeedingAttention)

	switch {
	case improved > attention:
		out.OverallProgress = models.ProgressImproved
	case improved < attention:
		out.OverallProgress = models.ProgressWorsened
	default:
		out.OverallProgress = models.ProgressStable
	}

	out.ProgressPercentage = (improved - attention) * 10
	return out
}
