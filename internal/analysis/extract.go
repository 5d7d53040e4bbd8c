package analysis

import (
	"regexp"
	"strconv"
	"strings"
)

// Last-resort text mining for completions that contain no parseable JSON.
// Each regex runs independently; whatever matches is kept, the rest stays
// at its default.

const (
	maxDetectedItems = 10
	maxHarmfulItems  = 5
)

var (
	productNameRe = regexp.MustCompile(`(?i)(?:product|item|name)[\s:]*([^\n.]+)`)
	scoreRe       = regexp.MustCompile(`(?i)(?:score|rating|compatibility)[\s:]*(\d+)`)
	ingredientsRe = regexp.MustCompile(`(?i)ingredients?[\s:]*([^\n]+)`)
	harmfulRe     = regexp.MustCompile(`(?i)harmful[^\n:]*[\s:]*([^\n]+)`)
	listSplitRe   = regexp.MustCompile(`[,;]`)
)

// PartialFields is what the unstructured extractor could recover.
type PartialFields struct {
	ProductName string
	Score       int
	ScoreFound  bool
	Detected    []string
	Harmful     []string
}

// ExtractApproximate mines free text for a product name, a numeric score
// and delimited ingredient lists. It never fails; unmatched fields are
// left at their zero values.
func ExtractApproximate(text string) PartialFields {
	var out PartialFields

	if m := productNameRe.FindStringSubmatch(text); m != nil {
		out.ProductName = strings.TrimSpace(m[1])
	}

	if m := scoreRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			out.Score = n
			out.ScoreFound = true
		}
	}

	if m := ingredientsRe.FindStringSubmatch(text); m != nil {
		out.Detected = splitList(m[1], maxDetectedItems)
	}

	if m := harmfulRe.FindStringSubmatch(text); m != nil {
		out.Harmful = splitList(m[1], maxHarmfulItems)
	}

	return out
}

func splitList(s string, limit int) []string {
	parts := listSplitRe.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}
