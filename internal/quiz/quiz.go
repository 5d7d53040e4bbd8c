package quiz

import (
	"encoding/json"
	"fmt"
)

// Question is one step of the skin quiz. Multi-select questions collect a
// string slice, the rest a single string.
type Question struct {
	ID          int      `json:"id"`
	Text        string   `json:"text"`
	Options     []string `json:"options"`
	MultiSelect bool     `json:"multiSelect"`
}

// GameOption is one choice in the mini-game checkpoint. The correct flag
// never leaves the server.
type GameOption struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Correct bool   `json:"-"`
}

// Questions is the quiz in display order.
var Questions = []Question{
	{ID: 1, Text: "How would you describe your skin most days?", Options: []string{"Oily and shiny", "Dry and tight", "Oily T-zone, dry cheeks", "Balanced", "Easily irritated"}},
	{ID: 2, Text: "What are your main skin concerns?", Options: []string{"Breakouts", "Dullness", "Redness", "Dark circles", "Uneven texture", "Fine lines"}, MultiSelect: true},
	{ID: 3, Text: "How often do you follow a skincare routine?", Options: []string{"Morning and evening", "Once a day", "A few times a week", "Rarely"}},
	{ID: 4, Text: "How much time do you spend in the sun without SPF?", Options: []string{"Almost none", "Under an hour a day", "1-3 hours a day", "More than 3 hours"}},
	{ID: 5, Text: "How much water do you drink daily?", Options: []string{"Less than 1 liter", "1-2 liters", "More than 2 liters"}},
	{ID: 6, Text: "How many hours do you usually sleep?", Options: []string{"Less than 6", "6-7", "7-8", "More than 8"}},
	{ID: 7, Text: "How often do you eat sugary or fried food?", Options: []string{"Daily", "A few times a week", "Rarely", "Almost never"}},
	{ID: 8, Text: "What is your age range?", Options: []string{"Under 18", "18-24", "25-34", "35-44", "45+"}},
}

// GamePrompt and GameOptions define the ingredient mini-game shown at the
// halfway checkpoint.
const GamePrompt = "Quick game: which ingredient is best known for hydrating the skin?"

var GameOptions = []GameOption{
	{ID: "hyaluronic_acid", Label: "Hyaluronic Acid", Correct: true},
	{ID: "denatured_alcohol", Label: "Denatured Alcohol"},
	{ID: "synthetic_fragrance", Label: "Synthetic Fragrance"},
	{ID: "sls", Label: "Sodium Lauryl Sulfate"},
}

// GameIndex is the question index at which the mini-game interrupts.
func GameIndex() int {
	return len(Questions) / 2
}

// QuestionByID returns the index of the question with the given id.
func QuestionByID(id int) (int, bool) {
	for i, q := range Questions {
		if q.ID == id {
			return i, true
		}
	}
	return 0, false
}

// Answer holds a single-select or multi-select response. On the wire it is
// either a bare string or a string array, matching what the quiz client
// sends per question.
type Answer struct {
	Single string
	Multi  []string
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Multi != nil {
		return json.Marshal(a.Multi)
	}
	return json.Marshal(a.Single)
}

func (a *Answer) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '[' {
		return json.Unmarshal(b, &a.Multi)
	}
	return json.Unmarshal(b, &a.Single)
}

// Summary renders the answers as prompt context for report generation.
func Summary(answers map[int]Answer) string {
	out := ""
	for _, q := range Questions {
		a, ok := answers[q.ID]
		if !ok {
			continue
		}
		if a.Multi != nil {
			out += fmt.Sprintf("%s %v\n", q.Text, a.Multi)
		} else {
			out += fmt.Sprintf("%s %s\n", q.Text, a.Single)
		}
	}
	return out
}
