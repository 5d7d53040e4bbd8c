package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractApproximateFixture(t *testing.T) {
	text := `This looks like a granola bar.
Item: Crunchy Oat Bar
Rating: 64
Ingredients: oats, honey; almonds, palm oil, sugar
Harmful ingredients: palm oil, sugar`

	got := ExtractApproximate(text)

	assert.True(t, got.ScoreFound)
	assert.Equal(t, 64, got.Score)
	assert.Equal(t, "Crunchy Oat Bar", got.ProductName)
	assert.Equal(t, []string{"oats", "honey", "almonds", "palm oil", "sugar"}, got.Detected)
	assert.Equal(t, []string{"palm oil", "sugar"}, got.Harmful)
}

func TestExtractApproximateEmptyInput(t *testing.T) {
	got := ExtractApproximate("")

	assert.False(t, got.ScoreFound)
	assert.Empty(t, got.ProductName)
	assert.Nil(t, got.Detected)
	assert.Nil(t, got.Harmful)
}

func TestExtractApproximateListCaps(t *testing.T) {
	text := "ingredients: " + strings.Repeat("water, ", 20) + "glycerin\n" +
		"harmful: " + strings.Repeat("alcohol, ", 10) + "fragrance"

	got := ExtractApproximate(text)

	assert.Len(t, got.Detected, maxDetectedItems)
	assert.Len(t, got.Harmful, maxHarmfulItems)
}
