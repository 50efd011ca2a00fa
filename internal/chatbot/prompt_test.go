package chatbot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testSummary() *Summary {
	return &Summary{
		VideoTitle:    "Test Video",
		TotalComments: 42,
		Sentiments:    map[string]int{"positive": 30, "negative": 5, "neutral": 7},
		Languages:     map[string]int{"en": 35, "es": 7},
		SampleComments: map[string][]string{
			"positive": {"great video!", "loved it"},
			"negative": {"I hate this"},
			"neutral":  {},
		},
	}
}

func TestBuildPromptContainsAnalysisData(t *testing.T) {
	prompt := BuildPrompt("What do people think?", testSummary())

	assert.Contains(t, prompt, "=== ANALYSIS DATA ===")
	assert.Contains(t, prompt, "Video: Test Video")
	assert.Contains(t, prompt, "Total Comments Analyzed: 42")
	assert.Contains(t, prompt, "positive: 30")
	assert.Contains(t, prompt, "negative: 5")
	assert.Contains(t, prompt, "en: 35")
	assert.Contains(t, prompt, "Positive comments:")
	assert.Contains(t, prompt, "1. great video!")
	assert.Contains(t, prompt, "2. loved it")
	assert.Contains(t, prompt, "Negative comments:")
	assert.Contains(t, prompt, "=== QUESTION ===\nWhat do people think?")
	assert.Contains(t, prompt, "under 200 words")
}

func TestBuildPromptOmitsEmptySections(t *testing.T) {
	summary := testSummary()
	summary.VideoTitle = ""
	prompt := BuildPrompt("q", summary)
	assert.NotContains(t, prompt, "Video:")
	// neutral has no samples, so no heading either
	assert.NotContains(t, prompt, "Neutral comments:")
}

func TestBuildPromptDeterministic(t *testing.T) {
	first := BuildPrompt("q", testSummary())
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, BuildPrompt("q", testSummary()))
	}
}

func TestBuildPromptNilSummary(t *testing.T) {
	assert.Equal(t, "just the question", BuildPrompt("just the question", nil))
}

func TestBuildPromptQuestionBeforeInstructions(t *testing.T) {
	prompt := BuildPrompt("q", testSummary())
	q := strings.Index(prompt, "=== QUESTION ===")
	instr := strings.Index(prompt, "=== INSTRUCTIONS ===")
	assert.Greater(t, instr, q)
}
