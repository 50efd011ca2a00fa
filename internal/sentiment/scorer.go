package sentiment

import (
	"regexp"
	"strings"

	"youtube-sentiment/internal/models"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"
)

// Polarity cutoffs for the three-way label split.
const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// Result is the outcome of scoring a single comment.
type Result struct {
	Label    string
	Polarity float64
	IsToxic  bool
}

// Scorer assigns a sentiment label and a toxicity flag to comment text.
// VADER supplies the polarity; toxicity is a keyword and pattern check over
// the (translated) text. Safe for concurrent use.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Score analyzes one comment. Text is expected to be English; callers run
// the translation stage first.
func (s *Scorer) Score(text string) Result {
	polarity := 0.0
	if strings.TrimSpace(text) != "" {
		parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
		polarity = sentitext.PolarityScore(parsed).Compound
	}

	return Result{
		Label:    LabelForPolarity(polarity),
		Polarity: polarity,
		IsToxic:  DetectToxicity(text),
	}
}

// LabelForPolarity maps a compound polarity score in [-1, 1] to a label.
func LabelForPolarity(polarity float64) string {
	switch {
	case polarity > positiveThreshold:
		return models.SentimentPositive
	case polarity < negativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

var toxicityKeywords = []string{
	"hate", "kill", "stupid", "idiot", "dumb", "worthless", "disgusting",
	"disgust", "shut up", "shutup", "shut your", "go to hell", "damn",
	"retard", "retarded", "moron", "moronic", "crap", "trash", "garbage",
	"useless", "pathetic", "awful", "terrible", "horrible", "horrid",
}

var toxicityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\byou\s+are\s+(a\s+)?(idiot|stupid|dumb|moron|retard)`),
	regexp.MustCompile(`\bfuck`),
	regexp.MustCompile(`\bshit\b`),
	regexp.MustCompile(`\bdie\b`),
	regexp.MustCompile(`\bkys\b`), // "kill yourself"
}

// DetectToxicity flags potentially harmful comments with a keyword list and
// a handful of patterns. It runs on the translated text, so the list only
// needs to cover English.
func DetectToxicity(text string) bool {
	lower := strings.ToLower(text)

	for _, keyword := range toxicityKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	for _, pattern := range toxicityPatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}

	return false
}
