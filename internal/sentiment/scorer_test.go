package sentiment

import (
	"testing"

	"youtube-sentiment/internal/models"
)

func TestLabelForPolarity(t *testing.T) {
	tests := []struct {
		polarity float64
		want     string
	}{
		{0.9, models.SentimentPositive},
		{0.11, models.SentimentPositive},
		{0.1, models.SentimentNeutral},
		{0.0, models.SentimentNeutral},
		{-0.1, models.SentimentNeutral},
		{-0.11, models.SentimentNegative},
		{-0.9, models.SentimentNegative},
	}
	for _, tt := range tests {
		got := LabelForPolarity(tt.polarity)
		if got != tt.want {
			t.Errorf("LabelForPolarity(%v) = %q, want %q", tt.polarity, got, tt.want)
		}
	}
}

func TestScoreValencedText(t *testing.T) {
	scorer := NewScorer()

	positive := scorer.Score("I love this, it is wonderful and amazing")
	if positive.Label != models.SentimentPositive {
		t.Errorf("expected positive label, got %q (polarity %v)", positive.Label, positive.Polarity)
	}
	if positive.Polarity <= 0 {
		t.Errorf("expected positive polarity, got %v", positive.Polarity)
	}

	negative := scorer.Score("this is horrible, I hate it so much")
	if negative.Label != models.SentimentNegative {
		t.Errorf("expected negative label, got %q (polarity %v)", negative.Label, negative.Polarity)
	}
	if negative.Polarity >= 0 {
		t.Errorf("expected negative polarity, got %v", negative.Polarity)
	}

	empty := scorer.Score("   ")
	if empty.Label != models.SentimentNeutral || empty.Polarity != 0 {
		t.Errorf("expected neutral zero score for blank text, got %+v", empty)
	}
}

func TestScoreDeterministic(t *testing.T) {
	scorer := NewScorer()
	text := "the editing was great but the audio was terrible"

	first := scorer.Score(text)
	second := scorer.Score(text)
	if first != second {
		t.Errorf("scoring is not deterministic: %+v vs %+v", first, second)
	}
}

func TestDetectToxicity(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"you are an idiot", true},
		{"You Are STUPID", true},
		{"this is garbage content", true},
		{"kys", true},
		{"just die already", true},
		{"what a great video, thanks for sharing", false},
		{"interesting perspective on the topic", false},
		{"", false},
		{"died my hair yesterday", false}, // \bdie\b must not match "died"
	}
	for _, tt := range tests {
		got := DetectToxicity(tt.text)
		if got != tt.want {
			t.Errorf("DetectToxicity(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
