package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Sentiment labels assigned to a comment.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// LanguageDistribution maps ISO language codes to comment counts. Stored as
// JSONB in the video_analyses table.
type LanguageDistribution map[string]int

func (d LanguageDistribution) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

func (d *LanguageDistribution) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = LanguageDistribution{}
		return nil
	default:
		return fmt.Errorf("unsupported type %T for LanguageDistribution", src)
	}
}

// VideoAnalysis represents one analysis run over a video's comments,
// immutable after creation. Re-running the analysis creates a new record.
type VideoAnalysis struct {
	ID            int64                `db:"id" json:"id"`
	UserID        int64                `db:"user_id" json:"user_id"`
	YouTubeURL    string               `db:"youtube_url" json:"youtube_url"`
	VideoID       string               `db:"video_id" json:"video_id"`
	Title         *string              `db:"title" json:"title,omitempty"`
	TotalComments int                  `db:"total_comments" json:"total_comments"`
	PositiveCount int                  `db:"positive_count" json:"positive_count"`
	NegativeCount int                  `db:"negative_count" json:"negative_count"`
	NeutralCount  int                  `db:"neutral_count" json:"neutral_count"`
	ToxicCount    int                  `db:"toxic_count" json:"toxic_count"`
	Languages     LanguageDistribution `db:"language_distribution" json:"language_distribution"`
	CreatedAt     time.Time            `db:"created_at" json:"created_at"`
}

// SentimentDistribution returns the per-label tallies as a map, the shape the
// chatbot prompt and dashboard responses use.
func (a *VideoAnalysis) SentimentDistribution() map[string]int {
	return map[string]int{
		SentimentPositive: a.PositiveCount,
		SentimentNegative: a.NegativeCount,
		SentimentNeutral:  a.NeutralCount,
	}
}

// CommentResult represents one scored comment belonging to a VideoAnalysis.
// Rows are written in bulk during a single run and never mutated; they are
// removed only by cascading deletion of the parent analysis.
type CommentResult struct {
	ID               int64      `db:"id" json:"id"`
	AnalysisID       int64      `db:"analysis_id" json:"analysis_id"`
	CommentID        string     `db:"comment_id" json:"comment_id"`
	Author           string     `db:"author" json:"author"`
	Text             string     `db:"text" json:"text"`
	TranslatedText   *string    `db:"translated_text" json:"translated_text,omitempty"`
	OriginalLanguage string     `db:"original_language" json:"original_language"`
	Sentiment        string     `db:"sentiment" json:"sentiment"`
	Polarity         float64    `db:"polarity" json:"polarity"`
	IsToxic          bool       `db:"is_toxic" json:"is_toxic"`
	PublishedAt      *time.Time `db:"published_at" json:"published_at,omitempty"`
	LikeCount        int64      `db:"like_count" json:"like_count"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}
