package analyzer

import (
	"context"
	"math"
	"sort"

	"youtube-sentiment/internal/models"
	"youtube-sentiment/internal/sentiment"
	"youtube-sentiment/internal/youtube"

	"go.uber.org/zap"
)

// How many example comments per label are kept for the chatbot context.
const sampleSize = 5

// CommentFetcher retrieves raw comments for a video.
type CommentFetcher interface {
	FetchComments(ctx context.Context, videoID string, maxComments int, fetchAll bool) ([]youtube.RawComment, error)
	VideoTitle(ctx context.Context, videoID string) (string, error)
}

// Detector identifies the language of a comment.
type Detector interface {
	Detect(text string) string
}

// Translator renders non-English text into English.
type Translator interface {
	TranslateToEnglish(ctx context.Context, text, srcLang string) (string, error)
}

// Scorer assigns sentiment and toxicity to (translated) comment text.
type Scorer interface {
	Score(text string) sentiment.Result
}

// Store persists a completed analysis together with its comment results.
type Store interface {
	SaveAnalysis(ctx context.Context, analysis *models.VideoAnalysis, comments []models.CommentResult) error
}

// Options control a single analysis run.
type Options struct {
	MaxComments int  // 0 means the configured default
	FetchAll    bool // ignore MaxComments and page until exhausted
}

// Result is what one pipeline run produces: the persisted analysis record,
// its comment results, and per-label sample comments for the chatbot.
type Result struct {
	Analysis       *models.VideoAnalysis
	Comments       []models.CommentResult
	SampleComments map[string][]string
}

// Analyzer runs the linear comment pipeline: fetch, detect and translate,
// score, aggregate, persist. Each analysis runs synchronously within one
// request; the stages hold no state between runs.
type Analyzer struct {
	fetcher    CommentFetcher
	detector   Detector
	translator Translator // nil disables the translation stage
	scorer     Scorer
	store      Store
	logger     *zap.Logger
	defaultMax int
}

func New(fetcher CommentFetcher, detector Detector, translator Translator, scorer Scorer, store Store, defaultMax int, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		fetcher:    fetcher,
		detector:   detector,
		translator: translator,
		scorer:     scorer,
		store:      store,
		logger:     logger,
		defaultMax: defaultMax,
	}
}

// Analyze fetches and scores the comments of the video behind url, persists
// the run for userID, and returns the aggregate result. Nothing is persisted
// when any stage before persistence fails.
func (a *Analyzer) Analyze(ctx context.Context, userID int64, url string, opts Options) (*Result, error) {
	videoID, err := youtube.ExtractVideoID(url)
	if err != nil {
		return nil, err
	}

	maxComments := opts.MaxComments
	if maxComments <= 0 {
		maxComments = a.defaultMax
	}

	raw, err := a.fetcher.FetchComments(ctx, videoID, maxComments, opts.FetchAll)
	if err != nil {
		return nil, err
	}

	title, err := a.fetcher.VideoTitle(ctx, videoID)
	if err != nil {
		// Comments fetched fine; a missing title should not fail the run.
		a.logger.Warn("Failed to fetch video title", zap.String("video_id", videoID), zap.Error(err))
		title = ""
	}

	comments := make([]models.CommentResult, 0, len(raw))
	for _, rc := range raw {
		comments = append(comments, a.processComment(ctx, rc))
	}

	analysis := a.aggregate(userID, url, videoID, title, comments)

	if err := a.store.SaveAnalysis(ctx, analysis, comments); err != nil {
		return nil, err
	}

	return &Result{
		Analysis:       analysis,
		Comments:       comments,
		SampleComments: SampleByLabel(comments, sampleSize),
	}, nil
}

// processComment runs one comment through language detection, translation
// and scoring. A translation outage degrades to scoring the original text;
// the run itself never fails on a single comment.
func (a *Analyzer) processComment(ctx context.Context, rc youtube.RawComment) models.CommentResult {
	lang := a.detector.Detect(rc.Text)

	scoredText := rc.Text
	var translated *string
	if a.translator != nil && lang != "en" && lang != "unknown" {
		text, err := a.translator.TranslateToEnglish(ctx, rc.Text, lang)
		if err != nil {
			a.logger.Warn("Translation failed, scoring original text",
				zap.String("comment_id", rc.CommentID),
				zap.String("language", lang),
				zap.Error(err))
		} else if text != "" && text != rc.Text {
			scoredText = text
			translated = &text
		}
	}

	score := a.scorer.Score(scoredText)

	return models.CommentResult{
		CommentID:        rc.CommentID,
		Author:           rc.Author,
		Text:             rc.Text,
		TranslatedText:   translated,
		OriginalLanguage: lang,
		Sentiment:        score.Label,
		Polarity:         score.Polarity,
		IsToxic:          score.IsToxic,
		PublishedAt:      rc.PublishedAt,
		LikeCount:        rc.LikeCount,
	}
}

// aggregate tallies the scored comments into a VideoAnalysis record. The
// stored counts are derived from the same slice that gets persisted, so the
// tallies always match the comment rows grouped by label.
func (a *Analyzer) aggregate(userID int64, url, videoID, title string, comments []models.CommentResult) *models.VideoAnalysis {
	analysis := &models.VideoAnalysis{
		UserID:        userID,
		YouTubeURL:    url,
		VideoID:       videoID,
		TotalComments: len(comments),
		Languages:     models.LanguageDistribution{},
	}
	if title != "" {
		analysis.Title = &title
	}

	for _, c := range comments {
		switch c.Sentiment {
		case models.SentimentPositive:
			analysis.PositiveCount++
		case models.SentimentNegative:
			analysis.NegativeCount++
		default:
			analysis.NeutralCount++
		}
		if c.IsToxic {
			analysis.ToxicCount++
		}
		analysis.Languages[c.OriginalLanguage]++
	}

	return analysis
}

// SampleByLabel picks up to n comments per sentiment label, strongest
// polarity first, for chatbot context and API responses.
func SampleByLabel(comments []models.CommentResult, n int) map[string][]string {
	byLabel := map[string][]models.CommentResult{}
	for _, c := range comments {
		byLabel[c.Sentiment] = append(byLabel[c.Sentiment], c)
	}

	samples := map[string][]string{}
	for _, label := range []string{models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral} {
		group := byLabel[label]
		sort.SliceStable(group, func(i, j int) bool {
			return math.Abs(group[i].Polarity) > math.Abs(group[j].Polarity)
		})
		texts := []string{}
		for i := 0; i < len(group) && i < n; i++ {
			texts = append(texts, group[i].Text)
		}
		samples[label] = texts
	}
	return samples
}
