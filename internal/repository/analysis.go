package repository

import (
	"context"
	"database/sql"
	"fmt"

	"youtube-sentiment/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a requested analysis does not exist or is not
// owned by the requesting user.
var ErrNotFound = sql.ErrNoRows

type AnalysisRepository interface {
	// SaveAnalysis inserts the analysis record and all of its comment results
	// in a single transaction. On return analysis.ID and CreatedAt are set and
	// every comment carries the new AnalysisID.
	SaveAnalysis(ctx context.Context, analysis *models.VideoAnalysis, comments []models.CommentResult) error
	ListByUser(ctx context.Context, userID int64) ([]models.VideoAnalysis, error)
	GetByID(ctx context.Context, id, userID int64) (*models.VideoAnalysis, error)
	GetComments(ctx context.Context, analysisID int64) ([]models.CommentResult, error)
	// SampleComments returns up to limit comments with the given sentiment,
	// strongest polarity first. Used for the chatbot context.
	SampleComments(ctx context.Context, analysisID int64, sentiment string, limit int) ([]models.CommentResult, error)
	Delete(ctx context.Context, id, userID int64) error
	UserStats(ctx context.Context, userID int64) (*UserStats, error)
}

// UserStats aggregates a user's analyses for the dashboard endpoint.
type UserStats struct {
	TotalAnalyses int `db:"total_analyses" json:"total_analyses"`
	TotalComments int `db:"total_comments" json:"total_comments"`
	PositiveCount int `db:"positive_count" json:"positive_count"`
	NegativeCount int `db:"negative_count" json:"negative_count"`
	NeutralCount  int `db:"neutral_count" json:"neutral_count"`
	ToxicCount    int `db:"toxic_count" json:"toxic_count"`
}

type analysisRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAnalysisRepository(db *sqlx.DB, logger *zap.Logger) AnalysisRepository {
	return &analysisRepository{db: db, logger: logger}
}

func (r *analysisRepository) SaveAnalysis(ctx context.Context, analysis *models.VideoAnalysis, comments []models.CommentResult) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO video_analyses
		(user_id, youtube_url, video_id, title, total_comments, positive_count, negative_count, neutral_count, toxic_count, language_distribution)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`
	err = tx.QueryRowxContext(ctx, query,
		analysis.UserID, analysis.YouTubeURL, analysis.VideoID, analysis.Title,
		analysis.TotalComments, analysis.PositiveCount, analysis.NegativeCount,
		analysis.NeutralCount, analysis.ToxicCount, analysis.Languages,
	).Scan(&analysis.ID, &analysis.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO comment_results
		(analysis_id, comment_id, author, text, translated_text, original_language, sentiment, polarity, is_toxic, published_at, like_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`)
	if err != nil {
		return fmt.Errorf("failed to prepare comment insert: %w", err)
	}
	defer stmt.Close()

	for i := range comments {
		c := &comments[i]
		c.AnalysisID = analysis.ID
		_, err = stmt.ExecContext(ctx,
			c.AnalysisID, c.CommentID, c.Author, c.Text, c.TranslatedText,
			c.OriginalLanguage, c.Sentiment, c.Polarity, c.IsToxic, c.PublishedAt, c.LikeCount)
		if err != nil {
			return fmt.Errorf("failed to insert comment result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit analysis: %w", err)
	}

	r.logger.Info("Analysis saved",
		zap.Int64("analysis_id", analysis.ID),
		zap.String("video_id", analysis.VideoID),
		zap.Int("comments", len(comments)))
	return nil
}

func (r *analysisRepository) ListByUser(ctx context.Context, userID int64) ([]models.VideoAnalysis, error) {
	analyses := []models.VideoAnalysis{}
	query := `SELECT * FROM video_analyses WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &analyses, query, userID); err != nil {
		return nil, err
	}
	return analyses, nil
}

func (r *analysisRepository) GetByID(ctx context.Context, id, userID int64) (*models.VideoAnalysis, error) {
	var analysis models.VideoAnalysis
	query := `SELECT * FROM video_analyses WHERE id = $1 AND user_id = $2`
	if err := r.db.GetContext(ctx, &analysis, query, id, userID); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (r *analysisRepository) GetComments(ctx context.Context, analysisID int64) ([]models.CommentResult, error) {
	comments := []models.CommentResult{}
	query := `SELECT * FROM comment_results WHERE analysis_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &comments, query, analysisID); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *analysisRepository) SampleComments(ctx context.Context, analysisID int64, sentiment string, limit int) ([]models.CommentResult, error) {
	comments := []models.CommentResult{}
	query := `SELECT * FROM comment_results
		WHERE analysis_id = $1 AND sentiment = $2
		ORDER BY ABS(polarity) DESC, id
		LIMIT $3`
	if err := r.db.SelectContext(ctx, &comments, query, analysisID, sentiment, limit); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *analysisRepository) Delete(ctx context.Context, id, userID int64) error {
	// comment_results go with it via ON DELETE CASCADE
	res, err := r.db.ExecContext(ctx, `DELETE FROM video_analyses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *analysisRepository) UserStats(ctx context.Context, userID int64) (*UserStats, error) {
	var stats UserStats
	query := `SELECT
		COUNT(*) AS total_analyses,
		COALESCE(SUM(total_comments), 0) AS total_comments,
		COALESCE(SUM(positive_count), 0) AS positive_count,
		COALESCE(SUM(negative_count), 0) AS negative_count,
		COALESCE(SUM(neutral_count), 0) AS neutral_count,
		COALESCE(SUM(toxic_count), 0) AS toxic_count
		FROM video_analyses WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &stats, query, userID); err != nil {
		return nil, err
	}
	return &stats, nil
}
