package youtube

import (
	"context"
	"errors"
	"fmt"
	"time"

	"youtube-sentiment/internal/apperr"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTube allows at most 100 comment threads per page.
const pageSize = 100

// RawComment is a single top-level comment as returned by the YouTube Data
// API, before any analysis.
type RawComment struct {
	CommentID   string
	Author      string
	Text        string
	PublishedAt *time.Time
	LikeCount   int64
}

// Client fetches comment threads and video metadata via the YouTube Data API v3.
type Client struct {
	service *youtube.Service
	logger  *zap.Logger
}

// NewClient creates a YouTube Data API client authenticated with an API key.
func NewClient(ctx context.Context, apiKey string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube API key is required")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	return &Client{service: service, logger: logger}, nil
}

// FetchComments retrieves top-level comments for a video, most relevant
// first, paginating until the cap is reached or the video has no more
// comments. With fetchAll set the cap is ignored.
func (c *Client) FetchComments(ctx context.Context, videoID string, maxComments int, fetchAll bool) ([]RawComment, error) {
	comments := []RawComment{}
	pageToken := ""

	for {
		perPage := int64(pageSize)
		if !fetchAll {
			remaining := maxComments - len(comments)
			if remaining <= 0 {
				break
			}
			if remaining < pageSize {
				perPage = int64(remaining)
			}
		}

		call := c.service.CommentThreads.List([]string{"snippet"}).
			VideoId(videoID).
			MaxResults(perPage).
			Order("relevance")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Context(ctx).Do()
		if err != nil {
			return nil, classifyAPIError(err)
		}

		for _, item := range resp.Items {
			snippet := item.Snippet.TopLevelComment.Snippet
			comments = append(comments, RawComment{
				CommentID:   item.Id,
				Author:      snippet.AuthorDisplayName,
				Text:        snippet.TextDisplay,
				PublishedAt: parseTimestamp(snippet.PublishedAt),
				LikeCount:   snippet.LikeCount,
			})
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}

		c.logger.Debug("Fetched comment page",
			zap.String("video_id", videoID),
			zap.Int("total_so_far", len(comments)))
	}

	c.logger.Info("Finished fetching comments",
		zap.String("video_id", videoID),
		zap.Int("total", len(comments)))
	return comments, nil
}

// VideoTitle looks up the video's title. A missing video is an upstream
// error, not an empty result.
func (c *Client) VideoTitle(ctx context.Context, videoID string) (string, error) {
	resp, err := c.service.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return "", classifyAPIError(err)
	}
	if len(resp.Items) == 0 {
		return "", apperr.External("youtube", "videoNotFound", fmt.Errorf("video %s not found", videoID))
	}
	return resp.Items[0].Snippet.Title, nil
}

// classifyAPIError maps googleapi errors onto ExternalAPIError, preserving
// the upstream reason (commentsDisabled, quotaExceeded, videoNotFound).
func classifyAPIError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		reason := ""
		if len(gerr.Errors) > 0 {
			reason = gerr.Errors[0].Reason
		}
		return apperr.External("youtube", reason, err)
	}
	return apperr.External("youtube", "", err)
}

func parseTimestamp(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	return &t
}
