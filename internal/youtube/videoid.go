package youtube

import (
	"regexp"

	"youtube-sentiment/internal/apperr"
)

// YouTube video IDs are always 11 characters of this alphabet.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/shorts/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([a-zA-Z0-9_-]{11})`),
}

var bareVideoID = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// ExtractVideoID pulls the 11-character video ID out of any of the URL shapes
// YouTube uses. A bare video ID is accepted as-is.
func ExtractVideoID(url string) (string, error) {
	if url == "" {
		return "", apperr.Validation("youtube URL is required")
	}

	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], nil
		}
	}

	if bareVideoID.MatchString(url) {
		return url, nil
	}

	return "", apperr.Validation("invalid youtube URL: %q", url)
}
