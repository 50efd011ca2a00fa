package language

import (
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
)

// Unknown is the language code stored when detection has nothing to work
// with (empty or symbol-only text).
const Unknown = "unknown"

// Detector wraps trigram-based language detection. Detection is pure and
// deterministic, so a single instance is safe for concurrent use.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the ISO 639-1 code of the text's language, falling back to
// the ISO 639-3 code for languages without a two-letter code, or Unknown.
func (d *Detector) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return Unknown
	}

	if !containsAlphanumeric(text) {
		return Unknown
	}

	// whatlanggo's confidence is low even for clear full sentences, so the
	// best guess is used as-is rather than gating on IsReliable.
	info := whatlanggo.Detect(text)

	code := info.Lang.Iso6391()
	if code == "" {
		code = info.Lang.Iso6393()
	}
	if code == "" {
		return Unknown
	}
	return code
}

func containsAlphanumeric(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
