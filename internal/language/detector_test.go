package language

import "testing"

func TestDetect(t *testing.T) {
	detector := NewDetector()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"english sentence", "This is a really nice video, thank you so much for sharing it with everyone", "en"},
		{"russian sentence", "Это очень интересное видео, большое спасибо за подробное объяснение", "ru"},
		{"spanish sentence", "Este es un video muy interesante, muchas gracias por compartirlo con nosotros", "es"},
		{"french sentence", "Je suis très content de cette vidéo et je la recommande à tout le monde", "fr"},
		{"empty", "", Unknown},
		{"whitespace only", "   \n\t ", Unknown},
		{"emoji only", "😂😂😂 👍", Unknown},
		{"punctuation only", "!!! ??? ...", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detector.Detect(tt.text)
			if got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

// Whatlanggo reports low confidence even for clear full sentences; the
// detector must still return its best guess so the translation stage runs.
func TestDetectBestGuessOnLowConfidence(t *testing.T) {
	detector := NewDetector()

	sentences := []string{
		"Это очень интересное видео, большое спасибо за подробное объяснение",
		"Je suis très content de cette vidéo et je la recommande à tout le monde",
		"Este es un video muy interesante, muchas gracias por compartirlo con nosotros",
	}
	for _, text := range sentences {
		if got := detector.Detect(text); got == Unknown {
			t.Errorf("Detect(%q) = %q, want a concrete language code", text, got)
		}
	}
}

func TestDetectDeterministic(t *testing.T) {
	detector := NewDetector()
	text := "The weather has been lovely all week and the garden is finally blooming"

	first := detector.Detect(text)
	for i := 0; i < 5; i++ {
		if got := detector.Detect(text); got != first {
			t.Fatalf("detection is not deterministic: %q vs %q", got, first)
		}
	}
}
