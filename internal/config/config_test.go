package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: ":9090"
database:
  url: "postgres://localhost:5432/app?sslmode=disable"
jwt:
  secret: "topsecret"
  ttl_hours: 48
youtube:
  api_key: "yt-key"
  max_comments: 500
gemini:
  api_key: "gm-key"
  model_name: "gemini-1.5-pro"
  max_retries: 5
  requests_per_minute: 4
translation:
  enabled: true
  target_language: "en"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != ":9090" {
		t.Errorf("Port = %q, want :9090", cfg.Server.Port)
	}
	if cfg.JWT.TTLHours != 48 {
		t.Errorf("TTLHours = %d, want 48", cfg.JWT.TTLHours)
	}
	if cfg.YouTube.MaxComments != 500 {
		t.Errorf("MaxComments = %d, want 500", cfg.YouTube.MaxComments)
	}
	if cfg.Gemini.ModelName != "gemini-1.5-pro" {
		t.Errorf("ModelName = %q, want gemini-1.5-pro", cfg.Gemini.ModelName)
	}
	if !cfg.Translation.Enabled {
		t.Error("Translation.Enabled = false, want true")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://localhost/app"
jwt:
  secret: "s"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != ":8080" {
		t.Errorf("Port = %q, want :8080", cfg.Server.Port)
	}
	if cfg.JWT.TTLHours != 24 {
		t.Errorf("TTLHours = %d, want 24", cfg.JWT.TTLHours)
	}
	if cfg.YouTube.MaxComments != 1000 {
		t.Errorf("MaxComments = %d, want 1000", cfg.YouTube.MaxComments)
	}
	if cfg.Gemini.ModelName != "gemini-2.0-flash" {
		t.Errorf("ModelName = %q, want gemini-2.0-flash", cfg.Gemini.ModelName)
	}
	if cfg.Gemini.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.Gemini.MaxRetries)
	}
	if cfg.Gemini.RequestsPerMinute != 8 {
		t.Errorf("RequestsPerMinute = %d, want 8", cfg.Gemini.RequestsPerMinute)
	}
	if cfg.Translation.TargetLanguage != "en" {
		t.Errorf("TargetLanguage = %q, want en", cfg.Translation.TargetLanguage)
	}
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("TEST_JWT_SECRET", "expanded-secret")
	t.Setenv("TEST_YT_KEY", "expanded-yt")

	path := writeConfig(t, `
jwt:
  secret: "${TEST_JWT_SECRET}"
youtube:
  api_key: "${TEST_YT_KEY}"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.JWT.Secret != "expanded-secret" {
		t.Errorf("Secret = %q, want expanded-secret", cfg.JWT.Secret)
	}
	if cfg.YouTube.APIKey != "expanded-yt" {
		t.Errorf("APIKey = %q, want expanded-yt", cfg.YouTube.APIKey)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("does/not/exist.yml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
