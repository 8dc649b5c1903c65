package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Dmitrytsr966/Post-Telegram-RAG-LM-Studio-Web-BAG/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

const minimalConfig = `
telegram:
  token: "123:abc"
  channel_id: -1001234567890
gemini:
  api_key: "test-key"
`

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Log.Level != config.DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, config.DefaultLogLevel)
	}
	if cfg.Database.Path != config.DefaultDBPath {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, config.DefaultDBPath)
	}
	if cfg.ContentValidator.MaxLengthNoMedia != config.DefaultMaxLengthNoMedia {
		t.Errorf("MaxLengthNoMedia = %d, want %d",
			cfg.ContentValidator.MaxLengthNoMedia, config.DefaultMaxLengthNoMedia)
	}
	if cfg.ContentValidator.MaxLengthWithMedia != config.DefaultMaxLengthWithMedia {
		t.Errorf("MaxLengthWithMedia = %d, want %d",
			cfg.ContentValidator.MaxLengthWithMedia, config.DefaultMaxLengthWithMedia)
	}
	if cfg.Telegram.ChannelID != -1001234567890 {
		t.Errorf("Telegram.ChannelID = %d, want -1001234567890", cfg.Telegram.ChannelID)
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
log:
  level: debug
  json: false
content_validator:
  max_length_no_media: 2048
  max_length_with_media: 2000
scheduler:
  tasks:
    publish_post:
      enabled: true
      schedule: "0 * * * *"
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Log.Level != "debug" || cfg.Log.JSON {
		t.Errorf("log config = %+v, want debug/text", cfg.Log)
	}
	if cfg.ContentValidator.MaxLengthNoMedia != 2048 {
		t.Errorf("MaxLengthNoMedia = %d, want 2048", cfg.ContentValidator.MaxLengthNoMedia)
	}
	if cfg.ContentValidator.MaxLengthWithMedia != 2000 {
		t.Errorf("MaxLengthWithMedia = %d, want 2000", cfg.ContentValidator.MaxLengthWithMedia)
	}

	task, ok := cfg.Scheduler.Tasks["publish_post"]
	if !ok || !task.Enabled || task.Schedule != "0 * * * *" {
		t.Errorf("scheduler task = %+v, want enabled hourly publish_post", task)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	path := writeConfig(t, `
log:
  level: info
`)

	if _, err := config.Load(path); err == nil {
		t.Fatal("Load() succeeded without telegram token, want validation error")
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
log:
  level: loud
`)

	if _, err := config.Load(path); err == nil {
		t.Fatal("Load() succeeded with invalid log level, want validation error")
	}
}
