// Package config manages application configuration from config.yaml,
// BOT_* environment variables, and default values.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config defines the application configuration. Values can be set via
// environment variables prefixed with BOT_ (e.g. BOT_TELEGRAM_TOKEN) or
// through config.yaml.
type Config struct {
	Log              LogConfig              `mapstructure:"log"`
	Telegram         TelegramConfig         `mapstructure:"telegram"`
	Gemini           GeminiConfig           `mapstructure:"gemini"`
	Database         DatabaseConfig         `mapstructure:"database"`
	Scheduler        SchedulerConfig        `mapstructure:"scheduler"`
	ContentValidator ContentValidatorConfig `mapstructure:"content_validator"`
}

// LogConfig controls log verbosity and output format.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot token and the channel posts are published to.
type TelegramConfig struct {
	Token     string `mapstructure:"token"      validate:"required"`
	ChannelID int64  `mapstructure:"channel_id" validate:"required"`
}

// GeminiConfig holds the AI generation settings.
type GeminiConfig struct {
	APIKey            string        `mapstructure:"api_key" validate:"required"`
	ModelName         string        `mapstructure:"model_name"`
	Temperature       float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	SystemInstruction string        `mapstructure:"system_instruction"`
	MaxRetries        int           `mapstructure:"max_retries" validate:"min=0,max=10"`
	RetryDelay        time.Duration `mapstructure:"retry_delay"`
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// SchedulerConfig maps task names to their cron schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig enables a named scheduled task and sets its cron expression.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// ContentValidatorConfig carries the two length bounds consumed by the
// content validation pipeline. Zero or missing values fall back to the
// validator's Telegram defaults.
type ContentValidatorConfig struct {
	MaxLengthNoMedia   int `mapstructure:"max_length_no_media"   validate:"min=0"`
	MaxLengthWithMedia int `mapstructure:"max_length_with_media" validate:"min=0"`
}

// Load reads configuration from the given YAML file, applies defaults and
// BOT_* environment overrides, and validates the result. A missing config
// file is not an error; defaults and environment values are used instead.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		slog.Info("configuration file not found, using defaults", "path", path)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// GetInt coerces malformed values to zero instead of failing, so the
	// validator limits degrade to their defaults rather than aborting startup.
	cfg.ContentValidator.MaxLengthNoMedia = v.GetInt("content_validator.max_length_no_media")
	cfg.ContentValidator.MaxLengthWithMedia = v.GetInt("content_validator.max_length_with_media")

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}
