package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values for optional configuration keys.
const (
	DefaultLogLevel  = "info"
	DefaultLogJSON   = true
	DefaultDBPath    = "storage.db"
	DefaultModelName = "gemini-2.0-flash"

	DefaultTemperature = 1.0
	DefaultMaxRetries  = 2
	DefaultRetryDelay  = 5 * time.Second

	// Telegram message length bounds used by the content validator.
	DefaultMaxLengthNoMedia   = 4096
	DefaultMaxLengthWithMedia = 4000
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.json", DefaultLogJSON)

	v.SetDefault("database.path", DefaultDBPath)

	v.SetDefault("gemini.model_name", DefaultModelName)
	v.SetDefault("gemini.temperature", DefaultTemperature)
	v.SetDefault("gemini.max_retries", DefaultMaxRetries)
	v.SetDefault("gemini.retry_delay", DefaultRetryDelay)

	v.SetDefault("content_validator.max_length_no_media", DefaultMaxLengthNoMedia)
	v.SetDefault("content_validator.max_length_with_media", DefaultMaxLengthWithMedia)
}
