package config

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// UploadMaxBytesDefault caps avatar uploads at 5 MiB.
const UploadMaxBytesDefault = 5 << 20

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr" validate:"required"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// Rooms is the fixed set of joinable rooms; order defines statistics order.
	Rooms []string `mapstructure:"rooms" yaml:"rooms" validate:"min=1,dive,required"`

	SessionSecret string        `mapstructure:"session_secret" yaml:"session_secret" validate:"required"`
	SessionTTL    time.Duration `mapstructure:"session_ttl" yaml:"session_ttl" validate:"gt=0"`

	UploadDir      string `mapstructure:"upload_dir" yaml:"upload_dir" validate:"required"`
	UploadMaxBytes int64  `mapstructure:"upload_max_bytes" yaml:"upload_max_bytes" validate:"gt=0"`
	DatabasePath   string `mapstructure:"database_path" yaml:"database_path" validate:"required"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		Rooms:             []string{"General", "Random", "Tech"},
		SessionSecret:     "tajna",
		SessionTTL:        12 * time.Hour,
		UploadDir:         "data/uploads",
		UploadMaxBytes:    UploadMaxBytesDefault,
		DatabasePath:      "data/sobachat.db",
	}
}

// Validate checks structural constraints on the loaded configuration.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}
