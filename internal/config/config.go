package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string `env:"PORT" env-default:"8080"`
	DatabaseType   string `env:"DATABASE_TYPE" env-default:"sqlite"`
	DatabasePath   string `env:"DB_PATH" env-default:"./dictate.db"`
	DatabaseURL    string `env:"DATABASE_URL"`
	MigrationsPath string `env:"MIGRATIONS_PATH" env-default:"./migrations"`
	StaticPath     string `env:"STATIC_PATH" env-default:"./static"`
	UploadMaxSize  int64  `env:"UPLOAD_MAX_SIZE" env-default:"1048576"`
	ExportFilename string `env:"EXPORT_FILENAME" env-default:"dictation-sentences.json"`

	TTS TTSConfig
	Log LogConfig
}

// TTSConfig controls the speech collaborator
type TTSConfig struct {
	Enabled  bool   `env:"TTS_ENABLED" env-default:"true"`
	Language string `env:"TTS_LANGUAGE" env-default:"en"`
}

// LogConfig controls the process logger
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks the values that cannot be defaulted away
func (c *Config) Validate() error {
	switch strings.ToLower(c.DatabaseType) {
	case "sqlite", "sqlite3", "":
		if c.DatabasePath == "" {
			return fmt.Errorf("DB_PATH is required for sqlite")
		}
	case "postgres", "postgresql", "mysql":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for %s", c.DatabaseType)
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}

	if c.ServerPort == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if !strings.HasSuffix(c.ExportFilename, ".json") {
		return fmt.Errorf("EXPORT_FILENAME must end with .json")
	}
	return nil
}
