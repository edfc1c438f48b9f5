// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the main application configuration struct.
type Config struct {
	HTTPPort string
	Database DatabaseConfig
	Uploads  UploadConfig
	Logging  LoggingConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type UploadConfig struct {
	// Dir is the root directory of the document blob store.
	Dir string
	// MaxFileSizeBytes caps a single uploaded file.
	MaxFileSizeBytes int64
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables, applying local-dev
// defaults for anything unset. godotenv is expected to have populated the
// environment before this runs.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "licensemanager")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("UPLOAD_MAX_FILE_SIZE", int64(10<<20)) // 10 MiB
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	return &Config{
		HTTPPort: v.GetString("HTTP_PORT"),
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Uploads: UploadConfig{
			Dir:              v.GetString("UPLOAD_DIR"),
			MaxFileSizeBytes: v.GetInt64("UPLOAD_MAX_FILE_SIZE"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}
