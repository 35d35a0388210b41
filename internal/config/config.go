package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ulule/limiter/v3"

	"github.com/DeafMist/guestpost-report/internal/pipeline"
)

// Common contains the sheet layout parameters shared by every binary.
type Common struct {
	KeywordPattern string
	URLPattern     string
}

// Web describes the HTTP report server.
type Web struct {
	Common
	BindAddr        string
	UploadMaxBytes  int64
	UploadRate      limiter.Rate
	SessionTTL      time.Duration
	SessionCapacity int
}

// Report configures the command line report.
type Report struct {
	Common
}

// PipelineOptions returns the default pipeline options with the configured column patterns.
func (c Common) PipelineOptions() pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.KeywordPattern = c.KeywordPattern
	opts.URLPattern = c.URLPattern
	return opts
}

// LoadWeb builds a Web config from environment variables.
func LoadWeb() (*Web, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	c := &Web{
		Common:          loadCommon(),
		BindAddr:        getEnv("WEB_BIND_ADDR", "0.0.0.0:8080"),
		UploadMaxBytes:  getInt64("UPLOAD_MAX_BYTES", 32<<20),
		SessionTTL:      getDuration("SESSION_TTL", 2*time.Hour),
		SessionCapacity: getInt("SESSION_CAPACITY", 256),
	}

	if c.UploadMaxBytes <= 0 {
		return nil, fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	if c.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.SessionCapacity <= 0 {
		return nil, fmt.Errorf("SESSION_CAPACITY must be positive")
	}
	rate, err := limiter.NewRateFromFormatted(getEnv("UPLOAD_RATE_LIMIT", "30-M"))
	if err != nil {
		return nil, fmt.Errorf("UPLOAD_RATE_LIMIT: %w", err)
	}
	c.UploadRate = rate

	return c, nil
}

// LoadReport builds a Report config from environment variables.
func LoadReport() (*Report, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}
	return &Report{Common: loadCommon()}, nil
}

func loadCommon() Common {
	return Common{
		KeywordPattern: getEnv("KEYWORD_COLUMN_PATTERN", pipeline.DefaultKeywordPattern),
		URLPattern:     getEnv("URL_COLUMN_PATTERN", pipeline.DefaultURLPattern),
	}
}

// loadEnvFile applies ENV_FILE (default .env) when it exists. Variables already set win.
func loadEnvFile() error {
	path := getEnv("ENV_FILE", ".env")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
