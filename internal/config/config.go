// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds every setting the CLI and server read at startup.
type Config struct {
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json"`

	// OCRLanguages are Tesseract codes, for example eng+swe.
	OCRLanguages   string `validate:"required"`
	TessdataPrefix string

	// DatabaseURL selects the Postgres family store. Without it DatabasePath
	// selects a SQLite file, and with neither the family tree lives in memory.
	DatabaseURL  string `validate:"omitempty,url"`
	DatabasePath string

	Preprocess       bool
	UpscaleWidth     int    `validate:"gte=0,lte=10000"`
	BatchConcurrency int    `validate:"gte=1,lte=64"`
	OutputLanguage   string `validate:"oneof=source target"`
}

// Default returns the settings used when no variable is set.
func Default() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		OCRLanguages:     "eng+swe",
		Preprocess:       true,
		UpscaleWidth:     2000,
		BatchConcurrency: 4,
		OutputLanguage:   "target",
	}
}

// Load reads the SIMAJA_* variables and TESSDATA_PREFIX. Unset variables keep
// their defaults. The result is validated.
func Load() (*Config, error) {
	d := Default()
	cfg := &Config{
		LogLevel:       strings.ToLower(getEnv("SIMAJA_LOG_LEVEL", d.LogLevel)),
		LogFormat:      strings.ToLower(getEnv("SIMAJA_LOG_FORMAT", d.LogFormat)),
		OCRLanguages:   getEnv("SIMAJA_OCR_LANGUAGES", d.OCRLanguages),
		TessdataPrefix: getEnv("TESSDATA_PREFIX", ""),
		DatabaseURL:    getEnv("SIMAJA_DATABASE_URL", ""),
		DatabasePath:   getEnv("SIMAJA_DATABASE_PATH", ""),
		Preprocess:     getEnvBool("SIMAJA_PREPROCESS", d.Preprocess),
		OutputLanguage: strings.ToLower(getEnv("SIMAJA_OUTPUT_LANGUAGE", d.OutputLanguage)),
	}

	var err error
	if cfg.UpscaleWidth, err = getEnvInt("SIMAJA_UPSCALE_WIDTH", d.UpscaleWidth); err != nil {
		return nil, err
	}
	if cfg.BatchConcurrency, err = getEnvInt("SIMAJA_BATCH_CONCURRENCY", d.BatchConcurrency); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Logger builds the process logger. It writes to w, which should be stderr
// whenever stdout carries the MCP protocol.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", key, value)
	}
	return n, nil
}
