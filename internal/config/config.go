package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of studytrackr.
type Config struct {
	// Source is the hosting root of the data files: an http(s) origin or a
	// local directory containing data/*.json.
	Source      string
	LogLevel    string
	LogFile     string
	HTTPTimeout time.Duration
	ExportDir   string
}

const (
	envSource      = "STUDYTRACKR_SOURCE"
	envLogLevel    = "STUDYTRACKR_LOG_LEVEL"
	envLogFile     = "STUDYTRACKR_LOG_FILE"
	envHTTPTimeout = "STUDYTRACKR_HTTP_TIMEOUT"
	envExportDir   = "STUDYTRACKR_EXPORT_DIR"

	defaultSource      = "public"
	defaultLogLevel    = "info"
	defaultHTTPTimeout = 10 * time.Second
)

// Load reads .env (if present) and the environment, then fills defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Source:    os.Getenv(envSource),
		LogLevel:  os.Getenv(envLogLevel),
		LogFile:   os.Getenv(envLogFile),
		ExportDir: os.Getenv(envExportDir),
	}

	cfg.HTTPTimeout = defaultHTTPTimeout
	if v := os.Getenv(envHTTPTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", envHTTPTimeout, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("%s must not be negative", envHTTPTimeout)
		}
		cfg.HTTPTimeout = d
	}

	if cfg.Source == "" {
		cfg.Source = defaultSource
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.LogFile == "" {
		path, err := DefaultLogPath()
		if err != nil {
			return nil, err
		}
		cfg.LogFile = path
	}
	if cfg.ExportDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.ExportDir = home
	}

	return cfg, nil
}

// DefaultLogPath returns ~/.config/studytrackr/studytrackr.log
func DefaultLogPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "studytrackr", "studytrackr.log"), nil
}
