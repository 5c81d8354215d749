// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	apperrors "github.com/jdai-ca/atticus-privacy/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	// DataDir is the directory holding the per-installation key-value store
	// (audit chains, scan logs, signing seed).
	DataDir string

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// SensitivityThreshold selects which detection rules run: "strict" runs
	// every rule, "moderate" skips LOW-risk rules, "relaxed" skips LOW and
	// MODERATE.
	SensitivityThreshold string

	// Jurisdictions is a comma-separated list of active regulatory regions
	// (e.g., "US,CA"). Empty means all rules apply regardless of region.
	Jurisdictions string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		DataDir:              env.GetString("DATA_DIR", defaultDataDir()),
		LogLevel:             env.GetString("LOG_LEVEL", "info"),
		SensitivityThreshold: env.GetString("SENSITIVITY_THRESHOLD", "strict"),
		Jurisdictions:        env.GetString("JURISDICTIONS", ""),
		MetricsEnabled:       env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace:     env.GetString("METRICS_NAMESPACE", "privacy"),
	}
}

// Validate checks the configuration for values that would misconfigure the
// detection engine or storage. Returns ErrInvalidInput-wrapped details.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.DataDir, validation.Required),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.SensitivityThreshold, validation.In("strict", "moderate", "relaxed")),
	)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}

	for _, j := range c.JurisdictionList() {
		switch j {
		case "US", "CA", "EU", "UK":
		default:
			return apperrors.Wrapf(apperrors.ErrInvalidInput, "unknown jurisdiction %q", j)
		}
	}

	return nil
}

// JurisdictionList splits the comma-separated Jurisdictions value into
// normalized region codes. Returns nil when no jurisdictions are configured.
func (c *Config) JurisdictionList() []string {
	if strings.TrimSpace(c.Jurisdictions) == "" {
		return nil
	}
	parts := strings.Split(c.Jurisdictions, ",")
	regions := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			regions = append(regions, p)
		}
	}
	return regions
}

// defaultDataDir places the store under the user config directory, falling
// back to a relative directory when the home lookup fails.
func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".atticus"
	}
	return filepath.Join(base, "atticus", "privacy")
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			return
		}
		dir = parent
	}
}
