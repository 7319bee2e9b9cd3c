// Package config provides picker configuration and path management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/hightemp/countrypicker/internal/countries"
	"github.com/hightemp/countrypicker/internal/logging"
	"github.com/hightemp/countrypicker/internal/translations"
)

const (
	// AppName is the application name.
	AppName = "countrypicker"

	// ConfigDirName is the configuration directory name.
	ConfigDirName = ".countrypicker"

	// ConfigFileName is the configuration file name.
	ConfigFileName = "config.yaml"

	// DefaultLogLevel keeps the terminal quiet unless something is wrong.
	DefaultLogLevel = "warn"

	// DefaultLogMaxSizeMB is the default log file size before rotation.
	DefaultLogMaxSizeMB = 10

	// DefaultLogMaxBackups is the default number of rotated files kept.
	DefaultLogMaxBackups = 3

	// DefaultLogMaxAgeDays is the default retention of rotated files.
	DefaultLogMaxAgeDays = 28
)

// Config holds the picker configuration. Zero values mean "not set".
type Config struct {
	Language              string                 `yaml:"language"`
	CountryCode           string                 `yaml:"country_code"`
	CountryCodes          []string               `yaml:"country_codes"`
	CountryCodesFile      string                 `yaml:"country_codes_file"`
	WithFilter            bool                   `yaml:"with_filter"`
	WithFlag              bool                   `yaml:"with_flag"`
	WithCallingCode       bool                   `yaml:"with_calling_code"`
	WithCountryNameButton bool                   `yaml:"with_country_name_button"`
	Translations          translations.Overrides `yaml:"translations"`
	Placeholder           string                 `yaml:"placeholder"`
	CatalogFile           string                 `yaml:"catalog_file"`
	LogLevel              string                 `yaml:"log_level"`
	LogFile               string                 `yaml:"log_file"`
	LogRotation           logging.RotationConfig `yaml:"log_rotation"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		WithFilter:            true,
		WithFlag:              true,
		WithCallingCode:       true,
		WithCountryNameButton: true,
		LogLevel:              DefaultLogLevel,
		LogRotation: logging.RotationConfig{
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
			MaxAgeDays: DefaultLogMaxAgeDays,
		},
	}
}

// DefaultConfigDir returns the default configuration directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory
		home = "."
	}
	return filepath.Join(home, ConfigDirName)
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), ConfigFileName)
}

// Load reads the YAML file at path over DefaultConfig and validates the
// result. A missing file is an error only when mustExist is set.
func Load(path string, mustExist bool) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late and normalizes
// codes and language. Unknown countries and languages are not errors.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogRotation.MaxSizeMB < 0 || c.LogRotation.MaxBackups < 0 || c.LogRotation.MaxAgeDays < 0 {
		return fmt.Errorf("log_rotation values must not be negative")
	}

	c.Language = translations.NormalizeLanguage(c.Language)
	if c.Language != "" && !translations.IsBuiltin(c.Language) {
		logrus.WithField("language", c.Language).Debug("No built-in strings for language, using English")
	}
	c.CountryCode = strings.ToUpper(strings.TrimSpace(c.CountryCode))
	c.CountryCodes = NormalizeCodes(c.CountryCodes)
	return nil
}

// LoadCodesFile appends the codes listed in CountryCodesFile (one per line,
// # comments allowed) to CountryCodes. No-op when the file is not set.
func (c *Config) LoadCodesFile() error {
	if c.CountryCodesFile == "" {
		return nil
	}

	data, err := os.ReadFile(c.CountryCodesFile)
	if err != nil {
		return fmt.Errorf("failed to read country codes file: %w", err)
	}
	codes, err := countries.LoadCodes(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse country codes file: %w", err)
	}
	c.CountryCodes = append(c.CountryCodes, codes...)
	return nil
}

// NormalizeCodes upper-cases and trims codes and drops blanks. Comma
// separated entries are split.
func NormalizeCodes(codes []string) []string {
	var result []string
	for _, entry := range codes {
		for _, code := range strings.Split(entry, ",") {
			code = strings.ToUpper(strings.TrimSpace(code))
			if code != "" {
				result = append(result, code)
			}
		}
	}
	return result
}

