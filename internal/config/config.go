// Package config loads burnbar's YAML configuration and owns the global
// structured logger.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// CountdownStyleSource selects which original element the countdown clone
// copies its styling from.
type CountdownStyleSource string

// Valid countdown style sources.
const (
	CountdownFromDuration  CountdownStyleSource = "duration"
	CountdownFromTimeUntil CountdownStyleSource = "time_until"
)

// Defaults applied when a field is absent from the config file.
const (
	DefaultCooldownMS    = 250
	DefaultAPIConstraint = ">= 1.0.0, < 2.0.0"
	DefaultLogLevel      = "info"
)

// Config is the root configuration document.
type Config struct {
	Overlay OverlayConfig `yaml:"overlay"`
	Host    HostConfig    `yaml:"host"`
	Logging LoggingConfig `yaml:"logging"`
}

// OverlayConfig tunes the overlay component.
type OverlayConfig struct {
	// CountdownStyleSource is "duration" or "time_until".
	CountdownStyleSource CountdownStyleSource `yaml:"countdown_style_source"`

	// CooldownMS is the minimum gap between discovery attempts.
	CooldownMS int `yaml:"cooldown_ms"`
}

// HostConfig describes expectations about the embedding host.
type HostConfig struct {
	// APIConstraint is a semver range the host UI API must satisfy.
	APIConstraint string `yaml:"api_constraint"`
}

// LoggingConfig controls the global structured logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Overlay: OverlayConfig{
			CountdownStyleSource: CountdownFromDuration,
			CooldownMS:           DefaultCooldownMS,
		},
		Host: HostConfig{
			APIConstraint: DefaultAPIConstraint,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load reads the config file at path, merging it over the defaults. An
// empty path or a missing file yields the defaults without error; a file
// that exists but cannot be parsed or validated is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyDefaults backfills fields the file left at their zero value. An
// explicit `cooldown_ms: 0` is indistinguishable from an absent field and
// gets the default rather than a validation error.
func applyDefaults(cfg *Config) {
	if cfg.Overlay.CountdownStyleSource == "" {
		cfg.Overlay.CountdownStyleSource = CountdownFromDuration
	}
	if cfg.Overlay.CooldownMS == 0 {
		cfg.Overlay.CooldownMS = DefaultCooldownMS
	}
	if cfg.Host.APIConstraint == "" {
		cfg.Host.APIConstraint = DefaultAPIConstraint
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
}

// Validate checks field values that Load cannot default away.
func (c Config) Validate() error {
	switch c.Overlay.CountdownStyleSource {
	case CountdownFromDuration, CountdownFromTimeUntil:
	default:
		return fmt.Errorf(
			"overlay.countdown_style_source must be %q or %q, got %q",
			CountdownFromDuration, CountdownFromTimeUntil,
			c.Overlay.CountdownStyleSource)
	}

	if c.Overlay.CooldownMS < 0 {
		return fmt.Errorf("overlay.cooldown_ms must be >= 0, got %d", c.Overlay.CooldownMS)
	}

	if _, err := semver.NewConstraint(c.Host.APIConstraint); err != nil {
		return fmt.Errorf("host.api_constraint %q is not a valid semver range: %w",
			c.Host.APIConstraint, err)
	}
	return nil
}

// Cooldown returns the overlay cooldown as a duration.
func (c Config) Cooldown() time.Duration {
	return time.Duration(c.Overlay.CooldownMS) * time.Millisecond
}
