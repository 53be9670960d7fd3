package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then PERFSUM_ environment variables.
func Load(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// applyEnvironmentOverrides applies PERFSUM_ environment variables. Unset
// variables leave the field alone.
func (c *Config) applyEnvironmentOverrides() error {
	return env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix})
}

// Validate checks a configuration for errors and fills in empty fields.
func Validate(cfg *Config) error {
	cfg.OutputDir = expandEnvVar(cfg.OutputDir)
	cfg.MetricsTextfile = expandEnvVar(cfg.MetricsTextfile)

	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.SummaryFormat == "" {
		cfg.SummaryFormat = DefaultSummaryFormat
	}

	switch cfg.SummaryFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: summary_format %q (must be text or json)", ErrInvalidConfig, cfg.SummaryFormat)
	}

	files := []struct {
		key  string
		name string
	}{
		{"files.pricing", cfg.Files.Pricing},
		{"files.dump", cfg.Files.Dump},
		{"files.fare_display", cfg.Files.FareDisplay},
	}
	for _, f := range files {
		if err := validateFileName(f.name); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, f.key, err)
		}
	}

	return nil
}

func validateFileName(name string) error {
	if name == "" {
		return errors.New("file name is required")
	}
	if filepath.Base(name) != name || name == "." || name == ".." {
		return fmt.Errorf("%q must be a plain file name; use output_dir for the directory", name)
	}
	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	// Handle ${VAR} format
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}

	// Handle $VAR format (no braces)
	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		return os.Getenv(s[1:])
	}

	return s
}
