// Package config provides configuration loading and validation for perfsum.
package config

import "path/filepath"

// Config is the root configuration structure loaded from YAML. Every field
// can be overridden from the environment with a PERFSUM_ prefix.
type Config struct {
	// OutputDir is where report files are written.
	OutputDir string `yaml:"output_dir" env:"OUTPUT_DIR"`

	// LNIATA is the default terminal filter for the metrics command.
	LNIATA string `yaml:"lniata" env:"LNIATA"`

	// Strict turns correlation problems into errors.
	Strict bool `yaml:"strict" env:"STRICT"`

	// SummaryFormat is text or json.
	SummaryFormat string `yaml:"summary_format" env:"SUMMARY_FORMAT"`

	// MetricsTextfile, when set, receives the run gauges in Prometheus
	// text format.
	MetricsTextfile string `yaml:"metrics_textfile" env:"METRICS_TEXTFILE"`

	Files FilesConfig `yaml:"files"`
}

// FilesConfig names the report files inside OutputDir.
type FilesConfig struct {
	Pricing     string `yaml:"pricing" env:"PRICING_FILE"`
	Dump        string `yaml:"dump" env:"DUMP_FILE"`
	FareDisplay string `yaml:"fare_display" env:"FD_FILE"`
}

// OutputPath returns name joined to the output directory.
func (c *Config) OutputPath(name string) string {
	return filepath.Join(c.OutputDir, name)
}
