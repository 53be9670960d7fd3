package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
output_dir: /tmp/reports
lniata: AABBCC
strict: true
summary_format: json
files:
  pricing: run.csv
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.OutputDir != "/tmp/reports" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "/tmp/reports")
	}
	if cfg.LNIATA != "AABBCC" {
		t.Errorf("LNIATA = %q, want %q", cfg.LNIATA, "AABBCC")
	}
	if !cfg.Strict {
		t.Error("Strict = false, want true")
	}
	if cfg.SummaryFormat != "json" {
		t.Errorf("SummaryFormat = %q, want %q", cfg.SummaryFormat, "json")
	}
	if cfg.Files.Pricing != "run.csv" {
		t.Errorf("Files.Pricing = %q, want %q", cfg.Files.Pricing, "run.csv")
	}
	if cfg.Files.Dump != DefaultDumpFile {
		t.Errorf("Files.Dump = %q, want default %q", cfg.Files.Dump, DefaultDumpFile)
	}
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, DefaultOutputDir)
	}
	if cfg.Files.FareDisplay != DefaultFdFile {
		t.Errorf("Files.FareDisplay = %q, want %q", cfg.Files.FareDisplay, DefaultFdFile)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	content := `invalid: yaml: content: [`
	path := writeTempFile(t, "invalid.yaml", content)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PERFSUM_LNIATA", "DDEEFF")
	t.Setenv("PERFSUM_STRICT", "true")
	t.Setenv("PERFSUM_PRICING_FILE", "env.csv")
	t.Setenv("PERFSUM_FD_FILE", "env_fd.csv")

	path := writeTempFile(t, "config.yaml", "lniata: AABBCC\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LNIATA != "DDEEFF" {
		t.Errorf("LNIATA = %q, want env value %q", cfg.LNIATA, "DDEEFF")
	}
	if !cfg.Strict {
		t.Error("Strict = false, want true from env")
	}
	if cfg.Files.Pricing != "env.csv" {
		t.Errorf("Files.Pricing = %q, want %q", cfg.Files.Pricing, "env.csv")
	}
	if cfg.Files.FareDisplay != "env_fd.csv" {
		t.Errorf("Files.FareDisplay = %q, want %q", cfg.Files.FareDisplay, "env_fd.csv")
	}
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("PERFSUM_STRICT", "maybe")

	_, err := Load(context.Background(), "")
	if err == nil {
		t.Error("Load() expected error for unparsable PERFSUM_STRICT")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"json summary", func(c *Config) { c.SummaryFormat = "json" }, false},
		{"empty summary defaults to text", func(c *Config) { c.SummaryFormat = "" }, false},
		{"unknown summary", func(c *Config) { c.SummaryFormat = "xml" }, true},
		{"empty pricing file", func(c *Config) { c.Files.Pricing = "" }, true},
		{"pricing file with directory", func(c *Config) { c.Files.Pricing = "out/performance.csv" }, true},
		{"dump file is dot", func(c *Config) { c.Files.Dump = "." }, true},
		{"empty fare display file", func(c *Config) { c.Files.FareDisplay = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidate_FillsDefaults(t *testing.T) {
	cfg := &Config{Files: DefaultConfig().Files}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, DefaultOutputDir)
	}
	if cfg.SummaryFormat != DefaultSummaryFormat {
		t.Errorf("SummaryFormat = %q, want %q", cfg.SummaryFormat, DefaultSummaryFormat)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Files.Pricing != "performance.csv" {
		t.Errorf("Files.Pricing = %q, want performance.csv", cfg.Files.Pricing)
	}
	if cfg.Files.Dump != "performance.out" {
		t.Errorf("Files.Dump = %q, want performance.out", cfg.Files.Dump)
	}
	if cfg.Files.FareDisplay != "fd_performance.csv" {
		t.Errorf("Files.FareDisplay = %q, want fd_performance.csv", cfg.Files.FareDisplay)
	}
	if cfg.Strict {
		t.Error("Strict should default to false")
	}
}

func TestOutputPath(t *testing.T) {
	cfg := &Config{OutputDir: "/tmp/reports"}
	if got := cfg.OutputPath("performance.csv"); got != "/tmp/reports/performance.csv" {
		t.Errorf("OutputPath() = %q", got)
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("TEST_REPORT_DIR", "/srv/reports")

	tests := []struct {
		input string
		want  string
	}{
		{"${TEST_REPORT_DIR}", "/srv/reports"},
		{"$TEST_REPORT_DIR", "/srv/reports"},
		{"plain-value", "plain-value"},
		{"", ""},
		{"${NONEXISTENT_VAR}", ""},
	}

	for _, tt := range tests {
		got := expandEnvVar(tt.input)
		if got != tt.want {
			t.Errorf("expandEnvVar(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoad_ExpandsOutputDir(t *testing.T) {
	t.Setenv("TEST_REPORT_DIR", "/srv/reports")

	path := writeTempFile(t, "config.yaml", "output_dir: ${TEST_REPORT_DIR}\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputDir != "/srv/reports" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "/srv/reports")
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}
