package config

// Default values for configuration.
const (
	DefaultOutputDir     = "."
	DefaultSummaryFormat = "text"
	DefaultPricingFile   = "performance.csv"
	DefaultDumpFile      = "performance.out"
	DefaultFdFile        = "fd_performance.csv"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "PERFSUM_"

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:     DefaultOutputDir,
		SummaryFormat: DefaultSummaryFormat,
		Files: FilesConfig{
			Pricing:     DefaultPricingFile,
			Dump:        DefaultDumpFile,
			FareDisplay: DefaultFdFile,
		},
	}
}
