package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/perfsum/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate a configuration file",
		Long: `Validate a perfsum configuration file and print the effective settings.

Checks:
  - YAML syntax
  - PERFSUM_ environment overrides
  - Summary format
  - Report file names

Without an argument the --config file (or the defaults) is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, g, args)
		},
	}
}

func runValidate(cmd *cobra.Command, g *GlobalOptions, args []string) error {
	configPath := g.ConfigFile
	if len(args) == 1 {
		configPath = args[0]
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()
	if configPath != "" {
		fmt.Fprintf(out, "Validating %s...\n", configPath)
	}

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n\n")
	fmt.Fprint(out, string(data))
	return nil
}
