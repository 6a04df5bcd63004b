package cmd

import (
	"fmt"

	"github.com/rustyeddy/bondpv/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	var (
		output   string
		validate string
	)

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate configuration files",
		Long: `Manage the files passed to bondpv --config.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  bondpv config init --output bond.yaml
  bondpv config validate --file bond.yaml`,
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if err := cfg.SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Created default configuration: %s\n", output)
			fmt.Fprintln(out, "\nEdit the file and run with:")
			fmt.Fprintf(out, "  bondpv --config %s\n", output)
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(validate)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			b := cfg.Bond
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Configuration valid: %s\n", validate)
			fmt.Fprintf(out, "  Bond: nominal %.2f, coupon %g%%, discount %g%%\n", b.NominalPrice, b.CouponRate, b.DiscountRate)
			fmt.Fprintf(out, "  Term: %g years, %g payments per year (%s)\n", b.Duration, b.Period, b.Method)
			fmt.Fprintf(out, "  Journal: %s\n", cfg.Journal.Type)
			return nil
		},
	}

	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(validateCmd)

	initCmd.Flags().StringVarP(&output, "output", "o", "bondpv.yaml", "output config file path")
	validateCmd.Flags().StringVarP(&validate, "file", "f", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("file")

	return configCmd
}
