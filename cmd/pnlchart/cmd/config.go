package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pnlchart/config"
	"github.com/rustyeddy/pnlchart/logline"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage pnlchart configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  pnlchart config init -o pnlchart.yaml
  pnlchart config validate -f pnlchart.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Long: `Create a new configuration file with default settings. Files ending in
.yaml or .yml are written as YAML, anything else as JSON.

Example:
  pnlchart config init -o pnlchart.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Check if a configuration file is valid and can be loaded.

Example:
  pnlchart config validate -f pnlchart.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "pnlchart.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.Default().SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ Created default configuration: %s\n", configInitOutput)
	fmt.Fprintln(w, "\nEdit the file and run with:")
	fmt.Fprintf(w, "  pnlchart plot --config %s <log>\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	c, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	schema := c.Input.Schema
	if len(c.Input.PriceFields) > 0 {
		names := make([]string, len(c.Input.PriceFields))
		for i, f := range c.Input.PriceFields {
			names[i] = f.Name
		}
		schema = "custom (" + strings.Join(names, " ") + ")"
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ Configuration valid: %s\n", configValidatePath)
	fmt.Fprintf(w, "  Schema: %s (built in: %s)\n", schema, strings.Join(logline.Variants(), ", "))
	fmt.Fprintf(w, "  Profit mode: %s  Fill gaps: %t\n", c.Series.ProfitMode, c.Series.FillGaps)
	fmt.Fprintf(w, "  Chart: %s (%dx%d)\n", c.Chart.Output, c.Chart.Width, c.Chart.Height)
	fmt.Fprintf(w, "  Journal: %s\n", c.Journal.Type)
	return nil
}
