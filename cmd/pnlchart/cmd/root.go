package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/pnlchart/config"
	"github.com/rustyeddy/pnlchart/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "pnlchart",
	Short: "Chart mid price and realized profit from strategy logs",
	Long: `pnlchart reads the log of a trading strategy, pairs its fills into
round trips and reduces the price stream to one point per minute.

It can:
  - Render the series as a two panel PNG (mid price, running profit)
  - Export ticks and flushes to CSV files or a SQLite journal
  - Query and summarize previously exported runs

Settings come from an optional config file, PNLCHART_* environment
variables (a .env file is loaded first) and the flags below.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile    string
	envFile    string
	logLevel   string
	profitMode string
	fillGaps   bool
	schemaName string

	cfg  *config.Config
	zlog = zap.NewNop()
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading PNLCHART_* variables")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&profitMode, "profit-mode", "", "per_minute or cumulative")
	pf.BoolVar(&fillGaps, "fill-gaps", false, "emit a tick for every minute without prices")
	pf.StringVar(&schemaName, "schema", "", "price line layout (v1, v2, v3)")
}

// setup loads configuration and builds the logger for every subcommand.
func setup(cmd *cobra.Command, args []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Persistent flags are merged into the executing command's flag set.
	pf := cmd.Flags()
	if pf.Changed("log-level") {
		c.Log.Level = logLevel
	}
	if pf.Changed("profit-mode") {
		c.Series.ProfitMode = profitMode
	}
	if pf.Changed("fill-gaps") {
		c.Series.FillGaps = fillGaps
	}
	if pf.Changed("schema") {
		c.Input.Schema = schemaName
		c.Input.PriceFields = nil
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	l, err := logger.New(c.Log.Level, c.Log.Format)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	cfg, zlog = c, l
	return nil
}
