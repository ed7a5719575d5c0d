package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/pnlchart/chart"
	"github.com/rustyeddy/pnlchart/journal"
	"github.com/rustyeddy/pnlchart/pkg/id"
	"github.com/rustyeddy/pnlchart/report"
)

var exportCmd = &cobra.Command{
	Use:   "export <log>",
	Short: "Write the minute series to CSV files or a SQLite journal",
	Long: `Aggregate a strategy log and record the run, its ticks and its flushes.

Journals:
  csv    - ticks and flushes CSV files (rows carry the run id)
  sqlite - runs, ticks and flushes tables, queryable with "pnlchart runs"

Examples:
  pnlchart export logs/hft.2024-11-03 --journal sqlite --db runs.sqlite
  pnlchart export logs/hft.2024-11-03 --journal csv --ticks t.csv --flushes f.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var (
	exportJournal string
	exportDB      string
	exportTicks   string
	exportFlushes string
	exportChart   string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportJournal, "journal", "j", "", "journal type: csv or sqlite (default from config)")
	exportCmd.Flags().StringVarP(&exportDB, "db", "d", "", "SQLite journal path (default from config)")
	exportCmd.Flags().StringVar(&exportTicks, "ticks", "", "ticks CSV path (default from config)")
	exportCmd.Flags().StringVar(&exportFlushes, "flushes", "", "flushes CSV path (default from config)")
	exportCmd.Flags().StringVar(&exportChart, "chart", "", "also render the chart to this PNG and link it from the run")
}

func openJournal() (journal.Journal, string, error) {
	jc := cfg.Journal
	if exportJournal != "" {
		jc.Type = exportJournal
	}
	if exportDB != "" {
		jc.DBPath = exportDB
	}
	if exportTicks != "" {
		jc.TicksFile = exportTicks
	}
	if exportFlushes != "" {
		jc.FlushesFile = exportFlushes
	}

	switch jc.Type {
	case "csv":
		j, err := journal.NewCSV(jc.TicksFile, jc.FlushesFile)
		return j, jc.TicksFile + ", " + jc.FlushesFile, err
	case "sqlite":
		j, err := journal.NewSQLite(jc.DBPath)
		return j, jc.DBPath, err
	}
	return nil, "", fmt.Errorf("unknown journal type %q (want csv or sqlite)", jc.Type)
}

func runExport(cmd *cobra.Command, args []string) error {
	source := args[0]
	b, err := buildSeries(source)
	if err != nil {
		return err
	}

	if exportChart != "" {
		err := chart.Render(exportChart, b.ticks, chart.Options{
			Title:  cfg.Chart.Title,
			Width:  cfg.Chart.Width,
			Height: cfg.Chart.Height,
			Mode:   b.mode,
		})
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}

	j, where, err := openJournal()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}

	sum := report.Summarize(b.ticks, b.flushes, b.mode)
	run := journal.RunRecord{
		RunID:      id.New(),
		Created:    time.Now().UTC(),
		Source:     source,
		Schema:     cfg.Input.Schema,
		ProfitMode: string(b.mode),
		FillGaps:   cfg.Series.FillGaps,
		Start:      sum.Start,
		End:        sum.End,
		Ticks:      len(b.ticks),
		Flushes:    len(b.flushes),
		NetProfit:  sum.NetProfit,
		ChartPNG:   exportChart,
	}
	if len(cfg.Input.PriceFields) > 0 {
		run.Schema = "custom"
	}

	if err := journal.Export(j, run, b.ticks, b.flushes); err != nil {
		j.Close()
		return fmt.Errorf("export: %w", err)
	}
	if err := j.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}
	zlog.Info("run exported", zap.String("run_id", run.RunID), zap.String("journal", where))

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ Exported run %s\n", run.RunID)
	fmt.Fprintf(w, "  Journal: %s\n", where)
	fmt.Fprintf(w, "  Ticks: %d  Flushes: %d  Net profit: %.4f\n", run.Ticks, run.Flushes, run.NetProfit)
	if run.ChartPNG != "" {
		fmt.Fprintf(w, "  Chart: %s\n", run.ChartPNG)
	}
	return nil
}
