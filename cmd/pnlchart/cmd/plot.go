package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pnlchart/chart"
	"github.com/rustyeddy/pnlchart/report"
)

var plotCmd = &cobra.Command{
	Use:   "plot <log>",
	Short: "Render mid price and running profit as a PNG",
	Long: `Aggregate a strategy log and draw the minute series: mid price in the
top panel, running realized profit in the bottom panel.

Example:
  pnlchart plot logs/hft.2024-11-03 -o eurusd.png`,
	Args: cobra.ExactArgs(1),
	RunE: runPlot,
}

var (
	plotOutput string
	plotTitle  string
	plotQuiet  bool
)

func init() {
	rootCmd.AddCommand(plotCmd)

	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "PNG path (default from config)")
	plotCmd.Flags().StringVarP(&plotTitle, "title", "t", "", "chart title (default from config)")
	plotCmd.Flags().BoolVarP(&plotQuiet, "quiet", "q", false, "skip the summary")
}

func runPlot(cmd *cobra.Command, args []string) error {
	b, err := buildSeries(args[0])
	if err != nil {
		return err
	}

	out := cfg.Chart.Output
	if plotOutput != "" {
		out = plotOutput
	}
	title := cfg.Chart.Title
	if plotTitle != "" {
		title = plotTitle
	}

	err = chart.Render(out, b.ticks, chart.Options{
		Title:  title,
		Width:  cfg.Chart.Width,
		Height: cfg.Chart.Height,
		Mode:   b.mode,
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ Wrote chart: %s (%d ticks, %d flushes)\n", out, len(b.ticks), len(b.flushes))
	if !plotQuiet {
		fmt.Fprintln(w)
		report.Print(w, report.Summarize(b.ticks, b.flushes, b.mode))
	}
	return nil
}
