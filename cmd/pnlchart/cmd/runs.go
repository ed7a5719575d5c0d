package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pnlchart/journal"
	"github.com/rustyeddy/pnlchart/report"
	"github.com/rustyeddy/pnlchart/series"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Query runs exported to a SQLite journal",
	Long: `Query and display runs recorded by "pnlchart export --journal sqlite".

Subcommands:
  list - List every run, oldest first
  show - Summarize a run from its stored ticks and flushes
  org  - Print a run as an Org-mode block

Examples:
  pnlchart runs list
  pnlchart runs show 01JBX3Q5W8M1ZK7T0V6C2N4HRD
  pnlchart runs org 01JBX3Q5W8M1ZK7T0V6C2N4HRD >> journal.org`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exported runs",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Summarize an exported run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsOrgCmd = &cobra.Command{
	Use:   "org <run-id>",
	Short: "Print an exported run as Org-mode",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsOrg,
}

var (
	runsDBPath  string
	runsFlushes bool
)

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsOrgCmd)

	runsCmd.PersistentFlags().StringVarP(&runsDBPath, "db", "d", "", "path to SQLite journal DB (default from config)")
	runsOrgCmd.Flags().BoolVar(&runsFlushes, "flushes", false, "append a table of the run's flushes")
}

func openRuns() (*journal.SQLiteJournal, error) {
	path := cfg.Journal.DBPath
	if runsDBPath != "" {
		path = runsDBPath
	}
	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runRunsList(cmd *cobra.Command, args []string) error {
	j, err := openRuns()
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.ListRuns(cmd.Context())
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN ID\tCREATED\tSOURCE\tMODE\tTICKS\tFLUSHES\tNET")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%.4f\n",
			r.RunID, r.Created.Format(time.RFC3339), r.Source, r.ProfitMode, r.Ticks, r.Flushes, r.NetProfit)
	}
	return tw.Flush()
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	j, err := openRuns()
	if err != nil {
		return err
	}
	defer j.Close()

	ctx := cmd.Context()
	run, err := j.GetRun(ctx, args[0])
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	tickRecs, err := j.ListTicks(ctx, run.RunID)
	if err != nil {
		return fmt.Errorf("query ticks: %w", err)
	}
	flushRecs, err := j.ListFlushes(ctx, run.RunID)
	if err != nil {
		return fmt.Errorf("query flushes: %w", err)
	}

	ticks := make([]series.Tick, len(tickRecs))
	for i, t := range tickRecs {
		ticks[i] = series.Tick{Time: t.Time, Mid: t.Mid, Profit: t.Profit}
	}
	flushes := make([]series.Flush, len(flushRecs))
	for i, f := range flushRecs {
		flushes[i] = series.Flush{Time: f.Time, Profit: f.Profit, Fills: f.Fills}
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Run ID:        %s\n", run.RunID)
	fmt.Fprintf(w, "Created:       %s\n", run.Created.Format(time.RFC3339))
	fmt.Fprintf(w, "Source:        %s\n", run.Source)
	fmt.Fprintf(w, "Schema:        %s\n", run.Schema)
	fmt.Fprintln(w)
	report.Print(w, report.Summarize(ticks, flushes, series.ProfitMode(run.ProfitMode)))
	return nil
}

func runRunsOrg(cmd *cobra.Command, args []string) error {
	j, err := openRuns()
	if err != nil {
		return err
	}
	defer j.Close()

	run, err := j.GetRun(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprint(w, journal.FormatRunOrg(run))
	if runsFlushes {
		flushes, err := j.ListFlushes(cmd.Context(), run.RunID)
		if err != nil {
			return fmt.Errorf("query flushes: %w", err)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "** Flushes")
		fmt.Fprint(w, journal.FormatFlushesOrg(flushes))
	}
	return nil
}
