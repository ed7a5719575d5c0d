package cmd

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/rustyeddy/pnlchart/series"
)

// built is the output of one aggregation run over a log file.
type built struct {
	ticks   []series.Tick
	flushes []series.Flush
	stats   series.Stats
	mode    series.ProfitMode
}

func buildSeries(path string) (*built, error) {
	opts, err := cfg.SeriesOptions()
	if err != nil {
		return nil, err
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer fh.Close()

	agg := series.New(append(opts, series.WithLogger(zlog.With(zap.String("source", path))))...)
	ticks, err := agg.RunReader(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &built{
		ticks:   ticks,
		flushes: agg.Flushes(),
		stats:   agg.Stats(),
		mode:    agg.Mode(),
	}, nil
}
