package journal

import (
	"fmt"
	"time"

	"github.com/rustyeddy/pnlchart/series"
)

// RunRecord describes one exported series.
type RunRecord struct {
	RunID      string
	Created    time.Time
	Source     string // input log path
	Schema     string
	ProfitMode string
	FillGaps   bool

	// Time span covered by the ticks
	Start time.Time
	End   time.Time

	Ticks     int
	Flushes   int
	NetProfit float64

	// Optional rendered chart linked from the org block
	ChartPNG string
}

// TickRecord is one chart point of a run.
type TickRecord struct {
	RunID  string
	Time   time.Time
	Mid    float64
	Profit float64
}

// FlushRecord is one realized round trip of a run.
type FlushRecord struct {
	RunID  string
	Time   time.Time
	Profit float64
	Fills  int
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordTick(TickRecord) error
	RecordFlush(FlushRecord) error
	Close() error
}

// batcher is implemented by journals that can group writes.
type batcher interface {
	Begin() error
	Commit() error
	Rollback() error
}

// Export records run followed by every tick and flush, tagged with
// run.RunID. Journals that support it write everything in one batch.
func Export(j Journal, run RunRecord, ticks []series.Tick, flushes []series.Flush) (err error) {
	if b, ok := j.(batcher); ok {
		if err := b.Begin(); err != nil {
			return fmt.Errorf("begin export: %w", err)
		}
		defer func() {
			if err != nil {
				_ = b.Rollback()
				return
			}
			if cerr := b.Commit(); cerr != nil {
				err = fmt.Errorf("commit export: %w", cerr)
			}
		}()
	}

	if err := j.RecordRun(run); err != nil {
		return fmt.Errorf("record run %s: %w", run.RunID, err)
	}
	for _, t := range ticks {
		rec := TickRecord{RunID: run.RunID, Time: t.Time, Mid: t.Mid, Profit: t.Profit}
		if err := j.RecordTick(rec); err != nil {
			return fmt.Errorf("record tick %s: %w", t.Time.Format(time.RFC3339), err)
		}
	}
	for _, f := range flushes {
		rec := FlushRecord{RunID: run.RunID, Time: f.Time, Profit: f.Profit, Fills: f.Fills}
		if err := j.RecordFlush(rec); err != nil {
			return fmt.Errorf("record flush %s: %w", f.Time.Format(time.RFC3339), err)
		}
	}
	return nil
}
