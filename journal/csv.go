package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal writes ticks and flushes to two CSV files. Rows carry the
// run id; run records themselves are not written.
type CSVJournal struct {
	ticks   *csv.Writer
	flushes *csv.Writer
	tf, ff  *os.File
}

func NewCSV(ticksPath, flushesPath string) (*CSVJournal, error) {
	tf, err := os.Create(ticksPath)
	if err != nil {
		return nil, err
	}
	ff, err := os.Create(flushesPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	fw := csv.NewWriter(ff)

	if err := tw.Write([]string{"run_id", "time", "mid", "profit"}); err != nil {
		return nil, err
	}
	if err := fw.Write([]string{"run_id", "time", "profit", "fills"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	fw.Flush()
	if err := fw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{tw, fw, tf, ff}, nil
}

func (j *CSVJournal) RecordRun(RunRecord) error { return nil }

func (j *CSVJournal) RecordTick(t TickRecord) error {
	return j.ticks.Write([]string{
		t.RunID,
		t.Time.UTC().Format(time.RFC3339Nano),
		f(t.Mid),
		f(t.Profit),
	})
}

func (j *CSVJournal) RecordFlush(fl FlushRecord) error {
	return j.flushes.Write([]string{
		fl.RunID,
		fl.Time.UTC().Format(time.RFC3339Nano),
		f(fl.Profit),
		strconv.Itoa(fl.Fills),
	})
}

func (j *CSVJournal) Close() error {
	j.ticks.Flush()
	if err := j.ticks.Error(); err != nil {
		return err
	}
	j.flushes.Flush()
	if err := j.flushes.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.ff.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
