package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrRunNotFound is returned by GetRun for unknown ids.
var ErrRunNotFound = errors.New("run not found")

const runColumns = `run_id, created, source, schema_variant, profit_mode, fill_gaps,
	start_time, end_time, ticks, flushes, net_profit, chart_png`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (RunRecord, error) {
	var rec RunRecord
	err := s.Scan(
		&rec.RunID,
		&rec.Created,
		&rec.Source,
		&rec.Schema,
		&rec.ProfitMode,
		&rec.FillGaps,
		&rec.Start,
		&rec.End,
		&rec.Ticks,
		&rec.Flushes,
		&rec.NetProfit,
		&rec.ChartPNG,
	)
	return rec, err
}

// GetRun returns a single run record by id.
func (j *SQLiteJournal) GetRun(ctx context.Context, runID string) (RunRecord, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	rec, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, fmt.Errorf("%w: %q", ErrRunNotFound, runID)
		}
		return RunRecord{}, err
	}
	return rec, nil
}

// ListRuns returns every run, oldest first.
func (j *SQLiteJournal) ListRuns(ctx context.Context) ([]RunRecord, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY run_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTicks returns the ticks of a run in time order.
func (j *SQLiteJournal) ListTicks(ctx context.Context, runID string) ([]TickRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, time, mid, profit
		FROM ticks
		WHERE run_id = ?
		ORDER BY time ASC, rowid ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TickRecord
	for rows.Next() {
		var rec TickRecord
		if err := rows.Scan(&rec.RunID, &rec.Time, &rec.Mid, &rec.Profit); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListFlushes returns the flushes of a run in time order.
func (j *SQLiteJournal) ListFlushes(ctx context.Context, runID string) ([]FlushRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, time, profit, fills
		FROM flushes
		WHERE run_id = ?
		ORDER BY time ASC, rowid ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FlushRecord
	for rows.Next() {
		var rec FlushRecord
		if err := rows.Scan(&rec.RunID, &rec.Time, &rec.Profit, &rec.Fills); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
