package journal

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
	tx *sql.Tx
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteJournal{db: db}, nil
}

// Begin routes subsequent records through a transaction until Commit or
// Rollback.
func (j *SQLiteJournal) Begin() error {
	if j.tx != nil {
		return errors.New("journal: transaction already open")
	}
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	j.tx = tx
	return nil
}

func (j *SQLiteJournal) Commit() error {
	if j.tx == nil {
		return errors.New("journal: no open transaction")
	}
	err := j.tx.Commit()
	j.tx = nil
	return err
}

func (j *SQLiteJournal) Rollback() error {
	if j.tx == nil {
		return nil
	}
	err := j.tx.Rollback()
	j.tx = nil
	return err
}

func (j *SQLiteJournal) exec(query string, args ...any) error {
	var err error
	if j.tx != nil {
		_, err = j.tx.Exec(query, args...)
	} else {
		_, err = j.db.Exec(query, args...)
	}
	return err
}

func (j *SQLiteJournal) RecordRun(r RunRecord) error {
	return j.exec(`
		INSERT INTO runs
		(run_id, created, source, schema_variant, profit_mode, fill_gaps, start_time, end_time, ticks, flushes, net_profit, chart_png)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created.UTC(), r.Source, r.Schema, r.ProfitMode, r.FillGaps,
		r.Start.UTC(), r.End.UTC(), r.Ticks, r.Flushes, r.NetProfit, r.ChartPNG,
	)
}

func (j *SQLiteJournal) RecordTick(t TickRecord) error {
	return j.exec(`
		INSERT INTO ticks (run_id, time, mid, profit)
		VALUES (?, ?, ?, ?)`,
		t.RunID, t.Time.UTC(), t.Mid, t.Profit,
	)
}

func (j *SQLiteJournal) RecordFlush(f FlushRecord) error {
	return j.exec(`
		INSERT INTO flushes (run_id, time, profit, fills)
		VALUES (?, ?, ?, ?)`,
		f.RunID, f.Time.UTC(), f.Profit, f.Fills,
	)
}

func (j *SQLiteJournal) Close() error {
	if err := j.Rollback(); err != nil {
		return err
	}
	return j.db.Close()
}
