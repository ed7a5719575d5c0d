package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	source TEXT NOT NULL,
	schema_variant TEXT NOT NULL,
	profit_mode TEXT NOT NULL,
	fill_gaps INTEGER NOT NULL,
	start_time DATETIME NOT NULL,
	end_time DATETIME NOT NULL,
	ticks INTEGER NOT NULL,
	flushes INTEGER NOT NULL,
	net_profit REAL NOT NULL,
	chart_png TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS ticks (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	time DATETIME NOT NULL,
	mid REAL NOT NULL,
	profit REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS flushes (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	time DATETIME NOT NULL,
	profit REAL NOT NULL,
	fills INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ticks_run_time ON ticks(run_id, time);
CREATE INDEX IF NOT EXISTS idx_flushes_run_time ON flushes(run_id, time);
`
