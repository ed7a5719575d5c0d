package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()

	rows, err := csv.NewReader(fh).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ticksPath := filepath.Join(dir, "ticks.csv")
	flushesPath := filepath.Join(dir, "flushes.csv")

	j, err := NewCSV(ticksPath, flushesPath)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	assert.Equal(t, [][]string{{"run_id", "time", "mid", "profit"}}, readCSV(t, ticksPath))
	assert.Equal(t, [][]string{{"run_id", "time", "profit", "fills"}}, readCSV(t, flushesPath))
}

func TestCSVJournalRecords(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ticksPath := filepath.Join(dir, "ticks.csv")
	flushesPath := filepath.Join(dir, "flushes.csv")

	j, err := NewCSV(ticksPath, flushesPath)
	require.NoError(t, err)

	ts := time.Date(2024, 11, 3, 9, 31, 10, 500_000_000, time.UTC)
	assert.NoError(t, j.RecordRun(RunRecord{RunID: "R1"}))
	assert.NoError(t, j.RecordTick(TickRecord{RunID: "R1", Time: ts, Mid: 103, Profit: 2}))
	assert.NoError(t, j.RecordFlush(FlushRecord{RunID: "R1", Time: ts, Profit: -0.125, Fills: 3}))
	require.NoError(t, j.Close())

	ticks := readCSV(t, ticksPath)
	require.Len(t, ticks, 2)
	assert.Equal(t, []string{"R1", "2024-11-03T09:31:10.5Z", "103", "2"}, ticks[1])

	flushes := readCSV(t, flushesPath)
	require.Len(t, flushes, 2)
	assert.Equal(t, []string{"R1", "2024-11-03T09:31:10.5Z", "-0.125", "3"}, flushes[1])
}

func TestNewCSVBadPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := NewCSV(filepath.Join(dir, "missing", "ticks.csv"), filepath.Join(dir, "flushes.csv"))
	assert.Error(t, err)
}
