package journal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/pnlchart/series"
)

func at(hh, mm, ss int) time.Time {
	return time.Date(2024, 11, 3, hh, mm, ss, 0, time.UTC)
}

func sampleRun(id string) (RunRecord, []series.Tick, []series.Flush) {
	ticks := []series.Tick{
		{Time: at(9, 30, 5), Mid: 101, Profit: 0},
		{Time: at(9, 31, 10), Mid: 103, Profit: 2},
	}
	flushes := []series.Flush{
		{Time: at(9, 30, 40), Profit: 2, Fills: 2},
	}
	run := RunRecord{
		RunID:      id,
		Created:    at(12, 0, 0),
		Source:     "strategy.log",
		Schema:     "v1",
		ProfitMode: "per_minute",
		Start:      ticks[0].Time,
		End:        ticks[1].Time,
		Ticks:      len(ticks),
		Flushes:    len(flushes),
		NetProfit:  2,
	}
	return run, ticks, flushes
}

func TestExportAndQuery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, _ := newTestSQLite(t)
	defer j.Close()

	run, ticks, flushes := sampleRun("01JBX0000000000000000000A1")
	require.NoError(t, Export(j, run, ticks, flushes))

	got, err := j.GetRun(ctx, run.RunID)
	require.NoError(t, err)
	assert.Equal(t, run.RunID, got.RunID)
	assert.Equal(t, "strategy.log", got.Source)
	assert.Equal(t, "per_minute", got.ProfitMode)
	assert.False(t, got.FillGaps)
	assert.True(t, got.Start.Equal(run.Start))
	assert.True(t, got.End.Equal(run.End))
	assert.Equal(t, 2, got.Ticks)
	assert.Equal(t, 1, got.Flushes)
	assert.InDelta(t, 2.0, got.NetProfit, 1e-9)

	gotTicks, err := j.ListTicks(ctx, run.RunID)
	require.NoError(t, err)
	require.Len(t, gotTicks, 2)
	for i, tk := range gotTicks {
		assert.Equal(t, run.RunID, tk.RunID)
		assert.True(t, tk.Time.Equal(ticks[i].Time), "tick %d", i)
		assert.InDelta(t, ticks[i].Mid, tk.Mid, 1e-9)
		assert.InDelta(t, ticks[i].Profit, tk.Profit, 1e-9)
	}

	gotFlushes, err := j.ListFlushes(ctx, run.RunID)
	require.NoError(t, err)
	require.Len(t, gotFlushes, 1)
	assert.Equal(t, 2, gotFlushes[0].Fills)
	assert.True(t, gotFlushes[0].Time.Equal(at(9, 30, 40)))
}

func TestListRunsOrdered(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, _ := newTestSQLite(t)
	defer j.Close()

	for _, id := range []string{"01JBX0000000000000000000B2", "01JBX0000000000000000000A1"} {
		run, ticks, flushes := sampleRun(id)
		require.NoError(t, Export(j, run, ticks, flushes))
	}

	runs, err := j.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "01JBX0000000000000000000A1", runs[0].RunID)
	assert.Equal(t, "01JBX0000000000000000000B2", runs[1].RunID)

	// Ticks of one run never leak into another.
	ticks, err := j.ListTicks(ctx, runs[0].RunID)
	require.NoError(t, err)
	assert.Len(t, ticks, 2)
}

func TestGetRunNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetRun(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestExportDuplicateRunRollsBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, _ := newTestSQLite(t)
	defer j.Close()

	run, ticks, flushes := sampleRun("01JBX0000000000000000000A1")
	require.NoError(t, Export(j, run, ticks, flushes))

	err := Export(j, run, ticks, flushes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record run")

	got, err := j.ListTicks(ctx, run.RunID)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// The journal is usable after the failed batch.
	run2, ticks2, flushes2 := sampleRun("01JBX0000000000000000000C3")
	assert.NoError(t, Export(j, run2, ticks2, flushes2))
}

func TestExportCSV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	j, err := NewCSV(dir+"/ticks.csv", dir+"/flushes.csv")
	require.NoError(t, err)

	run, ticks, flushes := sampleRun("R1")
	require.NoError(t, Export(j, run, ticks, flushes))
	require.NoError(t, j.Close())

	rows := readCSV(t, dir+"/ticks.csv")
	assert.Len(t, rows, 3)
	assert.Equal(t, "R1", rows[2][0])
	assert.Equal(t, "2", rows[2][3])
}
