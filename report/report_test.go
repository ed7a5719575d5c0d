package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/pnlchart/series"
)

func at(mm, ss int) time.Time {
	return time.Date(2024, 11, 3, 9, mm, ss, 0, time.UTC)
}

func TestSummarizePerMinute(t *testing.T) {
	t.Parallel()

	ticks := []series.Tick{
		{Time: at(30, 5), Mid: 101, Profit: 0},
		{Time: at(31, 0), Mid: 99.5, Profit: 3},
		{Time: at(32, 0), Mid: 104, Profit: -4.5},
		{Time: at(33, 0), Mid: 103, Profit: 1},
	}
	flushes := []series.Flush{
		{Time: at(30, 40), Profit: 3, Fills: 2},
		{Time: at(31, 30), Profit: -4.5, Fills: 2},
		{Time: at(32, 10), Profit: 0.1, Fills: 2},
		{Time: at(32, 20), Profit: 0.2, Fills: 2},
		{Time: at(32, 30), Profit: 0.7, Fills: 4},
	}

	s := Summarize(ticks, flushes, series.PerMinute)

	assert.Equal(t, 4, s.Ticks)
	assert.Equal(t, at(30, 5), s.Start)
	assert.Equal(t, at(33, 0), s.End)
	assert.Equal(t, 101.0, s.FirstMid)
	assert.Equal(t, 103.0, s.LastMid)
	assert.Equal(t, 99.5, s.MinMid)
	assert.Equal(t, 104.0, s.MaxMid)

	assert.Equal(t, 5, s.Flushes)
	assert.Equal(t, 4, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, -0.5, s.NetProfit)
	assert.Equal(t, 3.0, s.BestFlush)
	assert.Equal(t, -4.5, s.WorstFlush)
	// running profit 0, 3, -1.5, -0.5: peak 3, trough -1.5
	assert.Equal(t, 4.5, s.MaxDrawdown)
	assert.InDelta(t, 80.0, s.WinRate(), 1e-9)
}

func TestSummarizeCumulative(t *testing.T) {
	t.Parallel()

	ticks := []series.Tick{
		{Time: at(30, 5), Mid: 1, Profit: 0},
		{Time: at(31, 0), Mid: 1, Profit: 2},
		{Time: at(32, 0), Mid: 1, Profit: 1.25},
		{Time: at(33, 0), Mid: 1, Profit: 3},
	}

	s := Summarize(ticks, nil, series.Cumulative)
	assert.Equal(t, 0.75, s.MaxDrawdown)
	assert.Equal(t, 0.0, s.NetProfit)
	assert.Equal(t, 0.0, s.WinRate())
}

func TestSummarizeNetProfitIsExact(t *testing.T) {
	t.Parallel()

	var flushes []series.Flush
	for i := 0; i < 10; i++ {
		flushes = append(flushes, series.Flush{Profit: 0.1})
	}
	s := Summarize(nil, flushes, series.PerMinute)
	assert.Equal(t, 1.0, s.NetProfit)
	assert.Equal(t, 0, s.Ticks)
}

func TestPrint(t *testing.T) {
	t.Parallel()

	ticks := []series.Tick{
		{Time: at(30, 5), Mid: 101, Profit: 0},
		{Time: at(31, 10), Mid: 103, Profit: 2},
	}
	flushes := []series.Flush{{Time: at(30, 40), Profit: 2, Fills: 2}}

	var buf bytes.Buffer
	Print(&buf, Summarize(ticks, flushes, series.PerMinute))
	out := buf.String()

	assert.Contains(t, out, "Profit Mode:   per_minute")
	assert.Contains(t, out, "Ticks:         2")
	assert.Contains(t, out, "Start:         2024-11-03T09:30:05Z")
	assert.Contains(t, out, "High:          103.00000")
	assert.Contains(t, out, "Net Profit:    2.0000")
	assert.Contains(t, out, "Win Rate:      100.00%")
	assert.NotContains(t, out, "Max Drawdown")
}

func TestPrintEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	Print(&buf, Summarize(nil, nil, series.Cumulative))
	out := buf.String()

	assert.NotContains(t, out, "Period")
	assert.NotContains(t, out, "Best Flush")
	assert.Contains(t, out, "Flushes:       0")
}
