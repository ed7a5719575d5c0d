package series

import (
	"fmt"
	"time"
)

// Tick is one output sample: the first mid price seen in a minute and the
// profit realized up to it.
type Tick struct {
	Time   time.Time
	Mid    float64
	Profit float64
}

func (t Tick) String() string {
	return fmt.Sprintf("%s mid=%g profit=%g", t.Time.Format(time.RFC3339Nano), t.Mid, t.Profit)
}

// Flush records one realized round trip.
type Flush struct {
	Time   time.Time // time of the fill that flattened the position
	Profit float64
	Fills  int
}

// ProfitMode selects what Tick.Profit means.
type ProfitMode string

const (
	// PerMinute resets the profit total after every emitted tick, so each
	// tick carries only what was realized since the previous one.
	PerMinute ProfitMode = "per_minute"
	// Cumulative never resets: each tick carries profit realized so far.
	Cumulative ProfitMode = "cumulative"
)

// ParseProfitMode accepts the names used in configuration files.
func ParseProfitMode(s string) (ProfitMode, error) {
	switch ProfitMode(s) {
	case PerMinute, Cumulative:
		return ProfitMode(s), nil
	case "":
		return PerMinute, nil
	}
	return "", fmt.Errorf("unknown profit mode %q (want %s or %s)", s, PerMinute, Cumulative)
}

// minute is the bucket of t: floor(unix millis / 60000).
func minute(t time.Time) int64 {
	ms := t.UnixMilli()
	m := ms / 60_000
	if ms%60_000 < 0 {
		m--
	}
	return m
}

func minuteStart(m int64) time.Time {
	return time.UnixMilli(m * 60_000).UTC()
}

// Running turns a per-minute profit series into a running total. A
// cumulative series is returned unchanged.
func Running(ticks []Tick, mode ProfitMode) []float64 {
	out := make([]float64, len(ticks))
	var sum float64
	for i, t := range ticks {
		if mode == Cumulative {
			out[i] = t.Profit
			continue
		}
		sum += t.Profit
		out[i] = sum
	}
	return out
}
