// Package report summarizes an aggregated series for the terminal.
package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/pnlchart/matcher"
	"github.com/rustyeddy/pnlchart/series"
)

// Summary is a lightweight digest of one series.
type Summary struct {
	Mode series.ProfitMode

	Ticks int
	Start time.Time
	End   time.Time

	FirstMid float64
	LastMid  float64
	MinMid   float64
	MaxMid   float64

	// Realized results
	NetProfit   float64
	Flushes     int
	Wins        int
	Losses      int
	BestFlush   float64
	WorstFlush  float64
	MaxDrawdown float64 // largest peak-to-trough fall of the running profit
}

// Summarize digests ticks and flushes produced by one aggregation run.
func Summarize(ticks []series.Tick, flushes []series.Flush, mode series.ProfitMode) Summary {
	s := Summary{Mode: mode, Ticks: len(ticks), Flushes: len(flushes)}

	if len(ticks) > 0 {
		s.Start = ticks[0].Time
		s.End = ticks[len(ticks)-1].Time
		s.FirstMid = ticks[0].Mid
		s.LastMid = ticks[len(ticks)-1].Mid
		s.MinMid, s.MaxMid = math.Inf(1), math.Inf(-1)
		for _, t := range ticks {
			s.MinMid = math.Min(s.MinMid, t.Mid)
			s.MaxMid = math.Max(s.MaxMid, t.Mid)
		}
		s.MaxDrawdown = maxDrawdown(series.Running(ticks, mode))
	}

	net := decimal.Zero
	for i, f := range flushes {
		net = net.Add(decimal.NewFromFloat(f.Profit))
		switch {
		case f.Profit > 0:
			s.Wins++
		case f.Profit < 0:
			s.Losses++
		}
		if i == 0 || f.Profit > s.BestFlush {
			s.BestFlush = f.Profit
		}
		if i == 0 || f.Profit < s.WorstFlush {
			s.WorstFlush = f.Profit
		}
	}
	s.NetProfit = matcher.Round(net.InexactFloat64())
	return s
}

func maxDrawdown(running []float64) float64 {
	var peak, dd float64
	for i, v := range running {
		if i == 0 || v > peak {
			peak = v
		}
		dd = math.Max(dd, peak-v)
	}
	return matcher.Round(dd)
}

// WinRate is the share of flushes that made money, in percent.
func (s Summary) WinRate() float64 {
	if s.Flushes == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Flushes) * 100
}

func Print(w io.Writer, s Summary) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Series Summary")
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "Profit Mode:   %s\n", s.Mode)
	fmt.Fprintf(w, "Ticks:         %d\n", s.Ticks)

	if s.Ticks > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Period")
		fmt.Fprintln(w, "--------------------------------------------------")
		fmt.Fprintf(w, "Start:         %s\n", s.Start.Format(time.RFC3339))
		fmt.Fprintf(w, "End:           %s\n", s.End.Format(time.RFC3339))

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Mid Price")
		fmt.Fprintln(w, "--------------------------------------------------")
		fmt.Fprintf(w, "First:         %.5f\n", s.FirstMid)
		fmt.Fprintf(w, "Last:          %.5f\n", s.LastMid)
		fmt.Fprintf(w, "Low:           %.5f\n", s.MinMid)
		fmt.Fprintf(w, "High:          %.5f\n", s.MaxMid)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Realized Profit")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Flushes:       %d\n", s.Flushes)
	fmt.Fprintf(w, "Wins:          %d\n", s.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", s.Losses)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", s.WinRate())
	fmt.Fprintf(w, "Net Profit:    %.4f\n", s.NetProfit)
	if s.Flushes > 0 {
		fmt.Fprintf(w, "Best Flush:    %.4f\n", s.BestFlush)
		fmt.Fprintf(w, "Worst Flush:   %.4f\n", s.WorstFlush)
	}
	if s.MaxDrawdown > 0 {
		fmt.Fprintf(w, "Max Drawdown:  %.4f\n", s.MaxDrawdown)
	}
	fmt.Fprintln(w)
}
