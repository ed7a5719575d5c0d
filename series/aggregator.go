// Package series rebuilds the per-minute price and realized profit series
// from an engine log.
package series

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/pnlchart/logline"
	"github.com/rustyeddy/pnlchart/matcher"
)

// MaxLineSize bounds a single log line read by RunReader.
const MaxLineSize = 1024 * 1024

// Stats counts what a run saw.
type Stats struct {
	Lines   int
	Prices  int
	Orders  int
	Other   int
	Ticks   int
	Filled  int // carried-forward ticks added by gap fill
	Flushes int

	// Fills still buffered when the input ended. They never realize.
	Unflushed int
	OpenUnits int64
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithParser sets the field parser. The default is logline.DefaultParser.
func WithParser(p *logline.Parser) Option {
	return func(a *Aggregator) {
		if p != nil {
			a.parser = p
		}
	}
}

// WithProfitMode sets the meaning of Tick.Profit. The default is PerMinute.
func WithProfitMode(m ProfitMode) Option {
	return func(a *Aggregator) { a.mode = m }
}

// WithGapFill makes the aggregator emit a carried-forward tick, stamped at
// the bucket start, for every minute without price events between two
// emitted ticks.
func WithGapFill(on bool) Option {
	return func(a *Aggregator) { a.fillGaps = on }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.log = l
		}
	}
}

// Aggregator merges price and order events into one Tick per minute. It
// holds the state of a single run: create a new one per input.
type Aggregator struct {
	parser   *logline.Parser
	mode     ProfitMode
	fillGaps bool
	log      *zap.Logger

	matcher    *matcher.Matcher
	total      float64 // cumulative profit as of the last emitted tick
	attributed int     // flushes already counted in an emitted tick
	seen       bool
	lastMinute int64
	last       Tick
	used       bool

	ticks   []Tick
	flushes []Flush
	stats   Stats
}

// New returns an Aggregator ready for one run.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		parser:  logline.DefaultParser(),
		mode:    PerMinute,
		log:     zap.NewNop(),
		matcher: matcher.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run processes lines in order and returns the ticks. Any structured line
// that fails to parse aborts the run with a *LineError.
func (a *Aggregator) Run(lines []string) ([]Tick, error) {
	if err := a.start(); err != nil {
		return nil, err
	}
	for i, line := range lines {
		if err := a.feed(line); err != nil {
			return nil, &LineError{Number: i + 1, Raw: line, Err: err}
		}
	}
	return a.finish()
}

// RunReader is Run over the lines of r.
func (a *Aggregator) RunReader(r io.Reader) ([]Tick, error) {
	if err := a.start(); err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	n := 0
	for sc.Scan() {
		n++
		line := sc.Text()
		if err := a.feed(line); err != nil {
			return nil, &LineError{Number: n, Raw: line, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read line %d: %w", n+1, err)
	}
	return a.finish()
}

// Flushes returns every realized round trip in input order.
func (a *Aggregator) Flushes() []Flush { return a.flushes }

// Stats returns the counters of the run.
func (a *Aggregator) Stats() Stats { return a.stats }

// Mode reports the profit mode of the ticks.
func (a *Aggregator) Mode() ProfitMode { return a.mode }

func (a *Aggregator) start() error {
	if a.used {
		return ErrAggregatorUsed
	}
	if _, err := ParseProfitMode(string(a.mode)); err != nil {
		return err
	}
	a.used = true
	return nil
}

func (a *Aggregator) feed(raw string) error {
	a.stats.Lines++
	line := logline.Strip(raw)

	switch logline.Classify(line) {
	case logline.KindOrder:
		o, err := a.parser.ParseOrder(line)
		if err != nil {
			return err
		}
		a.stats.Orders++
		if err := a.onOrder(o); err != nil {
			return err
		}
	case logline.KindPrice:
		p, err := a.parser.ParsePrice(line)
		if err != nil {
			return err
		}
		a.stats.Prices++
		a.onPrice(p)
	default:
		a.stats.Other++
	}
	return nil
}

func (a *Aggregator) onOrder(o logline.OrderEvent) error {
	fills := a.matcher.Pending() + 1
	profit, ok, err := a.matcher.Feed(o)
	if err != nil || !ok {
		return err
	}
	a.flushes = append(a.flushes, Flush{Time: o.Time, Profit: profit, Fills: fills})
	a.stats.Flushes++
	a.log.Debug("position flat",
		zap.Time("time", o.Time),
		zap.Float64("profit", profit),
		zap.Int("fills", fills),
	)
	return nil
}

func (a *Aggregator) onPrice(p logline.PriceEvent) {
	m := minute(p.Time)
	if a.seen && m == a.lastMinute {
		return
	}
	if a.seen && a.fillGaps {
		for gap := a.lastMinute + 1; gap < m; gap++ {
			start := minuteStart(gap)
			a.emit(Tick{Time: start, Mid: a.last.Mid, Profit: a.realize(start, false)})
			a.stats.Filled++
		}
	}
	a.emit(Tick{Time: p.Time, Mid: p.Mid, Profit: a.realize(p.Time, true)})
	a.seen = true
	a.lastMinute = m
}

// realize attributes pending flushes to a tick stamped at. A gap tick only
// takes flushes that happened before its minute started; a price tick takes
// them all. It returns the tick's profit for the configured mode.
func (a *Aggregator) realize(at time.Time, all bool) float64 {
	var sum float64
	for a.attributed < len(a.flushes) {
		f := a.flushes[a.attributed]
		if !all && !f.Time.Before(at) {
			break
		}
		sum += f.Profit
		a.attributed++
	}
	if a.mode == Cumulative {
		a.total += sum
		return a.total
	}
	return sum
}

func (a *Aggregator) emit(t Tick) {
	a.ticks = append(a.ticks, t)
	a.last = t
	a.stats.Ticks++
}

func (a *Aggregator) finish() ([]Tick, error) {
	a.stats.Unflushed = a.matcher.Pending()
	a.stats.OpenUnits = a.matcher.Net()
	if a.stats.Unflushed > 0 {
		a.log.Warn("open position dropped at end of input",
			zap.Int("fills", a.stats.Unflushed),
			zap.Int64("units", a.stats.OpenUnits),
		)
	}
	if !a.seen {
		return nil, ErrEmptyInput
	}
	a.log.Info("series built",
		zap.Int("lines", a.stats.Lines),
		zap.Int("ticks", a.stats.Ticks),
		zap.Int("flushes", a.stats.Flushes),
	)
	return a.ticks, nil
}
