// Package matcher nets open and close fills into realized profit.
//
// Fills are buffered until their signed volumes add up to exactly zero.
// Volumes are compared as integer thousandths so the zero test is exact.
package matcher

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/pnlchart/logline"
)

// UnitScale converts a logged volume into integer units.
const UnitScale = logline.VolumeScale

// ErrOverflow means a fill, or the position it builds, does not fit in
// int64 units.
var ErrOverflow = errors.New("position exceeds int64 units")

// ProfitPlaces is the number of decimals a flushed profit is rounded to.
const ProfitPlaces = 4

type fill struct {
	price float64 // signed cash flow per unit of volume
	units int64   // signed: positive opens, negative closes
}

// Matcher accumulates fills until the position is flat. The zero value is
// ready to use. A Matcher is not safe for concurrent use.
type Matcher struct {
	fills []fill
	net   int64
}

// New returns an empty Matcher.
func New() *Matcher {
	return &Matcher{}
}

// Feed adds one fill. When the buffered position nets to zero it returns
// the realized profit of the round trip and clears the buffer. A fill that
// would overflow the unit count is rejected with ErrOverflow and leaves the
// matcher unchanged.
func (m *Matcher) Feed(o logline.OrderEvent) (profit float64, flushed bool, err error) {
	if !(math.Abs(o.Volume)*UnitScale < 1<<63) {
		return 0, false, fmt.Errorf("%w: volume %v", ErrOverflow, o.Volume)
	}
	f := fill{
		price: CashFlow(o.Direction, o.Action, o.Price),
		units: Units(o.Action, o.Volume),
	}
	if (f.units > 0 && m.net > math.MaxInt64-f.units) || (f.units < 0 && m.net < math.MinInt64-f.units) {
		return 0, false, fmt.Errorf("%w: net %d plus %d", ErrOverflow, m.net, f.units)
	}
	m.fills = append(m.fills, f)
	m.net += f.units

	if m.net != 0 {
		return 0, false, nil
	}

	var sum float64
	for _, f := range m.fills {
		sum += f.price * float64(abs(f.units)) / UnitScale
	}
	m.fills = m.fills[:0]
	return Round(sum), true, nil
}

// Pending is the number of buffered fills.
func (m *Matcher) Pending() int { return len(m.fills) }

// Net is the signed open position in units.
func (m *Matcher) Net() int64 { return m.net }

// Reset drops any buffered fills.
func (m *Matcher) Reset() {
	m.fills = m.fills[:0]
	m.net = 0
}

// CashFlow signs a fill price by the cash it moves: buying (long open,
// short close) pays, selling (long close, short open) receives.
func CashFlow(d logline.Direction, a logline.Action, price float64) float64 {
	sign := 1.0
	if d == logline.Long {
		sign = -sign
	}
	if a == logline.Close {
		sign = -sign
	}
	return sign * price
}

// Units scales a volume to signed integer units, negative for closes.
func Units(a logline.Action, volume float64) int64 {
	u := int64(math.Round(volume * UnitScale))
	if a == logline.Close {
		return -u
	}
	return u
}

// Round rounds v to ProfitPlaces decimals, halves away from zero.
func Round(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(ProfitPlaces).Float64()
	return f
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
