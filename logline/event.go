package logline

import (
	"fmt"
	"time"
)

// Direction is the side of the position an order belongs to.
type Direction int

const (
	Long Direction = iota + 1
	Short
)

var directionTags = map[string]Direction{
	"Long":  Long,
	"Short": Short,
}

func (d Direction) String() string {
	switch d {
	case Long:
		return "Long"
	case Short:
		return "Short"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection maps a case-sensitive tag to a Direction.
func ParseDirection(tag string) (Direction, error) {
	d, ok := directionTags[tag]
	if !ok {
		return 0, fmt.Errorf("%w: direction %q", ErrUnknownTag, tag)
	}
	return d, nil
}

// Action says whether a fill opens or closes exposure.
type Action int

const (
	Open Action = iota + 1
	Close
)

var actionTags = map[string]Action{
	"Open":  Open,
	"Close": Close,
}

func (a Action) String() string {
	switch a {
	case Open:
		return "Open"
	case Close:
		return "Close"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// ParseAction maps a case-sensitive tag to an Action.
func ParseAction(tag string) (Action, error) {
	a, ok := actionTags[tag]
	if !ok {
		return 0, fmt.Errorf("%w: action %q", ErrUnknownTag, tag)
	}
	return a, nil
}

// Range is an opening range as logged ("lo-hi").
type Range struct {
	Low  float64
	High float64
}

// PriceEvent is one parsed price line. Only Time and Mid feed the series;
// the rest is kept so nothing in the line is lost.
type PriceEvent struct {
	Time   time.Time
	Mid    float64
	Open   Range
	Spread float64
	Book   [4]float64
	Aux    float64
	Hint   float64
}

// OrderEvent is one parsed fill.
type OrderEvent struct {
	Time      time.Time
	Price     float64
	Volume    float64
	Direction Direction
	Action    Action
}
