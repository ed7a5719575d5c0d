package series

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput means the input held no price events, so no bucket
	// could be opened.
	ErrEmptyInput = errors.New("no price events in input")

	ErrAggregatorUsed = errors.New("aggregator already ran; create a new one per input")
)

// LineError carries the 1-based line number and raw text of the line that
// aborted a run.
type LineError struct {
	Number int
	Raw    string
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Number, e.Err, e.Raw)
}

func (e *LineError) Unwrap() error { return e.Err }
