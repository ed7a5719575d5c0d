package logline

import (
	"fmt"
	"regexp"
	"time"
)

// TimeLayout is the engine's timestamp layout. The fractional part is
// optional and may have any precision.
const TimeLayout = "2006-01-02T15:04:05"

var timestampShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?$`)

// ParseTime parses an engine timestamp as UTC.
func ParseTime(s string) (time.Time, error) {
	if !timestampShape.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedTimestamp, err)
	}
	return t, nil
}
