package logline

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedLine      = errors.New("malformed line structure")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrUnknownTag         = errors.New("unrecognized enum tag")
)

// FieldError pins a parse failure to a field of a structured line.
// Field is the 1-based position of the space separated token.
type FieldError struct {
	Line  string
	Field int
	Name  string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("field %d (%s): %v", e.Field, e.Name, e.Err)
	}
	return fmt.Sprintf("field %d: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
