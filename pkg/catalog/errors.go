package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCodepoint is returned when data refers to a codepoint the catalog does not hold.
var ErrUnknownCodepoint = errors.New("unknown codepoint")

// DataCorruptError is returned when bundled or user supplied character data
// cannot be turned into a Catalog. A catalog is never built from partial data.
type DataCorruptError struct {
	Source string // file name, or "entries" for in-memory input
	Line   int    // 0 when the failure is not tied to a line
	Reason string
	Err    error
}

func (e *DataCorruptError) Error() string {
	var b strings.Builder
	b.WriteString("corrupt character data")
	if e.Source != "" {
		b.WriteString(" in ")
		b.WriteString(e.Source)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d", e.Line)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *DataCorruptError) Unwrap() error {
	return e.Err
}

func corrupt(source, reason string, err error) *DataCorruptError {
	return &DataCorruptError{Source: source, Reason: reason, Err: err}
}
