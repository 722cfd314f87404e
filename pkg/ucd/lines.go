// Package ucd reads the plain-text files of the Unicode Character Database
// (UnicodeData.txt, NameAliases.txt and Blocks.txt).
//
// Every file shares the same layout: one record per line, fields separated
// by ';', comments introduced by '#'. Parse failures are reported as
// *LineError so callers can point at the offending line.
package ucd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MaxCodepoint is the largest valid Unicode codepoint.
const MaxCodepoint = 0x10FFFF

var (
	// ErrFieldCount is returned when a line has an unexpected number of fields.
	ErrFieldCount = errors.New("unexpected field count")

	// ErrCodepoint is returned for malformed or out of range codepoints.
	ErrCodepoint = errors.New("invalid codepoint")
)

// LineError reports a parse failure on a specific line of a UCD file.
type LineError struct {
	File string
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s line %d: %v", e.File, e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// scanFields calls fn with the trimmed fields of every data line in r.
// Blank lines and comments are skipped, fn errors are wrapped in *LineError.
func scanFields(r io.Reader, file string, fn func(fields []string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, ";")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if err := fn(fields); err != nil {
			return &LineError{File: file, Line: lineNo, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}
	return nil
}

// ParseCodepoint parses a bare hexadecimal codepoint such as "1F600".
// Values above MaxCodepoint are rejected. Surrogates parse: the data files
// list them as ranges and blocks, and callers decide what to keep.
func ParseCodepoint(s string) (rune, error) {
	if s == "" || len(s) > 6 {
		return 0, fmt.Errorf("%w: %q", ErrCodepoint, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrCodepoint, s)
	}
	if v > MaxCodepoint {
		return 0, fmt.Errorf("%w: %04X is above U+10FFFF", ErrCodepoint, v)
	}
	return rune(v), nil
}

// FormatCodepoint renders cp the way the UCD files do (at least four hex digits).
func FormatCodepoint(cp rune) string {
	return fmt.Sprintf("%04X", cp)
}
