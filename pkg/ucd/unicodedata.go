package ucd

import (
	"fmt"
	"io"
	"sort"
)

// unicodeDataFields is the number of ';' separated fields per UnicodeData.txt line.
// See http://www.unicode.org/reports/tr44/#UnicodeData.txt.
const unicodeDataFields = 15

// Record is the subset of a UnicodeData.txt line unipick cares about.
type Record struct {
	Codepoint rune
	Name      string
	Category  string
}

// ReadUnicodeData parses UnicodeData.txt. Records are returned sorted by codepoint.
// Range markers such as "<CJK Ideograph, First>" and "<control>" are returned
// as-is; deciding what to keep is up to the caller.
func ReadUnicodeData(r io.Reader) ([]Record, error) {
	var records []Record

	err := scanFields(r, "UnicodeData.txt", func(fields []string) error {
		if len(fields) != unicodeDataFields {
			return fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(fields), unicodeDataFields)
		}
		cp, err := ParseCodepoint(fields[0])
		if err != nil {
			return err
		}
		records = append(records, Record{
			Codepoint: cp,
			Name:      fields[1],
			Category:  fields[2],
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	// They're already sorted in every published UCD, but nothing guarantees it
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Codepoint < records[j].Codepoint
	})
	return records, nil
}
