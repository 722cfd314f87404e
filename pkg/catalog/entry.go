package catalog

import (
	"fmt"
	"strings"
)

// dottedCircle is the base used to display combining marks on their own.
const dottedCircle = '◌'

// GeneralCategory is a two-letter Unicode general category such as "Lu" or "So".
type GeneralCategory string

// Major returns the first letter of the category ("L", "S", ...).
func (c GeneralCategory) Major() string {
	if c == "" {
		return ""
	}
	return string(c[0])
}

// In reports whether c falls under filter. A one-letter filter selects the
// whole major class, so "S" matches "So" and "Sm".
func (c GeneralCategory) In(filter string) bool {
	return filter != "" && strings.HasPrefix(string(c), filter)
}

// IsMark reports whether c is a combining mark (Mn, Mc or Me).
func (c GeneralCategory) IsMark() bool {
	return c.Major() == "M"
}

// IsControl reports whether c is Cc.
func (c GeneralCategory) IsControl() bool {
	return c == "Cc"
}

// Entry is one selectable character. Entries are immutable once they are
// part of a Catalog; Aliases must not be modified by callers.
type Entry struct {
	Codepoint rune
	Name      string
	Aliases   []string
	Category  GeneralCategory
	Block     string
}

// String returns the character itself, the text handed to the host on activation.
func (e Entry) String() string {
	return string(e.Codepoint)
}

// Glyph returns a printable rendition of the character for result lists.
// Controls print as a space and combining marks sit on a dotted circle.
func (e Entry) Glyph() string {
	switch {
	case e.Category.IsControl():
		return " "
	case e.Category.IsMark():
		return string([]rune{dottedCircle, e.Codepoint})
	default:
		return string(e.Codepoint)
	}
}

// Hex returns the codepoint in "U+XXXX" notation.
func (e Entry) Hex() string {
	return fmt.Sprintf("U+%04X", e.Codepoint)
}

// Names returns the primary name followed by every alias.
func (e Entry) Names() []string {
	names := make([]string, 0, len(e.Aliases)+1)
	names = append(names, e.Name)
	return append(names, e.Aliases...)
}
