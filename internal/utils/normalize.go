package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxQueryLen bounds the number of runes of a query that are looked at.
const DefaultMaxQueryLen = 128

// Fold decomposes s, drops combining marks and lower-cases the result, so
// "Café" and "CAFE" fold to the same text.
func Fold(s string) string {
	// transform.Chain keeps state, so it is built per call
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// NormalizeQuery turns arbitrary host input into a canonical query:
// invalid UTF-8 is dropped, the text is cut to maxRunes runes, folded and
// its whitespace collapsed to single spaces. It never fails.
func NormalizeQuery(q string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = DefaultMaxQueryLen
	}
	q = strings.ToValidUTF8(q, "")
	q = TruncateRunes(q, maxRunes)
	return CollapseSpaces(Fold(q))
}

// Tokenize splits s on every rune that is neither a letter nor a digit and
// lower-cases the pieces. Empty tokens are dropped.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), IsSeparator)
}

// CreateRankList creates a slice of ranks based on position.
// The rank starts at 1 for the first item and increments for subsequent items.
func CreateRankList(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := 0; i < count; i++ {
		ranks[i] = uint16(i + 1)
	}
	return ranks
}
