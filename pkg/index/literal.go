package index

import (
	"strconv"
	"strings"

	"github.com/bastiangx/unipick/internal/utils"
	"github.com/bastiangx/unipick/pkg/catalog"
	"github.com/bastiangx/unipick/pkg/ucd"
)

// ParseHexLiteral recognizes queries that spell a codepoint: "U+XXXX" with
// one to six hex digits, "uXXXX" with four to six, or one to six bare hex
// digits. Case and surrounding whitespace are ignored. It does not check that
// the codepoint is in any catalog.
func ParseHexLiteral(query string) (rune, bool) {
	q := strings.ToLower(strings.TrimSpace(query))

	var digits string
	switch {
	case strings.HasPrefix(q, "u+"):
		digits = q[2:]
	case strings.HasPrefix(q, "u"):
		digits = q[1:]
		if len(digits) < 4 {
			return 0, false
		}
	default:
		digits = q
	}

	if len(digits) == 0 || len(digits) > 6 || !utils.IsHexString(digits) {
		return 0, false
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || v > ucd.MaxCodepoint {
		return 0, false
	}
	return rune(v), true
}

// LookupLiteral resolves a query that addresses one character directly:
// a hex literal naming an indexed codepoint, or a single symbol character
// that is itself indexed (typing "→" finds RIGHTWARDS ARROW).
func (idx *Index) LookupLiteral(query string) (catalog.Entry, bool) {
	if cp, ok := ParseHexLiteral(query); ok {
		if e, ok := idx.Lookup(cp); ok {
			return e, true
		}
	}

	trimmed := strings.TrimSpace(query)
	if r, ok := utils.SingleRune(trimmed); ok && utils.IsSymbolic(r) {
		return idx.Lookup(r)
	}
	return catalog.Entry{}, false
}
