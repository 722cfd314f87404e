package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TruncateRunes cuts s after max runes
func TruncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

// CollapseSpaces trims s and replaces every run of whitespace with one space
func CollapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// JoinTokens joins tokens the way a normalized query spells them
func JoinTokens(tokens []string) string {
	return strings.Join(tokens, " ")
}
