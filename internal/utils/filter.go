package utils

import (
	"unicode"
	"unicode/utf8"
)

// IsSeparator reports whether r splits name tokens
func IsSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// IsHexDigit checks for an ASCII hexadecimal digit
func IsHexDigit(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

// IsHexString checks if s is made only of hexadecimal digits
func IsHexString(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !IsHexDigit(r) {
			return false
		}
	}
	return true
}

// SingleRune returns the only rune of s, if s holds exactly one.
func SingleRune(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError {
		return 0, false
	}
	return r, true
}

// IsSymbolic checks if r is neither a letter, a digit nor whitespace
func IsSymbolic(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
}
