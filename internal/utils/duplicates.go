package utils

// CodepointFilter drops codepoints that were already emitted. It is not
// safe for concurrent use; each search owns its own filter.
type CodepointFilter struct {
	seen map[rune]struct{}
}

// NewCodepointFilter creates a filter that already excludes the given codepoints
func NewCodepointFilter(exclude ...rune) *CodepointFilter {
	seen := make(map[rune]struct{}, len(exclude)+8)
	for _, cp := range exclude {
		seen[cp] = struct{}{}
	}
	return &CodepointFilter{seen: seen}
}

// ShouldInclude checks if cp should be included in results (not a duplicate)
// Returns true the first time cp is seen, false afterwards
func (f *CodepointFilter) ShouldInclude(cp rune) bool {
	if _, ok := f.seen[cp]; ok {
		return false
	}
	f.seen[cp] = struct{}{}
	return true
}
