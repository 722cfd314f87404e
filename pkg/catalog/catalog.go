// Package catalog holds the immutable table of selectable Unicode characters.
//
// A Catalog is built once, either from the UCD subset embedded in the binary
// (Load) or from a directory holding a full copy of the UCD (LoadDir), and is
// then shared read-only for the lifetime of the process. Entries are kept in
// ascending codepoint order.
package catalog

import (
	"fmt"
	"sort"

	"github.com/bastiangx/unipick/pkg/ucd"
)

// Catalog is an immutable, codepoint-ordered set of entries.
type Catalog struct {
	entries []Entry
	byCP    map[rune]int
}

// FromEntries builds a Catalog from entries, sorting them by codepoint.
// Duplicate codepoints, empty names and invalid codepoints are rejected.
func FromEntries(entries []Entry) (*Catalog, error) {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Codepoint < sorted[j].Codepoint
	})

	byCP := make(map[rune]int, len(sorted))
	for i, e := range sorted {
		if e.Codepoint < 0 || e.Codepoint > ucd.MaxCodepoint || (e.Codepoint >= 0xD800 && e.Codepoint <= 0xDFFF) {
			return nil, corrupt("entries", fmt.Sprintf("codepoint %X is not a scalar value", e.Codepoint), nil)
		}
		if e.Name == "" {
			return nil, corrupt("entries", fmt.Sprintf("empty name for U+%04X", e.Codepoint), nil)
		}
		if _, dup := byCP[e.Codepoint]; dup {
			return nil, corrupt("entries", fmt.Sprintf("duplicate codepoint U+%04X", e.Codepoint), nil)
		}
		byCP[e.Codepoint] = i
	}

	return &Catalog{entries: sorted, byCP: byCP}, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// At returns the i-th entry in catalog order.
func (c *Catalog) At(i int) Entry {
	return c.entries[i]
}

// Entries returns the entries in catalog order. The slice is shared and must not be modified.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Lookup returns the entry for cp.
func (c *Catalog) Lookup(cp rune) (Entry, bool) {
	i, ok := c.byCP[cp]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Head returns up to n entries from the start of the catalog.
func (c *Catalog) Head(n int) []Entry {
	if n <= 0 {
		return nil
	}
	if n > len(c.entries) {
		n = len(c.entries)
	}
	out := make([]Entry, n)
	copy(out, c.entries[:n])
	return out
}

// Categories returns the distinct general categories in the catalog, sorted.
func (c *Catalog) Categories() []GeneralCategory {
	seen := make(map[GeneralCategory]struct{})
	for _, e := range c.entries {
		seen[e.Category] = struct{}{}
	}
	cats := make([]GeneralCategory, 0, len(seen))
	for cat := range seen {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}
