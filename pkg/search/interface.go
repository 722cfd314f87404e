// Package search turns a query into a ranked list of catalog entries.
//
// Ranking puts direct hits (hex or glyph literals) first, then entries whose
// name or alias equals the query, then entries where every query token
// prefixes a name token, then entries where every query token is a
// substring of a name token. Entries missing any token are never returned.
// Ties break on fewer primary name tokens, then ascending codepoint.
package search

// ISearcher defines the interface for query matchers
type ISearcher interface {
	// Search returns at most limit ranked matches for query
	Search(query string, limit int) Result

	// Configure replaces the options and drops cached results
	Configure(opts Options)

	// Stats returns counters about the index and the result cache
	Stats() map[string]int
}
