// Package index derives the lookup structures the matcher runs on from a
// catalog: a patricia trie of lower-cased name tokens pointing at catalog
// positions, a codepoint map for direct addressing, and the per-entry token
// sequences used for ranking.
//
// An Index is immutable once Build returns and may be shared by any number
// of goroutines.
package index

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/unipick/internal/utils"
	"github.com/bastiangx/unipick/pkg/catalog"
)

// BuildError reports an invariant violation found while indexing a catalog.
// It only happens when the catalog itself is inconsistent.
type BuildError struct {
	Codepoint rune
	Reason    string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("index build failed at U+%04X: %s", e.Codepoint, e.Reason)
}

// posting is the trie item for one token: the catalog positions of every
// entry using it, ascending and unique.
type posting struct {
	positions []int
}

// entryTokens is the ranking data of one catalog entry.
type entryTokens struct {
	names  [][]string // token sequence of the primary name, then of each alias
	tokens []string   // distinct tokens over all names
}

// Index is the immutable search structure built from a Catalog.
type Index struct {
	cat        *catalog.Catalog
	trie       *patricia.Trie
	direct     map[rune]int
	entries    []entryTokens
	vocabulary []string
}

// Build indexes cat. The same catalog always yields the same index.
func Build(cat *catalog.Catalog) (*Index, error) {
	start := time.Now()

	idx := &Index{
		cat:     cat,
		trie:    patricia.NewTrie(),
		direct:  make(map[rune]int, cat.Len()),
		entries: make([]entryTokens, cat.Len()),
	}

	postings := make(map[string]*posting)
	for pos, e := range cat.Entries() {
		if _, dup := idx.direct[e.Codepoint]; dup {
			return nil, &BuildError{Codepoint: e.Codepoint, Reason: "duplicate codepoint"}
		}
		idx.direct[e.Codepoint] = pos

		et := entryTokens{names: make([][]string, 0, len(e.Aliases)+1)}
		seen := make(map[string]struct{})
		for _, name := range e.Names() {
			toks := utils.Tokenize(utils.Fold(name))
			et.names = append(et.names, toks)
			for _, tok := range toks {
				if _, ok := seen[tok]; ok {
					continue
				}
				seen[tok] = struct{}{}
				et.tokens = append(et.tokens, tok)

				p, ok := postings[tok]
				if !ok {
					p = &posting{}
					postings[tok] = p
				}
				p.positions = append(p.positions, pos)
			}
		}
		if len(et.names[0]) == 0 {
			log.Debugf("U+%04X has no searchable tokens in %q", e.Codepoint, e.Name)
		}
		idx.entries[pos] = et
	}

	idx.vocabulary = make([]string, 0, len(postings))
	for tok := range postings {
		idx.vocabulary = append(idx.vocabulary, tok)
	}
	sort.Strings(idx.vocabulary)

	for _, tok := range idx.vocabulary {
		if !idx.trie.Insert(patricia.Prefix(tok), postings[tok]) {
			return nil, &BuildError{Reason: fmt.Sprintf("token %q inserted twice", tok)}
		}
	}

	log.Debugf("Indexed %d entries, %d tokens in %v", cat.Len(), len(idx.vocabulary), time.Since(start))
	return idx, nil
}

// Catalog returns the catalog the index was built from.
func (idx *Index) Catalog() *catalog.Catalog {
	return idx.cat
}

// Len returns the number of indexed entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Entry returns the entry at catalog position pos.
func (idx *Index) Entry(pos int) catalog.Entry {
	return idx.cat.At(pos)
}

// Position returns the catalog position of cp.
func (idx *Index) Position(cp rune) (int, bool) {
	pos, ok := idx.direct[cp]
	return pos, ok
}

// Lookup returns the entry for cp through the direct map.
func (idx *Index) Lookup(cp rune) (catalog.Entry, bool) {
	pos, ok := idx.direct[cp]
	if !ok {
		return catalog.Entry{}, false
	}
	return idx.cat.At(pos), true
}

// Vocabulary returns every distinct token, sorted. The slice must not be modified.
func (idx *Index) Vocabulary() []string {
	return idx.vocabulary
}

// NameTokens returns the token sequences of the entry at pos: the primary
// name first, then each alias. The slices must not be modified.
func (idx *Index) NameTokens(pos int) [][]string {
	return idx.entries[pos].names
}

// NameTokenCount returns the number of tokens in the primary name of the entry at pos.
func (idx *Index) NameTokenCount(pos int) int {
	return len(idx.entries[pos].names[0])
}

// Tokens returns the distinct tokens of every name of the entry at pos.
func (idx *Index) Tokens(pos int) []string {
	return idx.entries[pos].tokens
}

// Postings returns the positions of entries containing exactly token.
func (idx *Index) Postings(token string) []int {
	item := idx.trie.Get(patricia.Prefix(token))
	if item == nil {
		return nil
	}
	return item.(*posting).positions
}

// PrefixSet returns the positions of entries having a token that starts
// with prefix, collected from the token trie.
func (idx *Index) PrefixSet(prefix string) PositionSet {
	set := newPositionSet(len(idx.entries))
	err := idx.trie.VisitSubtree(patricia.Prefix(prefix), func(_ patricia.Prefix, item patricia.Item) error {
		for _, pos := range item.(*posting).positions {
			set.add(pos)
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting token trie: %v", err)
	}
	return set
}

// PrefixPostings is PrefixSet as an ascending slice.
func (idx *Index) PrefixPostings(prefix string) []int {
	return idx.PrefixSet(prefix).Positions()
}

// SubstringTokens returns the vocabulary tokens containing sub, sorted.
func (idx *Index) SubstringTokens(sub string) []string {
	var out []string
	for _, tok := range idx.vocabulary {
		if strings.Contains(tok, sub) {
			out = append(out, tok)
		}
	}
	return out
}

// SubstringSet returns the positions of entries having a token that contains sub.
// It scans the whole vocabulary.
func (idx *Index) SubstringSet(sub string) PositionSet {
	set := newPositionSet(len(idx.entries))
	for _, tok := range idx.vocabulary {
		if !strings.Contains(tok, sub) {
			continue
		}
		for _, pos := range idx.Postings(tok) {
			set.add(pos)
		}
	}
	return set
}

// SubstringPostings is SubstringSet as an ascending slice.
func (idx *Index) SubstringPostings(sub string) []int {
	return idx.SubstringSet(sub).Positions()
}
