package search

import (
	"slices"
	"strings"

	"github.com/bastiangx/unipick/internal/utils"
	"github.com/bastiangx/unipick/pkg/catalog"
	"github.com/bastiangx/unipick/pkg/index"
)

// Tier is a ranking bucket. Higher tiers sort first.
type Tier int

const (
	TierNone Tier = iota
	TierSubstring
	TierPrefix
	TierExact
	TierDirect
)

func (t Tier) String() string {
	switch t {
	case TierSubstring:
		return "substring"
	case TierPrefix:
		return "prefix"
	case TierExact:
		return "exact"
	case TierDirect:
		return "direct"
	default:
		return "none"
	}
}

// Match is one ranked result.
type Match struct {
	Entry catalog.Entry
	Tier  Tier
}

// Options tune a search. The zero value searches the whole catalog.
type Options struct {
	MaxQueryLen        int      // runes of the query that are considered
	Categories         []string // general category filters, empty means all
	CacheSize          int      // Searcher result cache entries
	SuggestCorrections bool     // Searcher reports "did you mean" queries
}

func (o Options) allows(cat catalog.GeneralCategory) bool {
	if len(o.Categories) == 0 {
		return true
	}
	for _, f := range o.Categories {
		if cat.In(f) {
			return true
		}
	}
	return false
}

// Search returns at most limit entries for query, best first. It never
// fails: an empty query browses the catalog from the start and a limit of
// zero or less yields no entries.
func Search(idx *index.Index, query string, limit int) []catalog.Entry {
	matches := Rank(idx, query, limit, Options{})
	out := make([]catalog.Entry, len(matches))
	for i, m := range matches {
		out[i] = m.Entry
	}
	return out
}

// Rank is Search with options, keeping the tier of every match.
//
// Literal addressing looks at the query as typed, so "U+00E9" and "é" keep
// their meaning; name matching runs on the folded tokens.
func Rank(idx *index.Index, query string, limit int, opts Options) []Match {
	if limit <= 0 {
		return nil
	}

	raw := strings.TrimSpace(utils.TruncateRunes(strings.ToValidUTF8(query, ""), maxQueryLen(opts)))
	normalized := utils.NormalizeQuery(raw, opts.MaxQueryLen)
	if normalized == "" {
		return browse(idx, limit, opts)
	}

	r := &ranker{idx: idx, opts: opts, limit: limit, seen: utils.NewCodepointFilter()}
	if e, ok := idx.LookupLiteral(raw); ok {
		r.seen.ShouldInclude(e.Codepoint)
		r.matches = append(r.matches, Match{Entry: e, Tier: TierDirect})
	}

	tokens := utils.Tokenize(normalized)
	if len(tokens) == 0 || r.full() {
		return r.matches
	}

	// every exact match is also a prefix match, and every prefix match a
	// substring match, so each tier is a subset of the next one
	prefix := idx.PrefixSet(tokens[0])
	for _, tok := range tokens[1:] {
		prefix.And(idx.PrefixSet(tok))
	}

	var exact, prefixed buckets
	prefix.Each(func(pos int) bool {
		if !r.accept(pos) {
			return true
		}
		if isExact(idx, pos, tokens) {
			exact.add(idx, pos)
		} else {
			prefixed.add(idx, pos)
		}
		return true
	})
	r.emit(exact, TierExact)
	r.emit(prefixed, TierPrefix)
	if r.full() {
		return r.matches
	}

	sub := idx.SubstringSet(tokens[0])
	for _, tok := range tokens[1:] {
		sub.And(idx.SubstringSet(tok))
	}
	sub.AndNot(prefix)

	var rest buckets
	sub.Each(func(pos int) bool {
		if r.accept(pos) {
			rest.add(idx, pos)
		}
		return true
	})
	r.emit(rest, TierSubstring)
	return r.matches
}

// ranker accumulates the result list of one Rank call.
type ranker struct {
	idx     *index.Index
	opts    Options
	limit   int
	seen    *utils.CodepointFilter
	matches []Match
}

func (r *ranker) full() bool {
	return len(r.matches) >= r.limit
}

// accept drops the direct hit and entries outside the category filter.
func (r *ranker) accept(pos int) bool {
	e := r.idx.Entry(pos)
	return r.opts.allows(e.Category) && r.seen.ShouldInclude(e.Codepoint)
}

// emit appends positions by ascending primary-name token count; within a
// bucket positions are in catalog order, which is ascending codepoint.
func (r *ranker) emit(b buckets, tier Tier) {
	for _, bucket := range b {
		for _, pos := range bucket {
			if r.full() {
				return
			}
			r.matches = append(r.matches, Match{Entry: r.idx.Entry(pos), Tier: tier})
		}
	}
}

// buckets groups positions by primary-name token count.
type buckets [][]int

func (b *buckets) add(idx *index.Index, pos int) {
	n := idx.NameTokenCount(pos)
	for len(*b) <= n {
		*b = append(*b, nil)
	}
	(*b)[n] = append((*b)[n], pos)
}

// isExact reports whether tokens spell the primary name or an alias.
func isExact(idx *index.Index, pos int, tokens []string) bool {
	for _, name := range idx.NameTokens(pos) {
		if slices.Equal(name, tokens) {
			return true
		}
	}
	return false
}

func maxQueryLen(opts Options) int {
	if opts.MaxQueryLen <= 0 {
		return utils.DefaultMaxQueryLen
	}
	return opts.MaxQueryLen
}

// browse lists the catalog in order, honouring the category filter.
func browse(idx *index.Index, limit int, opts Options) []Match {
	if len(opts.Categories) == 0 {
		head := idx.Catalog().Head(limit)
		out := make([]Match, len(head))
		for i, e := range head {
			out[i] = Match{Entry: e, Tier: TierNone}
		}
		return out
	}

	var out []Match
	for _, e := range idx.Catalog().Entries() {
		if len(out) == limit {
			break
		}
		if opts.allows(e.Category) {
			out = append(out, Match{Entry: e, Tier: TierNone})
		}
	}
	return out
}
