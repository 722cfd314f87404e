package search

import (
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bastiangx/unipick/pkg/catalog"
	"github.com/bastiangx/unipick/pkg/index"
)

// DefaultCacheSize is the number of query results a Searcher keeps.
const DefaultCacheSize = 256

// Result is the answer to one query.
type Result struct {
	Matches    []Match
	Correction string // suggested query when Matches is empty, else ""
}

// Entries returns the matched entries in rank order.
func (r Result) Entries() []catalog.Entry {
	out := make([]catalog.Entry, len(r.Matches))
	for i, m := range r.Matches {
		out[i] = m.Entry
	}
	return out
}

type cacheKey struct {
	query string
	limit int
}

// Searcher wraps Rank with a result cache and the configured filters.
// The index is immutable, so cached results stay valid until the options change.
type Searcher struct {
	idx   *index.Index
	cache *lru.Cache[cacheKey, Result]

	mu   sync.RWMutex
	opts Options

	hits   atomic.Int64
	misses atomic.Int64
}

// NewSearcher creates a Searcher over idx.
func NewSearcher(idx *index.Index, opts Options) (*Searcher, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, Result](size)
	if err != nil {
		return nil, err
	}
	return &Searcher{idx: idx, cache: cache, opts: opts}, nil
}

// Index returns the index the searcher runs on.
func (s *Searcher) Index() *index.Index {
	return s.idx
}

// Options returns the current options.
func (s *Searcher) Options() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// Configure replaces the options and drops every cached result.
func (s *Searcher) Configure(opts Options) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if opts.CacheSize > 0 && opts.CacheSize != s.opts.CacheSize {
		s.cache.Resize(opts.CacheSize)
	}
	s.opts = opts
	s.cache.Purge()
	log.Debugf("Searcher reconfigured: categories=%v corrections=%v", opts.Categories, opts.SuggestCorrections)
}

// Search returns at most limit matches for query.
func (s *Searcher) Search(query string, limit int) Result {
	if limit <= 0 {
		return Result{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	key := cacheKey{query: query, limit: limit}
	if cached, ok := s.cache.Get(key); ok {
		s.hits.Add(1)
		return cached.clone()
	}
	s.misses.Add(1)

	res := Result{Matches: Rank(s.idx, query, limit, s.opts)}
	if len(res.Matches) == 0 && s.opts.SuggestCorrections {
		if q, ok := Correct(s.idx, query, s.opts); ok {
			res.Correction = q
			log.Debugf("No match for %q, suggesting %q", query, q)
		}
	}

	s.cache.Add(key, res)
	return res.clone()
}

func (r Result) clone() Result {
	out := Result{Correction: r.Correction}
	if r.Matches != nil {
		out.Matches = make([]Match, len(r.Matches))
		copy(out.Matches, r.Matches)
	}
	return out
}

// Stats returns counters about the index and the result cache
func (s *Searcher) Stats() map[string]int {
	return map[string]int{
		"entries":       s.idx.Len(),
		"tokens":        len(s.idx.Vocabulary()),
		"cachedQueries": s.cache.Len(),
		"cacheHits":     int(s.hits.Load()),
		"cacheMisses":   int(s.misses.Load()),
	}
}

var _ ISearcher = (*Searcher)(nil)
