package search

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearcherCaches(t *testing.T) {
	s, err := NewSearcher(smallIndex(t), Options{CacheSize: 8})
	require.NoError(t, err)

	first := s.Search("snow", 10)
	second := s.Search("snow", 10)
	assert.Equal(t, first, second)

	stats := s.Stats()
	assert.Equal(t, 1, stats["cacheHits"])
	assert.Equal(t, 1, stats["cacheMisses"])
	assert.Equal(t, 1, stats["cachedQueries"])
	assert.Equal(t, 8, stats["entries"])

	// a different limit is a different query
	assert.Len(t, s.Search("snow", 1).Matches, 1)
	assert.Equal(t, 2, s.Stats()["cachedQueries"])
}

func TestSearcherResultsAreCopies(t *testing.T) {
	s, err := NewSearcher(smallIndex(t), Options{})
	require.NoError(t, err)

	res := s.Search("snow", 10)
	require.NotEmpty(t, res.Matches)
	res.Matches[0].Entry.Name = "MUTATED"

	again := s.Search("snow", 10)
	assert.Equal(t, "SNOWMAN", again.Matches[0].Entry.Name)
}

func TestSearcherCorrections(t *testing.T) {
	s, err := NewSearcher(smallIndex(t), Options{SuggestCorrections: true})
	require.NoError(t, err)

	res := s.Search("snowmn", 10)
	assert.Empty(t, res.Matches)
	assert.Equal(t, "snowman", res.Correction)

	res = s.Search("snowman", 10)
	assert.NotEmpty(t, res.Matches)
	assert.Empty(t, res.Correction)

	s.Configure(Options{SuggestCorrections: false})
	assert.Empty(t, s.Search("snowmn", 10).Correction)
}

func TestSearcherConfigurePurges(t *testing.T) {
	s, err := NewSearcher(smallIndex(t), Options{})
	require.NoError(t, err)

	assert.Len(t, s.Search("snow", 10).Matches, 3)
	s.Configure(Options{Categories: []string{"Sm"}})
	assert.Equal(t, 0, s.Stats()["cachedQueries"])
	assert.Empty(t, s.Search("snow", 10).Matches)
	assert.Equal(t, []string{"Sm"}, s.Options().Categories)
}

func TestSearcherConcurrentReads(t *testing.T) {
	s, err := NewSearcher(embeddedIndex(t), Options{})
	require.NoError(t, err)

	queries := []string{"arrow", "snowman", "u+2603", "latin", "", "face"}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				q := queries[(i+j)%len(queries)]
				s.Search(q, 16)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, rune(0x2603), s.Search("snowman", 1).Matches[0].Entry.Codepoint)
}

func TestSearcherZeroLimit(t *testing.T) {
	s, err := NewSearcher(smallIndex(t), Options{})
	require.NoError(t, err)
	assert.Empty(t, s.Search("snow", 0).Matches)
}
