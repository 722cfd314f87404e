package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/unipick/pkg/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.FromEntries([]catalog.Entry{
		{Codepoint: 0x0A, Name: "LINE FEED", Aliases: []string{"NEW LINE", "LF"}, Category: "Cc"},
		{Codepoint: 0x41, Name: "LATIN CAPITAL LETTER A", Category: "Lu"},
		{Codepoint: 0x61, Name: "LATIN SMALL LETTER A", Category: "Ll"},
		{Codepoint: 0x2192, Name: "RIGHTWARDS ARROW", Category: "Sm"},
		{Codepoint: 0x2603, Name: "SNOWMAN", Category: "So"},
		{Codepoint: 0x26C4, Name: "SNOWMAN WITHOUT SNOW", Category: "So"},
	})
	require.NoError(t, err)
	return cat
}

func TestBuild(t *testing.T) {
	idx, err := Build(testCatalog(t))
	require.NoError(t, err)
	assert.Equal(t, 6, idx.Len())

	pos, ok := idx.Position(0x2603)
	require.True(t, ok)
	assert.Equal(t, "SNOWMAN", idx.Entry(pos).Name)
	assert.Equal(t, [][]string{{"snowman"}}, idx.NameTokens(pos))
	assert.Equal(t, 1, idx.NameTokenCount(pos))

	lf, ok := idx.Position(0x0A)
	require.True(t, ok)
	assert.Equal(t, [][]string{{"line", "feed"}, {"new", "line"}, {"lf"}}, idx.NameTokens(lf))
	assert.Equal(t, []string{"line", "feed", "new", "lf"}, idx.Tokens(lf))
}

func TestDirectMapCoversEveryEntryOnce(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)
	idx, err := Build(cat)
	require.NoError(t, err)

	require.Equal(t, cat.Len(), idx.Len())
	for i, e := range cat.Entries() {
		pos, ok := idx.Position(e.Codepoint)
		require.True(t, ok, "U+%04X", e.Codepoint)
		require.Equal(t, i, pos)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	cat := testCatalog(t)
	a, err := Build(cat)
	require.NoError(t, err)
	b, err := Build(cat)
	require.NoError(t, err)

	assert.Equal(t, a.Vocabulary(), b.Vocabulary())
	for _, tok := range a.Vocabulary() {
		assert.Equal(t, a.Postings(tok), b.Postings(tok), tok)
	}
}

func TestPostings(t *testing.T) {
	idx, err := Build(testCatalog(t))
	require.NoError(t, err)

	// positions follow catalog order
	assert.Equal(t, []int{1, 2}, idx.Postings("latin"))
	assert.Equal(t, []int{4, 5}, idx.Postings("snowman"))
	assert.Nil(t, idx.Postings("snow man"))

	assert.Equal(t, []int{4, 5}, idx.PrefixPostings("snow"))
	assert.Equal(t, []int{1, 2}, idx.PrefixPostings("lat"))
	assert.Equal(t, []int{0}, idx.PrefixPostings("li"))
	assert.Empty(t, idx.PrefixPostings("zzz"))

	assert.Equal(t, []string{"capital", "small"}, idx.SubstringTokens("al"))
	assert.Equal(t, []int{1, 2}, idx.SubstringPostings("al"))
	assert.Equal(t, []int{3}, idx.SubstringPostings("arrow"))
}

func TestParseHexLiteral(t *testing.T) {
	testCases := []struct {
		in   string
		want rune
		ok   bool
	}{
		{"U+0041", 0x41, true},
		{"u+41", 0x41, true},
		{"u2603", 0x2603, true},
		{"U1F600", 0x1F600, true},
		{"2603", 0x2603, true},
		{"a", 0x0A, true},
		{" 10ffff ", 0x10FFFF, true},
		{"u41", 0, false},
		{"u+", 0, false},
		{"110000", 0, false},
		{"1234567", 0, false},
		{"snowman", 0, false},
		{"", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseHexLiteral(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestLookupLiteral(t *testing.T) {
	idx, err := Build(testCatalog(t))
	require.NoError(t, err)

	e, ok := idx.LookupLiteral("U+0041")
	require.True(t, ok)
	assert.Equal(t, "LATIN CAPITAL LETTER A", e.Name)

	e, ok = idx.LookupLiteral("→")
	require.True(t, ok)
	assert.Equal(t, rune(0x2192), e.Codepoint)

	// valid hex, but not in the catalog
	_, ok = idx.LookupLiteral("U+0042")
	assert.False(t, ok)

	// letters are searched by name, not addressed
	_, ok = idx.LookupLiteral("A")
	assert.True(t, ok, "bare A is the hex literal for U+000A")
	_, ok = idx.LookupLiteral("é")
	assert.False(t, ok)
}

func TestPositionSet(t *testing.T) {
	s := newPositionSet(130)
	for _, p := range []int{0, 63, 64, 129} {
		s.add(p)
	}
	assert.Equal(t, 4, s.Len())
	assert.True(t, s.Has(64))
	assert.False(t, s.Has(65))
	assert.False(t, s.Has(1000))
	assert.Equal(t, []int{0, 63, 64, 129}, s.Positions())

	o := newPositionSet(130)
	o.add(63)
	o.add(129)

	and := append(PositionSet(nil), s...)
	and.And(o)
	assert.Equal(t, []int{63, 129}, and.Positions())

	s.AndNot(o)
	assert.Equal(t, []int{0, 64}, s.Positions())

	var first []int
	s.Each(func(pos int) bool {
		first = append(first, pos)
		return false
	})
	assert.Equal(t, []int{0}, first)
}

func TestPrefixSetUsesTrie(t *testing.T) {
	idx, err := Build(testCatalog(t))
	require.NoError(t, err)

	// "l" reaches line, latin, letter and lf
	assert.Equal(t, []int{0, 1, 2}, idx.PrefixSet("l").Positions())
	assert.Equal(t, []int{4, 5}, idx.PrefixSet("snowm").Positions())
	assert.Zero(t, idx.PrefixSet("x").Len())
	assert.Equal(t, []int{5}, idx.SubstringSet("out").Positions())
}
