package catalog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/unipick/pkg/ucd"
)

func TestLoadEmbedded(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)
	require.Greater(t, cat.Len(), 5000)

	snowman, ok := cat.Lookup(0x2603)
	require.True(t, ok)
	assert.Equal(t, "SNOWMAN", snowman.Name)
	assert.Equal(t, GeneralCategory("So"), snowman.Category)
	assert.Equal(t, "Miscellaneous Symbols", snowman.Block)
	assert.Equal(t, "☃", snowman.String())
	assert.Equal(t, "U+2603", snowman.Hex())

	a, ok := cat.Lookup('A')
	require.True(t, ok)
	assert.Equal(t, "LATIN CAPITAL LETTER A", a.Name)
	assert.Equal(t, "Basic Latin", a.Block)

	grin, ok := cat.Lookup(0x1F600)
	require.True(t, ok)
	assert.Equal(t, "GRINNING FACE", grin.Name)
}

func TestLoadIsOncePerProcess(t *testing.T) {
	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestLoadedCatalogIsOrdered(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	entries := cat.Entries()
	for i := 1; i < len(entries); i++ {
		require.Less(t, entries[i-1].Codepoint, entries[i].Codepoint)
	}
	for _, e := range entries {
		require.NotEmpty(t, e.Name, "U+%04X", e.Codepoint)
		require.NotEqual(t, byte('<'), e.Name[0], "U+%04X", e.Codepoint)
	}
}

func TestEmbeddedAliasMerge(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	lf, ok := cat.Lookup('\n')
	require.True(t, ok)
	assert.Equal(t, "LINE FEED", lf.Name)
	assert.Equal(t, []string{"NEW LINE", "END OF LINE", "LF", "NL", "EOL"}, lf.Aliases)
	assert.Equal(t, " ", lf.Glyph())
	assert.Equal(t, "\n", lf.String())

	// figment names stand in for unnamed C1 controls
	pad, ok := cat.Lookup(0x80)
	require.True(t, ok)
	assert.Equal(t, "PADDING CHARACTER", pad.Name)
	assert.Equal(t, []string{"PAD"}, pad.Aliases)

	gha, ok := cat.Lookup(0x01A2)
	require.True(t, ok)
	assert.Equal(t, "LATIN CAPITAL LETTER GHA", gha.Name)
	assert.Equal(t, []string{"LATIN CAPITAL LETTER OI"}, gha.Aliases)

	nbsp, ok := cat.Lookup(0xA0)
	require.True(t, ok)
	assert.Equal(t, "NO-BREAK SPACE", nbsp.Name)
	assert.Contains(t, nbsp.Aliases, "NBSP")
}

func TestGlyph(t *testing.T) {
	grave := Entry{Codepoint: 0x0300, Name: "COMBINING GRAVE ACCENT", Category: "Mn"}
	assert.Equal(t, "\u25cc\u0300", grave.Glyph())
	assert.Equal(t, "\u0300", grave.String())

	star := Entry{Codepoint: 0x2605, Name: "BLACK STAR", Category: "So"}
	assert.Equal(t, "★", star.Glyph())
}

func TestGeneralCategory(t *testing.T) {
	assert.True(t, GeneralCategory("So").In("S"))
	assert.True(t, GeneralCategory("So").In("So"))
	assert.False(t, GeneralCategory("Sm").In("So"))
	assert.False(t, GeneralCategory("Lu").In(""))
	assert.Equal(t, "L", GeneralCategory("Lu").Major())
	assert.True(t, GeneralCategory("Me").IsMark())
}

func TestFromEntries(t *testing.T) {
	cat, err := FromEntries([]Entry{
		{Codepoint: 0x42, Name: "B"},
		{Codepoint: 0x41, Name: "A"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, rune(0x41), cat.At(0).Codepoint)
	assert.Len(t, cat.Head(10), 2)
	assert.Len(t, cat.Head(1), 1)
	assert.Empty(t, cat.Head(0))
}

func TestCategories(t *testing.T) {
	cat, err := FromEntries([]Entry{
		{Codepoint: 0x2603, Name: "SNOWMAN", Category: "So"},
		{Codepoint: 0x41, Name: "LATIN CAPITAL LETTER A", Category: "Lu"},
		{Codepoint: 0x2192, Name: "RIGHTWARDS ARROW", Category: "Sm"},
		{Codepoint: 0x2605, Name: "BLACK STAR", Category: "So"},
	})
	require.NoError(t, err)
	assert.Equal(t, []GeneralCategory{"Lu", "Sm", "So"}, cat.Categories())
}

func TestFromEntriesRejectsCorruptData(t *testing.T) {
	testCases := []struct {
		name    string
		entries []Entry
	}{
		{"duplicate", []Entry{{Codepoint: 1, Name: "X"}, {Codepoint: 1, Name: "Y"}}},
		{"empty name", []Entry{{Codepoint: 1}}},
		{"out of range", []Entry{{Codepoint: 0x110000, Name: "X"}}},
		{"surrogate", []Entry{{Codepoint: 0xD800, Name: "X"}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromEntries(tc.entries)
			var dce *DataCorruptError
			require.ErrorAs(t, err, &dce)
		})
	}
}

func writeUCD(t *testing.T, dir, unicodeData string, gz bool) {
	t.Helper()
	if gz {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, err := zw.Write([]byte(unicodeData))
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		require.NoError(t, os.WriteFile(filepath.Join(dir, "UnicodeData.txt.gz"), buf.Bytes(), 0644))
		return
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "UnicodeData.txt"), []byte(unicodeData), 0644))
}

const dirUnicodeData = `0009;<control>;Cc;0;S;;;;;N;;;;;
0041;LATIN CAPITAL LETTER A;Lu;0;L;;;;;N;;;;0061;
2603;SNOWMAN;So;0;ON;;;;;N;;;;;
4E00;<CJK Ideograph, First>;Lo;0;L;;;;;N;;;;;
`

func TestLoadDir(t *testing.T) {
	for _, gz := range []bool{false, true} {
		dir := t.TempDir()
		writeUCD(t, dir, dirUnicodeData, gz)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "NameAliases.txt"),
			[]byte("0009;CHARACTER TABULATION;control\n0009;TAB;abbreviation\n"), 0644))

		cat, err := LoadDir(dir)
		require.NoError(t, err)
		require.Equal(t, 3, cat.Len(), "gzip=%v", gz)

		tab, ok := cat.Lookup('\t')
		require.True(t, ok)
		assert.Equal(t, "CHARACTER TABULATION", tab.Name)
		assert.Equal(t, []string{"TAB"}, tab.Aliases)
		// no Blocks.txt
		assert.Equal(t, ucd.NoBlock, tab.Block)

		_, ok = cat.Lookup(0x4E00)
		assert.False(t, ok)
	}
}

func TestLoadDirWithUCDRanges(t *testing.T) {
	dir := t.TempDir()
	writeUCD(t, dir, "0041;LATIN CAPITAL LETTER A;Lu;0;L;;;;;N;;;;0061;\n"+
		"2603;SNOWMAN;So;0;ON;;;;;N;;;;;\n"+
		"4E00;<CJK Ideograph, First>;Lo;0;L;;;;;N;;;;;\n"+
		"9FFF;<CJK Ideograph, Last>;Lo;0;L;;;;;N;;;;;\n"+
		"D800;<Non Private Use High Surrogate, First>;Cs;0;L;;;;;N;;;;;\n"+
		"DB7F;<Non Private Use High Surrogate, Last>;Cs;0;L;;;;;N;;;;;\n"+
		"DC00;<Low Surrogate, First>;Cs;0;L;;;;;N;;;;;\n"+
		"DFFF;<Low Surrogate, Last>;Cs;0;L;;;;;N;;;;;\n"+
		"E000;<Private Use, First>;Co;0;L;;;;;N;;;;;\n"+
		"F8FF;<Private Use, Last>;Co;0;L;;;;;N;;;;;\n", false)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Blocks.txt"), []byte(
		"0000..007F; Basic Latin\n"+
			"2600..26FF; Miscellaneous Symbols\n"+
			"D800..DB7F; High Surrogates\n"+
			"DC00..DFFF; Low Surrogates\n"+
			"E000..F8FF; Private Use Area\n"), 0644))

	cat, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	snowman, ok := cat.Lookup(0x2603)
	require.True(t, ok)
	assert.Equal(t, "Miscellaneous Symbols", snowman.Block)
	_, ok = cat.Lookup(0xD800)
	assert.False(t, ok)
}

func TestLoadDirErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
	})

	t.Run("missing UnicodeData", func(t *testing.T) {
		_, err := LoadDir(t.TempDir())
		var dce *DataCorruptError
		require.ErrorAs(t, err, &dce)
	})

	t.Run("malformed line", func(t *testing.T) {
		dir := t.TempDir()
		writeUCD(t, dir, "0041;LATIN CAPITAL LETTER A;Lu;0;L;;;;;N;;;;0061;\n0042;BROKEN\n", false)
		_, err := LoadDir(dir)
		var dce *DataCorruptError
		require.ErrorAs(t, err, &dce)
		assert.Equal(t, "UnicodeData.txt", dce.Source)
		assert.Equal(t, 2, dce.Line)
		assert.True(t, errors.Is(err, ucd.ErrFieldCount))
	})

	t.Run("duplicate codepoint", func(t *testing.T) {
		dir := t.TempDir()
		writeUCD(t, dir, "0041;A;Lu;0;L;;;;;N;;;;;\n0041;AGAIN;Lu;0;L;;;;;N;;;;;\n", false)
		_, err := LoadDir(dir)
		var dce *DataCorruptError
		require.ErrorAs(t, err, &dce)
		assert.Contains(t, dce.Error(), "duplicate")
	})

	t.Run("fake gzip", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "UnicodeData.txt.gz"), []byte("plain text"), 0644))
		_, err := LoadDir(dir)
		var dce *DataCorruptError
		require.ErrorAs(t, err, &dce)
	})
}

func TestMergeAliasesCorrection(t *testing.T) {
	name, aliases := mergeAliases("SCRIPT CAPITAL P", []ucd.Alias{
		{Codepoint: 0x2118, Value: "WEIERSTRASS ELLIPTIC FUNCTION", Type: ucd.AliasCorrection},
	})
	assert.Equal(t, "WEIERSTRASS ELLIPTIC FUNCTION", name)
	assert.Equal(t, []string{"SCRIPT CAPITAL P"}, aliases)
}

func TestMergeAliasesUnnamedControl(t *testing.T) {
	name, aliases := mergeAliases("<control>", nil)
	assert.Equal(t, "<control>", name)
	assert.Nil(t, aliases)
}
