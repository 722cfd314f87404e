package mode

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/unipick/pkg/catalog"
	"github.com/bastiangx/unipick/pkg/search"
)

func TestSourceEmbedded(t *testing.T) {
	idx, err := Source{AliasesFile: "aliases.yaml", SearchDirs: []string{t.TempDir()}}.IndexFunc()()
	require.NoError(t, err)

	entry, ok := idx.Lookup(0x2603)
	require.True(t, ok)
	assert.Equal(t, "SNOWMAN", entry.Name)
}

func TestSourceOverlay(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aliases.yaml"), []byte("aliases:\n  U+2603: [frosty]\n"), 0o644))

	src := Source{AliasesFile: "aliases.yaml", SearchDirs: []string{dir}}
	idx, err := src.IndexFunc()()
	require.NoError(t, err)

	got := search.Search(idx, "frosty", 5)
	require.NotEmpty(t, got)
	assert.Equal(t, rune(0x2603), got[0].Codepoint)
}

func TestSourceErrors(t *testing.T) {
	t.Run("bad overlay", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "aliases.yaml"), []byte("aliases:\n  U+110000: [nope]\n"), 0o644))

		_, err := Source{AliasesFile: "aliases.yaml", SearchDirs: []string{dir}}.IndexFunc()()
		var dce *catalog.DataCorruptError
		assert.True(t, errors.As(err, &dce))
	})

	t.Run("missing data dir", func(t *testing.T) {
		m := New(Source{DataDir: filepath.Join(t.TempDir(), "nope")}.IndexFunc(), Config{})
		err := m.Activate()
		var ae *ActivationError
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, StateInactive, m.State())
	})
}
