package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 32, cfg.Search.DefaultLimit)
	assert.Equal(t, 256, cfg.Search.MaxLimit)
	assert.True(t, cfg.Search.SuggestCorrections)
	assert.Equal(t, "aliases.yaml", cfg.Catalog.AliasesFile)
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[search]
default_limit = "ten"
max_limit = 100
categories = ["So", "Sm"]

[cli]
copy_on_activate = true
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Search.DefaultLimit, "bad value keeps the default")
	assert.Equal(t, 100, cfg.Search.MaxLimit)
	assert.Equal(t, []string{"So", "Sm"}, cfg.Search.Categories)
	assert.True(t, cfg.CLI.CopyOnActivate)
}

func TestLoadConfigInvalidValuesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[search]\ndefault_limit = 50\nmax_limit = 10\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.DefaultLimit = 0
	cfg.Search.CacheSize = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_limit")
	assert.Contains(t, err.Error(), "cache_size")
}

func TestLimit(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 32, cfg.Limit(0))
	assert.Equal(t, 32, cfg.Limit(-5))
	assert.Equal(t, 10, cfg.Limit(10))
	assert.Equal(t, 256, cfg.Limit(1000))
}

func TestSearchOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.Categories = []string{"S"}
	opts := cfg.SearchOptions()
	assert.Equal(t, []string{"S"}, opts.Categories)
	assert.Equal(t, 128, opts.MaxQueryLen)
	assert.True(t, opts.SuggestCorrections)

	opts.Categories[0] = "L"
	assert.Equal(t, "S", cfg.Search.Categories[0])
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := DefaultConfig()

	limit := 10
	off := false
	require.NoError(t, cfg.Update(path, &limit, nil, &off))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.Search.DefaultLimit)
	assert.False(t, loaded.Search.SuggestCorrections)

	bad := 1000
	assert.Error(t, cfg.Update(path, &bad, nil, nil))
}

func TestLoaderReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, SaveConfig(DefaultConfig(), path))

	l := NewLoader(path, nil)
	defer l.Close()
	assert.Equal(t, uint64(0), l.Generation())

	require.NoError(t, os.WriteFile(path, []byte("[search]\ndefault_limit = 5\n"), 0644))
	require.NoError(t, l.Reload())
	assert.Equal(t, 5, l.Config().Search.DefaultLimit)
	assert.Equal(t, uint64(1), l.Generation())

	// a broken edit keeps the working config
	require.NoError(t, os.WriteFile(path, []byte("[search\n"), 0644))
	assert.Error(t, l.Reload())
	assert.Equal(t, 5, l.Config().Search.DefaultLimit)
	assert.Equal(t, uint64(1), l.Generation())
}

func TestLoaderWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, SaveConfig(DefaultConfig(), path))

	l := NewLoader(path, DefaultConfig())
	changed := make(chan *Config, 4)
	l.OnChange(func(c *Config) { changed <- c })
	require.NoError(t, l.Watch(20*time.Millisecond))
	defer l.Close()

	require.NoError(t, os.WriteFile(path, []byte("[search]\ndefault_limit = 7\n"), 0644))

	select {
	case c := <-changed:
		assert.Equal(t, 7, c.Search.DefaultLimit)
	case <-time.After(5 * time.Second):
		t.Fatal("config change not observed")
	}
	assert.Equal(t, 7, l.Config().Search.DefaultLimit)
}

func TestLoaderWatchWithoutPath(t *testing.T) {
	l := NewLoader("", nil)
	assert.Error(t, l.Watch(time.Millisecond))
	assert.NoError(t, l.Close())
}

func TestRebuildConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	path := filepath.Join(home, "unipick", FileName)
	assert.Equal(t, path, GetActiveConfigPath(""))

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("[search]\ndefault_limit = 7\n"), 0644))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Search.DefaultLimit)

	require.NoError(t, RebuildConfigFile())
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Search.DefaultLimit, cfg.Search.DefaultLimit)
}

func TestGetActiveConfigPathIsAbsolute(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	assert.Equal(t, filepath.Join(dir, "custom.toml"), GetActiveConfigPath("custom.toml"))
}
