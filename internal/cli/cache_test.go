package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/commitgraph/pkg/cache"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.n))
	}
}

func TestOpenCache(t *testing.T) {
	_, cacheHome := isolateConfig(t)
	c := New(&strings.Builder{}, LogInfo)
	ctx := context.Background()

	cc, err := c.openCache(ctx, true)
	require.NoError(t, err)
	assert.IsType(t, cache.NullCache{}, cc)

	c.Config.Cache.Backend = cache.BackendFile
	cc, err = c.openCache(ctx, false)
	require.NoError(t, err)
	fc, ok := cc.(*cache.FileCache)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(cacheHome, appName), fc.Dir())

	c.Config.Cache.Backend = cache.BackendMemory
	c.Config.Cache.TTL = time.Minute
	cc, err = c.openCache(ctx, false)
	require.NoError(t, err)
	assert.IsType(t, &cache.MemoryCache{}, cc)
}

func TestRenderUsesFileCache(t *testing.T) {
	_, cacheHome := isolateConfig(t)
	dir := t.TempDir()
	input := writeFlow(t, dir)
	c := New(&strings.Builder{}, LogInfo)
	c.Config.Cache.Backend = cache.BackendFile
	opts := renderOpts{formats: []string{"svg"}, output: filepath.Join(dir, "out.svg"), scale: 2}

	require.NoError(t, c.runRender(context.Background(), input, opts, &strings.Builder{}))

	fc, err := cache.NewFileCache(filepath.Join(cacheHome, appName))
	require.NoError(t, err)
	entries, size, err := fc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, entries)
	assert.Positive(t, size)

	first, err := os.ReadFile(opts.output)
	require.NoError(t, err)
	require.NoError(t, os.Remove(opts.output))
	require.NoError(t, c.runRender(context.Background(), input, opts, &strings.Builder{}))
	second, err := os.ReadFile(opts.output)
	require.NoError(t, err)
	assert.Equal(t, first, second, "cached artifact matches the fresh one")
}

func TestCacheCommands(t *testing.T) {
	_, cacheHome := isolateConfig(t)
	fc, err := cache.NewFileCache(filepath.Join(cacheHome, appName))
	require.NoError(t, err)
	require.NoError(t, fc.Set(context.Background(), "k", []byte("v"), 0))

	c := New(&strings.Builder{}, LogInfo)
	root := c.RootCommand()
	var out strings.Builder
	root.SetOut(&out)

	root.SetArgs([]string{"cache", "path"})
	require.NoError(t, root.Execute())
	assert.Equal(t, filepath.Join(cacheHome, appName)+"\n", out.String())

	root.SetArgs([]string{"cache", "clear"})
	require.NoError(t, root.Execute())
	entries, _, err := fc.Stats()
	require.NoError(t, err)
	assert.Zero(t, entries)
}
