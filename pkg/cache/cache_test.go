package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/solpkg/pkg/cache"
	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populate(t *testing.T, dir string) {
	t.Helper()
	files := map[string]int{
		filepath.Join(cache.FeedsDir, "official.json"):                     100,
		filepath.Join(cache.FeedsDir, "nightly.json"):                      50,
		filepath.Join(cache.PackagesDir, "contoso.json.1.0-pkg.tar.gz"):    1000,
		filepath.Join(cache.PackagesDir, "nested", "contoso.base.2.0.zip"): 24,
	}
	for name, size := range files {
		full := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, make([]byte, size), 0o644))
	}
}

func TestNewManager(t *testing.T) {
	_, err := cache.NewManager("")
	require.ErrorIs(t, err, errors.ErrCacheDirectory)

	dir := filepath.Join(t.TempDir(), "nonexistent")
	mgr, err := cache.NewManager(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, mgr.Directory())

	info, err := mgr.Info()
	require.NoError(t, err)
	assert.Zero(t, info.TotalSize)
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	populate(t, dir)
	mgr, err := cache.NewManager(dir)
	require.NoError(t, err)

	info, err := mgr.Info()
	require.NoError(t, err)
	assert.Equal(t, int64(150), info.FeedSize)
	assert.Equal(t, 2, info.FeedFiles)
	assert.Equal(t, int64(1024), info.PackageSize)
	assert.Equal(t, 2, info.PackageFiles)
	assert.Equal(t, int64(1174), info.TotalSize)
}

func TestClean(t *testing.T) {
	tests := []struct {
		name         string
		opts         cache.CleanOptions
		feedsFreed   int64
		packageFreed int64
	}{
		{name: "everything by default", opts: cache.CleanOptions{}, feedsFreed: 150, packageFreed: 1024},
		{name: "feeds only", opts: cache.CleanOptions{Feeds: true}, feedsFreed: 150},
		{name: "packages only", opts: cache.CleanOptions{Packages: true}, packageFreed: 1024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			populate(t, dir)
			mgr, err := cache.NewManager(dir)
			require.NoError(t, err)

			result, err := mgr.Clean(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.feedsFreed, result.FeedsFreed)
			assert.Equal(t, tt.packageFreed, result.PackageFreed)
			assert.Equal(t, tt.feedsFreed+tt.packageFreed, result.TotalFreed)

			// cleaned areas are recreated empty
			info, err := mgr.Info()
			require.NoError(t, err)
			assert.Equal(t, 1174-result.TotalFreed, info.TotalSize)
			assert.DirExists(t, filepath.Join(dir, cache.FeedsDir))
			assert.DirExists(t, filepath.Join(dir, cache.PackagesDir))
		})
	}
}

func TestClean_Empty(t *testing.T) {
	mgr, err := cache.NewManager(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)

	result, err := mgr.Clean(cache.CleanOptions{})
	require.NoError(t, err)
	assert.Zero(t, result.TotalFreed)
	assert.Equal(t, "No files were removed from the cache.", result.Summary())
}

func TestSummary(t *testing.T) {
	r := &cache.CleanResult{TotalFreed: 2048, FeedsFreed: 2048}
	assert.Equal(t, "Successfully cleaned cache. Freed 2.0 KB of disk space.\n- Feeds: 2.0 KB", r.Summary())
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cache.FormatBytes(tt.in))
	}
}
