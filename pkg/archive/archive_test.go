package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func TestManager_CreateAndExtract(t *testing.T) {
	tempDir := t.TempDir()
	files := map[string]string{
		"content/readme.txt":     "Hello World",
		"content/docs/guide.md":  "# Guide",
		"lib/net8.0/library.dll": "binary",
		"tools/install.tengo":    "x := 1",
	}
	sourceDir := filepath.Join(tempDir, "source")
	writeTree(t, sourceDir, files)

	am := NewManager()
	ctx := context.Background()
	archivePath := filepath.Join(tempDir, "out", "pkg.1.0.0.tar.gz")
	require.NoError(t, am.Create(ctx, sourceDir, archivePath))
	require.FileExists(t, archivePath)

	extractDir := filepath.Join(tempDir, "extracted")
	written, err := am.Extract(ctx, archivePath, extractDir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"content/docs/guide.md",
		"content/readme.txt",
		"lib/net8.0/library.dll",
		"tools/install.tengo",
	}, written)

	for name, want := range files {
		got, err := os.ReadFile(filepath.Join(extractDir, filepath.FromSlash(name)))
		require.NoError(t, err)
		assert.Equal(t, want, string(got), name)
	}
}

func TestManager_ReadFile(t *testing.T) {
	tempDir := t.TempDir()
	sourceDir := filepath.Join(tempDir, "source")
	writeTree(t, sourceDir, map[string]string{"tools/uninstall.tengo": "err := \"\""})

	am := NewManager()
	ctx := context.Background()
	archivePath := filepath.Join(tempDir, "pkg.tar.gz")
	require.NoError(t, am.Create(ctx, sourceDir, archivePath))

	data, err := am.ReadFile(ctx, archivePath, "tools/uninstall.tengo")
	require.NoError(t, err)
	assert.Equal(t, "err := \"\"", string(data))

	_, err = am.ReadFile(ctx, archivePath, "tools/missing.tengo")
	assert.Error(t, err)
}

func TestManager_ExtractMissingArchive(t *testing.T) {
	am := NewManager()
	_, err := am.Extract(context.Background(), filepath.Join(t.TempDir(), "nope.zip"), t.TempDir())
	assert.Error(t, err)
}
