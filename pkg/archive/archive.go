// Package archive reads and writes package archives (.tar.gz, .zip and the
// other formats mholt/archives detects).
package archive

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glorpus-work/solpkg/internal/logger"
	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/glorpus-work/solpkg/pkg/fsutil"
	"github.com/mholt/archives"
)

// Manager handles archive extraction and creation.
type Manager struct{}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// Extract unpacks the archive into destDir and returns the slash-separated
// paths of the regular files it wrote, sorted.
func (am *Manager) Extract(ctx context.Context, archivePath, destDir string) ([]string, error) {
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive file: %w", err)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	if err := fsutil.EnsureDir(destDir); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	var files []string
	err = fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		written, err := am.extractEntry(fsys, name, destDir, d)
		if err != nil {
			return err
		}
		if written {
			files = append(files, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	logger.Debug("archive extracted", logger.Fields{"archive": archivePath, "dest": destDir, "files": len(files)})
	return files, nil
}

// ReadFile returns the content of one entry of the archive.
func (am *Manager) ReadFile(ctx context.Context, archivePath, name string) ([]byte, error) {
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive file: %w", err)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from %s: %w", name, archivePath, err)
	}
	return data, nil
}

// Create packs sourceDir into a gzip-compressed tarball at archivePath.
func (am *Manager) Create(ctx context.Context, sourceDir, archivePath string) error {
	absolutePath, err := filepath.Abs(sourceDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for source directory: %w", err)
	}

	archiveFiles, err := archives.FilesFromDisk(ctx, nil, map[string]string{
		absolutePath + string(os.PathSeparator): "",
	})
	if err != nil {
		return fmt.Errorf("failed to read files from disk: %w", err)
	}

	if err := fsutil.EnsureFileDir(archivePath); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", archivePath, err)
	}
	file, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", archivePath, err)
	}
	defer func() {
		_ = file.Sync()
		_ = file.Close()
	}()

	format := archives.CompressedArchive{
		Compression: archives.Gz{},
		Archival:    archives.Tar{},
	}
	if err := format.Archive(ctx, file, archiveFiles); err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	return nil
}

// extractEntry writes one archive entry below destDir and reports whether a
// regular file was written.
func (am *Manager) extractEntry(fsys fs.FS, name, destDir string, d fs.DirEntry) (bool, error) {
	if name == "." {
		return false, nil
	}
	if !fs.ValidPath(name) || strings.HasPrefix(path.Clean(name), "../") {
		return false, errors.Wrapf(errors.ErrInvalidPath, "archive entry %s escapes the destination", name)
	}

	targetPath := filepath.Join(destDir, filepath.FromSlash(name))
	if d.IsDir() {
		return false, fsutil.EnsureDir(targetPath)
	}

	info, err := d.Info()
	if err != nil {
		return false, fmt.Errorf("failed to get file info for %s: %w", name, err)
	}
	// links are never followed out of a package
	if info.Mode()&os.ModeSymlink != 0 {
		logger.Warn("skipping symlink in archive", logger.Fields{"entry": name})
		return false, nil
	}

	src, err := fsys.Open(name)
	if err != nil {
		return false, fmt.Errorf("failed to open source file %s: %w", name, err)
	}
	defer func() { _ = src.Close() }()

	if err := fsutil.CopyStream(targetPath, src); err != nil {
		return false, err
	}
	if err := os.Chtimes(targetPath, info.ModTime(), info.ModTime()); err != nil {
		return false, fmt.Errorf("failed to set modification time for %s: %w", targetPath, err)
	}
	return true, nil
}
