// Package cache inspects and cleans the solpkg cache: synced feed indexes and
// downloaded package archives.
package cache

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/glorpus-work/solpkg/internal/logger"
	"github.com/glorpus-work/solpkg/pkg/errors"
)

// Subdirectories of the cache directory.
const (
	FeedsDir    = "feeds"
	PackagesDir = "packages"
)

// dirPerm is used when an emptied directory is recreated (rwx------).
const dirPerm = 0o700

// CleanOptions specifies what to clean. With neither flag set everything is cleaned.
type CleanOptions struct {
	Feeds    bool
	Packages bool
}

// CleanResult reports the bytes freed per area.
type CleanResult struct {
	TotalFreed   int64
	FeedsFreed   int64
	PackageFreed int64
}

// Info describes the current cache contents.
type Info struct {
	Directory    string
	TotalSize    int64
	FeedSize     int64
	FeedFiles    int
	PackageSize  int64
	PackageFiles int
}

// Manager operates on one cache directory.
type Manager struct {
	directory string
}

// NewManager creates a cache manager. The directory may not exist yet.
func NewManager(directory string) (*Manager, error) {
	if directory == "" {
		return nil, errors.ErrCacheDirectory
	}
	return &Manager{directory: directory}, nil
}

// Directory returns the cache directory path.
func (m *Manager) Directory() string {
	return m.directory
}

// Clean removes cached files according to opts.
func (m *Manager) Clean(opts CleanOptions) (*CleanResult, error) {
	if !opts.Feeds && !opts.Packages {
		opts.Feeds, opts.Packages = true, true
	}
	logger.Debug("Cleaning cache", logger.Fields{"feeds": opts.Feeds, "packages": opts.Packages})

	result := &CleanResult{}
	if opts.Feeds {
		size, err := cleanDirectory(filepath.Join(m.directory, FeedsDir))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCacheClean, err.Error())
		}
		result.FeedsFreed = size
		result.TotalFreed += size
	}
	if opts.Packages {
		size, err := cleanDirectory(filepath.Join(m.directory, PackagesDir))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCacheClean, err.Error())
		}
		result.PackageFreed = size
		result.TotalFreed += size
	}
	return result, nil
}

// Info returns the size and file count of every cache area.
func (m *Manager) Info() (*Info, error) {
	info := &Info{Directory: m.directory}

	var err error
	info.FeedSize, info.FeedFiles, err = dirSizeAndFiles(filepath.Join(m.directory, FeedsDir))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get feed cache info")
	}
	info.PackageSize, info.PackageFiles, err = dirSizeAndFiles(filepath.Join(m.directory, PackagesDir))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get package cache info")
	}
	info.TotalSize = info.FeedSize + info.PackageSize
	return info, nil
}

// Summary renders a clean result for humans.
func (r *CleanResult) Summary() string {
	if r.TotalFreed == 0 {
		return "No files were removed from the cache."
	}
	msg := fmt.Sprintf("Successfully cleaned cache. Freed %s of disk space.", FormatBytes(r.TotalFreed))
	if r.FeedsFreed > 0 {
		msg += fmt.Sprintf("\n- Feeds: %s", FormatBytes(r.FeedsFreed))
	}
	if r.PackageFreed > 0 {
		msg += fmt.Sprintf("\n- Packages: %s", FormatBytes(r.PackageFreed))
	}
	return msg
}

// cleanDirectory empties dir and returns the bytes freed.
func cleanDirectory(dir string) (int64, error) {
	size, _, err := dirSizeAndFiles(dir)
	if err != nil {
		return 0, err
	}
	if size == 0 {
		if _, statErr := os.Stat(dir); os.IsNotExist(statErr) {
			return 0, nil
		}
	}

	if err := os.RemoveAll(dir); err != nil {
		return 0, errors.Wrapf(err, "failed to remove directory %s", dir)
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return size, errors.Wrapf(err, "failed to recreate directory %s", dir)
	}
	return size, nil
}

// dirSizeAndFiles sums the sizes of the regular files below dir. A missing dir is empty.
func dirSizeAndFiles(dir string) (size int64, count int, err error) {
	err = filepath.WalkDir(dir, func(_ string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		count++
		return nil
	})
	if os.IsNotExist(err) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, errors.Wrapf(err, "error walking directory %s", dir)
	}
	return size, count, nil
}

// FormatBytes converts bytes to a human-readable string.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"K", "M", "G", "T", "P", "E"}
	if exp < len(units) {
		return fmt.Sprintf("%.1f %sB", float64(bytes)/float64(div), units[exp])
	}
	return fmt.Sprintf("%d B", bytes)
}
