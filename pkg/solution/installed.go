package solution

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/glorpus-work/solpkg/pkg/fsutil"
	"github.com/glorpus-work/solpkg/pkg/model"
	"github.com/hashicorp/go-version"
)

// PackagesFileName is the installed-package database kept in every project directory.
const PackagesFileName = "packages.json"

// InstalledPackages is the JSON-backed set of packages installed in one project or
// at solution scope. Package ids compare case-insensitively.
type InstalledPackages struct {
	FormatVersion string                    `json:"format_version"`
	LastUpdate    time.Time                 `json:"last_update"`
	Packages      []*model.InstalledPackage `json:"packages"`
	path          string
	rwMutex       sync.RWMutex
}

// NewInstalledPackages creates an empty database that is not bound to a file.
func NewInstalledPackages() *InstalledPackages {
	return &InstalledPackages{
		FormatVersion: "1",
		LastUpdate:    time.Now(),
		Packages:      make([]*model.InstalledPackage, 0),
	}
}

// LoadInstalledPackages reads the database at dbPath. A missing file yields an
// empty database bound to that path.
func LoadInstalledPackages(dbPath string) (*InstalledPackages, error) {
	cleanPath := filepath.Clean(dbPath)
	if !filepath.IsAbs(cleanPath) {
		return nil, fmt.Errorf("database path must be absolute: %s: %w", dbPath, errors.ErrInvalidPath)
	}

	db := NewInstalledPackages()
	db.path = cleanPath

	file, err := os.Open(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return db, nil
		}
		return nil, fmt.Errorf("failed to open database file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := db.parse(file); err != nil {
		return nil, err
	}
	return db, nil
}

// Path returns the file the database is bound to, if any.
func (db *InstalledPackages) Path() string {
	return db.path
}

// Save writes the database back to the file it was loaded from.
func (db *InstalledPackages) Save() error {
	if db.path == "" {
		return fmt.Errorf("database is not bound to a file: %w", errors.ErrInvalidPath)
	}
	return db.SaveTo(db.path)
}

// SaveTo writes the database to dbPath atomically and binds it to that path.
func (db *InstalledPackages) SaveTo(dbPath string) error {
	cleanPath := filepath.Clean(dbPath)
	if !filepath.IsAbs(cleanPath) {
		return fmt.Errorf("database path must be absolute: %s: %w", dbPath, errors.ErrInvalidPath)
	}

	db.rwMutex.RLock()
	data, err := json.MarshalIndent(db, "", "  ")
	db.rwMutex.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal database to JSON: %w", err)
	}

	if err := fsutil.WriteFileAtomic(cleanPath, data, fsutil.FileModeDefault); err != nil {
		return err
	}
	db.path = cleanPath
	return nil
}

// Find returns the installed record for id, or nil.
func (db *InstalledPackages) Find(id string) *model.InstalledPackage {
	db.rwMutex.RLock()
	defer db.rwMutex.RUnlock()

	for _, pkg := range db.Packages {
		if strings.EqualFold(pkg.ID, id) {
			return pkg
		}
	}
	return nil
}

// IsInstalled checks if a package is installed with a usable version.
func (db *InstalledPackages) IsInstalled(id string) bool {
	return db.InstalledVersion(id) != nil
}

// InstalledVersion returns the installed version of id, or nil when absent.
func (db *InstalledPackages) InstalledVersion(id string) *version.Version {
	return db.Find(id).GetVersion()
}

// Add records pkg, replacing any existing record with the same id.
func (db *InstalledPackages) Add(pkg *model.InstalledPackage) {
	db.rwMutex.Lock()
	defer db.rwMutex.Unlock()

	if pkg.InstalledAt.IsZero() {
		pkg.InstalledAt = time.Now()
	}
	db.LastUpdate = time.Now()

	for i, existing := range db.Packages {
		if strings.EqualFold(existing.ID, pkg.ID) {
			db.Packages[i] = pkg
			return
		}
	}
	db.Packages = append(db.Packages, pkg)
}

// Remove deletes the record for id and reports whether one existed.
func (db *InstalledPackages) Remove(id string) bool {
	db.rwMutex.Lock()
	defer db.rwMutex.Unlock()

	for i, pkg := range db.Packages {
		if strings.EqualFold(pkg.ID, id) {
			db.Packages = append(db.Packages[:i], db.Packages[i+1:]...)
			db.LastUpdate = time.Now()
			return true
		}
	}
	return false
}

// All returns a copy of the installed records.
func (db *InstalledPackages) All() []*model.InstalledPackage {
	db.rwMutex.RLock()
	defer db.rwMutex.RUnlock()

	out := make([]*model.InstalledPackage, len(db.Packages))
	copy(out, db.Packages)
	return out
}

// Filtered returns the records whose id contains nameFilter (case-insensitive).
func (db *InstalledPackages) Filtered(nameFilter string) []*model.InstalledPackage {
	if nameFilter == "" {
		return db.All()
	}

	db.rwMutex.RLock()
	defer db.rwMutex.RUnlock()

	var filtered []*model.InstalledPackage
	for _, pkg := range db.Packages {
		if strings.Contains(strings.ToLower(pkg.ID), strings.ToLower(nameFilter)) {
			filtered = append(filtered, pkg)
		}
	}
	return filtered
}

func (db *InstalledPackages) parse(reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read database: %w", err)
	}
	if err := json.Unmarshal(data, db); err != nil {
		return fmt.Errorf("failed to parse database: %w", err)
	}
	for _, pkg := range db.Packages {
		if pkg.GetVersion() == nil {
			return fmt.Errorf("package %s has version %q: %w", pkg.ID, pkg.Version, errors.ErrInvalidVersion)
		}
	}
	return nil
}
