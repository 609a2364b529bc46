// Package feed reads package feeds: the metadata source that lists every known
// version of a package, and the online browsing provider built on top of it.
package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/hashicorp/go-version"
)

// Dependency names another package and the versions it accepts.
type Dependency struct {
	ID         string `json:"id"`
	Constraint string `json:"constraint,omitempty"` // go-version constraint, empty means any
}

// Package describes one version of a package published by a feed.
type Package struct {
	ID                       string       `json:"id"`
	Version                  string       `json:"version"`
	Description              string       `json:"description,omitempty"`
	Authors                  []string     `json:"authors,omitempty"`
	URL                      string       `json:"url"` // archive location, relative to the feed or absolute
	Checksum                 string       `json:"checksum,omitempty"`
	RequireLicenseAcceptance bool         `json:"require_license_acceptance,omitempty"`
	LicenseURL               string       `json:"license_url,omitempty"`
	Dependencies             []Dependency `json:"dependencies,omitempty"`
}

// GetVersion returns the parsed version, or nil when invalid.
func (p *Package) GetVersion() *version.Version {
	v, err := version.NewVersion(p.Version)
	if err != nil {
		return nil
	}
	return v
}

// Key returns "id@version".
func (p *Package) Key() string {
	return p.ID + "@" + p.Version
}

// Index is the JSON document served by a feed.
type Index struct {
	FormatVersion string     `json:"format_version"`
	LastUpdate    time.Time  `json:"last_update"`
	Packages      []*Package `json:"packages"`
}

// ParseIndex parses an index from JSON data.
func ParseIndex(data []byte) (*Index, error) {
	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, errors.Wrap(errors.ErrFeedIndexInvalid, err.Error())
	}
	if index.FormatVersion == "" {
		return nil, fmt.Errorf("missing format version: %w", errors.ErrFeedIndexInvalid)
	}
	return &index, nil
}

// ParseIndexFromReader parses an index from an io.Reader.
func ParseIndexFromReader(reader io.Reader) (*Index, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read index data")
	}
	return ParseIndex(data)
}

// ParseIndexFromFile parses the index stored at filePath.
func ParseIndexFromFile(filePath string) (*Index, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open index file %s", filePath)
	}
	defer func() { _ = file.Close() }()
	return ParseIndexFromReader(file)
}

// FindPackages returns every version of id (case-insensitive) in feed order.
func (idx *Index) FindPackages(id string) []*Package {
	packages := make([]*Package, 0, 5)
	for _, pkg := range idx.Packages {
		if strings.EqualFold(pkg.ID, id) {
			packages = append(packages, pkg)
		}
	}
	return packages
}

// Find returns the entry for id at exactly v, or nil.
func (idx *Index) Find(id string, v *version.Version) *Package {
	for _, pkg := range idx.FindPackages(id) {
		if pv := pkg.GetVersion(); pv != nil && pv.Equal(v) {
			return pkg
		}
	}
	return nil
}
