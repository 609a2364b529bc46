package model

import (
	"time"

	"github.com/hashicorp/go-version"
)

// InstalledPackage records a package present in a project or at solution scope.
type InstalledPackage struct {
	ID          string    `json:"id"`
	Version     string    `json:"version"`
	InstalledAt time.Time `json:"installed_at"`
	Source      string    `json:"source,omitempty"` // feed the package came from
	References  []string  `json:"references,omitempty"`
	Files       []string  `json:"files,omitempty"`
}

// GetVersion returns the parsed version, or nil when the stored string is not a version.
func (p *InstalledPackage) GetVersion() *version.Version {
	if p == nil {
		return nil
	}
	v, err := version.NewVersion(p.Version)
	if err != nil {
		return nil
	}
	return v
}

// Key returns "id@version".
func (p *InstalledPackage) Key() string {
	return p.ID + "@" + p.Version
}
