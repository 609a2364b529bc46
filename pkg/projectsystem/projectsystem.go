//go:generate mockgen -destination=./mocks/projectsystem.go . ProjectSystem

// Package projectsystem translates package operations (add or remove a file, add
// or remove a reference) onto a project of a given kind.
package projectsystem

import (
	"io"

	"github.com/glorpus-work/solpkg/pkg/solution"
)

// ProjectSystem is the set of project mutations a package operation needs.
// Paths are relative to the project root and slash-separated.
type ProjectSystem interface {
	Name() string
	Root() string

	AddFile(path string, r io.Reader) error
	DeleteFile(path string) error
	DeleteDirectory(path string, recursive bool) error
	FileExists(path string) bool

	// AddReference records a reference to the assembly at referencePath.
	AddReference(referencePath string) error
	RemoveReference(name string) error
	ReferenceExists(name string) bool

	IsSupportedFile(path string) bool
	IsBindingRedirectSupported() bool
	PropertyValue(name string) (string, error)
	// ExcludeFile reports whether path is written to disk without being tracked
	// as a project item.
	ExcludeFile(path string) bool
}

// New picks the adapter for the project's kind.
func New(p *solution.Project) ProjectSystem {
	base := NewFileSystemProject(p)
	if p.Kind == solution.KindCloudService {
		return NewCloudServiceProject(base)
	}
	return base
}
