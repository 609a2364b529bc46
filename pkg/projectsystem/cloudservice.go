package projectsystem

import (
	"io"
	"strings"
)

const (
	rootNamespaceProperty = "RootNamespace"
	outputNameProperty    = "OutputName"
	defaultNamespace      = "Azure"
)

// CloudServiceProject adapts a cloud-service project. Such projects cannot hold
// references and their item list cannot be edited: files are written to disk but
// never tracked, deletions and reference changes are ignored.
type CloudServiceProject struct {
	*FileSystemProject
}

// NewCloudServiceProject wraps base.
func NewCloudServiceProject(base *FileSystemProject) *CloudServiceProject {
	return &CloudServiceProject{FileSystemProject: base}
}

// AddFile writes the file without adding it to the project.
func (p *CloudServiceProject) AddFile(rel string, r io.Reader) error {
	return p.writeFile(rel, r)
}

// DeleteFile is a no-op.
func (p *CloudServiceProject) DeleteFile(string) error {
	return nil
}

// DeleteDirectory is a no-op.
func (p *CloudServiceProject) DeleteDirectory(string, bool) error {
	return nil
}

// AddReference is a no-op.
func (p *CloudServiceProject) AddReference(string) error {
	return nil
}

// RemoveReference is a no-op.
func (p *CloudServiceProject) RemoveReference(string) error {
	return nil
}

// ReferenceExists is always true so callers never try to add one.
func (p *CloudServiceProject) ReferenceExists(string) bool {
	return true
}

// IsSupportedFile accepts every file.
func (p *CloudServiceProject) IsSupportedFile(string) bool {
	return true
}

// IsBindingRedirectSupported is false.
func (p *CloudServiceProject) IsBindingRedirectSupported() bool {
	return false
}

// PropertyValue answers RootNamespace with the OutputName property, or "Azure"
// when the project has none.
func (p *CloudServiceProject) PropertyValue(name string) (string, error) {
	if strings.EqualFold(name, rootNamespaceProperty) {
		v, err := p.FileSystemProject.PropertyValue(outputNameProperty)
		if err != nil {
			return defaultNamespace, nil
		}
		return v, nil
	}
	return p.FileSystemProject.PropertyValue(name)
}

// ExcludeFile excludes nothing.
func (p *CloudServiceProject) ExcludeFile(string) bool {
	return false
}
