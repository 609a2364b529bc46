package projectsystem

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/glorpus-work/solpkg/internal/logger"
	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/glorpus-work/solpkg/pkg/fsutil"
	"github.com/glorpus-work/solpkg/pkg/solution"
	"gopkg.in/yaml.v3"
)

// StateFileName holds the tracked items and references of a project.
const StateFileName = "solpkg.project.yaml"

// PackagesDirName is the directory packages are unpacked into. Files below it
// are never tracked as project items.
const PackagesDirName = "packages"

// Reference is an assembly reference recorded in the project.
type Reference struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type projectState struct {
	Items      []string    `yaml:"items,omitempty"`
	References []Reference `yaml:"references,omitempty"`
}

// hostManagedFiles are configuration files the host owns; packages may not
// overwrite them as plain content.
var hostManagedFiles = map[string]bool{
	"app.config": true,
	"web.config": true,
}

// FileSystemProject is a project laid out on disk. Items and references are
// kept in StateFileName inside the project directory.
type FileSystemProject struct {
	project *solution.Project

	mu     sync.Mutex
	state  *projectState
	loaded bool
}

// NewFileSystemProject creates the adapter for p. The state file is read on first use.
func NewFileSystemProject(p *solution.Project) *FileSystemProject {
	return &FileSystemProject{project: p}
}

// Name returns the project name.
func (p *FileSystemProject) Name() string {
	return p.project.Name
}

// Root returns the project directory.
func (p *FileSystemProject) Root() string {
	return p.project.Dir
}

// AddFile writes r to path and tracks it as a project item unless it is excluded.
func (p *FileSystemProject) AddFile(rel string, r io.Reader) error {
	if err := p.writeFile(rel, r); err != nil {
		return err
	}
	if p.ExcludeFile(rel) {
		return nil
	}
	return p.update(func(s *projectState) bool {
		item := path.Clean(rel)
		for _, existing := range s.Items {
			if existing == item {
				return false
			}
		}
		s.Items = append(s.Items, item)
		sort.Strings(s.Items)
		return true
	})
}

// DeleteFile removes path from disk and from the tracked items. A missing file is not an error.
func (p *FileSystemProject) DeleteFile(rel string) error {
	full, err := p.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", full, err)
	}
	logger.Debug("file removed from project", logger.Fields{"project": p.Name(), "file": rel})

	item := path.Clean(rel)
	return p.update(func(s *projectState) bool {
		for i, existing := range s.Items {
			if existing == item {
				s.Items = append(s.Items[:i], s.Items[i+1:]...)
				return true
			}
		}
		return false
	})
}

// DeleteDirectory removes the directory at path. Without recursive only an
// empty directory is removed.
func (p *FileSystemProject) DeleteDirectory(rel string, recursive bool) error {
	full, err := p.resolve(rel)
	if err != nil {
		return err
	}
	if recursive {
		err = os.RemoveAll(full)
	} else {
		err = os.Remove(full)
	}
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete directory %s: %w", full, err)
	}

	prefix := path.Clean(rel) + "/"
	return p.update(func(s *projectState) bool {
		kept := s.Items[:0]
		for _, item := range s.Items {
			if !strings.HasPrefix(item, prefix) {
				kept = append(kept, item)
			}
		}
		changed := len(kept) != len(s.Items)
		s.Items = kept
		return changed
	})
}

// FileExists reports whether path exists on disk.
func (p *FileSystemProject) FileExists(rel string) bool {
	full, err := p.resolve(rel)
	if err != nil {
		return false
	}
	_, err = os.Stat(full)
	return err == nil
}

// Items returns the tracked project items.
func (p *FileSystemProject) Items() ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.load(); err != nil {
		return nil, err
	}
	return append([]string(nil), p.state.Items...), nil
}

// References returns the recorded references.
func (p *FileSystemProject) References() ([]Reference, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.load(); err != nil {
		return nil, err
	}
	return append([]Reference(nil), p.state.References...), nil
}

// AddReference records the assembly at referencePath. The reference is named
// after the file without its extension; an existing reference of that name is replaced.
func (p *FileSystemProject) AddReference(referencePath string) error {
	ref := Reference{Name: referenceName(referencePath), Path: filepath.ToSlash(referencePath)}
	logger.Debug("adding reference", logger.Fields{"project": p.Name(), "reference": ref.Name})

	return p.update(func(s *projectState) bool {
		for i, existing := range s.References {
			if strings.EqualFold(existing.Name, ref.Name) {
				s.References[i] = ref
				return true
			}
		}
		s.References = append(s.References, ref)
		return true
	})
}

// RemoveReference drops the reference called name.
func (p *FileSystemProject) RemoveReference(name string) error {
	return p.update(func(s *projectState) bool {
		for i, existing := range s.References {
			if strings.EqualFold(existing.Name, name) {
				s.References = append(s.References[:i], s.References[i+1:]...)
				return true
			}
		}
		return false
	})
}

// ReferenceExists reports whether a reference called name is recorded.
func (p *FileSystemProject) ReferenceExists(name string) bool {
	refs, err := p.References()
	if err != nil {
		logger.Warn("failed to read project references", logger.Fields{"project": p.Name(), "error": err.Error()})
		return false
	}
	for _, ref := range refs {
		if strings.EqualFold(ref.Name, name) {
			return true
		}
	}
	return false
}

// IsSupportedFile is false for host-managed configuration files.
func (p *FileSystemProject) IsSupportedFile(rel string) bool {
	return !hostManagedFiles[strings.ToLower(path.Base(filepath.ToSlash(rel)))]
}

// IsBindingRedirectSupported is true for regular projects.
func (p *FileSystemProject) IsBindingRedirectSupported() bool {
	return true
}

// PropertyValue looks up a project property, case-insensitively. Name and
// FullPath are always defined.
func (p *FileSystemProject) PropertyValue(name string) (string, error) {
	switch strings.ToLower(name) {
	case "name":
		return p.project.Name, nil
	case "fullpath":
		return p.project.Dir, nil
	}
	for k, v := range p.project.Properties {
		if strings.EqualFold(k, name) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%s: %w", name, errors.ErrPropertyNotFound)
}

// ExcludeFile is true for dot files and anything under the packages directory.
func (p *FileSystemProject) ExcludeFile(rel string) bool {
	clean := path.Clean(filepath.ToSlash(rel))
	if clean == PackagesDirName || strings.HasPrefix(clean, PackagesDirName+"/") {
		return true
	}
	for _, segment := range strings.Split(clean, "/") {
		if strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}

func (p *FileSystemProject) writeFile(rel string, r io.Reader) error {
	full, err := p.resolve(rel)
	if err != nil {
		return err
	}
	if err := fsutil.CopyStream(full, r); err != nil {
		return err
	}
	logger.Debug("file added to project", logger.Fields{"project": p.Name(), "file": rel})
	return nil
}

// resolve maps a project-relative path onto disk, refusing paths that leave the project.
func (p *FileSystemProject) resolve(rel string) (string, error) {
	slashed := filepath.ToSlash(rel)
	clean := path.Clean(slashed)
	if rel == "" || path.IsAbs(slashed) || filepath.IsAbs(rel) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", errors.Wrapf(errors.ErrInvalidPath, "%s is not inside project %s", rel, p.Name())
	}
	return filepath.Join(p.project.Dir, filepath.FromSlash(clean)), nil
}

func (p *FileSystemProject) statePath() string {
	return filepath.Join(p.project.Dir, StateFileName)
}

// load reads the state file once. Callers hold p.mu.
func (p *FileSystemProject) load() error {
	if p.loaded {
		return nil
	}
	state := &projectState{}
	data, err := os.ReadFile(p.statePath())
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return fmt.Errorf("failed to read %s: %w", p.statePath(), err)
	default:
		if err := yaml.Unmarshal(data, state); err != nil {
			return errors.Wrapf(errors.ErrProjectState, "%s: %v", p.statePath(), err)
		}
	}
	p.state = state
	p.loaded = true
	return nil
}

// update applies fn to the state and saves it when fn reports a change.
func (p *FileSystemProject) update(fn func(*projectState) bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.load(); err != nil {
		return err
	}
	if !fn(p.state) {
		return nil
	}
	data, err := yaml.Marshal(p.state)
	if err != nil {
		return errors.Wrapf(errors.ErrProjectState, "failed to encode: %v", err)
	}
	return fsutil.WriteFileAtomic(p.statePath(), data, fsutil.FileModeDefault)
}

func referenceName(referencePath string) string {
	base := path.Base(filepath.ToSlash(referencePath))
	return strings.TrimSuffix(base, path.Ext(base))
}
