// Package solution loads the project roster of a solution together with the
// installed-package databases of every project and of the solution itself.
package solution

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"
)

// Kind selects the project-system adapter used for a project.
type Kind string

const (
	// KindDefault is a regular project whose files and references can be edited.
	KindDefault Kind = "default"
	// KindCloudService is a cloud-service project that forbids most mutations.
	KindCloudService Kind = "cloudservice"
)

// StateDirName holds the solution-level package database.
const StateDirName = ".solpkg"

// Project identifies one project of the solution.
type Project struct {
	Name       string
	Kind       Kind
	Dir        string
	Properties map[string]string
	Installed  *InstalledPackages
}

// InstalledVersion returns the version of id installed in the project, or nil.
func (p *Project) InstalledVersion(id string) *version.Version {
	return p.Installed.InstalledVersion(id)
}

// Solution is the immutable roster of projects for one session.
type Solution struct {
	Name      string
	Dir       string
	projects  []*Project
	installed *InstalledPackages
}

// New builds a solution from already loaded projects. Projects are ordered by name.
func New(name, dir string, installed *InstalledPackages, projects ...*Project) *Solution {
	if installed == nil {
		installed = NewInstalledPackages()
	}
	sorted := make([]*Project, len(projects))
	copy(sorted, projects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})
	return &Solution{Name: name, Dir: dir, projects: sorted, installed: installed}
}

// Projects returns the projects in name order.
func (s *Solution) Projects() []*Project {
	return s.projects
}

// InstalledPackages returns the solution-level package database.
func (s *Solution) InstalledPackages() *InstalledPackages {
	return s.installed
}

// Project looks a project up by name (case-insensitive).
func (s *Solution) Project(name string) (*Project, error) {
	for _, p := range s.projects {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", name, errors.ErrProjectNotFound)
}

// Save writes every package database of the solution.
func (s *Solution) Save() error {
	if err := s.installed.Save(); err != nil {
		return errors.Wrap(err, "failed to save solution packages")
	}
	for _, p := range s.projects {
		if err := p.Installed.Save(); err != nil {
			return errors.Wrapf(err, "failed to save packages of project %s", p.Name)
		}
	}
	return nil
}

// Manifest is the YAML description of a solution.
type Manifest struct {
	Name     string            `yaml:"name"`
	Projects []ProjectManifest `yaml:"projects"`
}

// ProjectManifest describes one project inside the manifest.
type ProjectManifest struct {
	Name       string            `yaml:"name"`
	Kind       Kind              `yaml:"kind,omitempty"`
	Path       string            `yaml:"path"`
	Properties map[string]string `yaml:"properties,omitempty"`
}

// ParseManifest decodes and validates a manifest.
func ParseManifest(reader io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read solution manifest")
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrSolutionManifest, err.Error())
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks project names and kinds.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool, len(m.Projects))
	for i, p := range m.Projects {
		if p.Name == "" {
			return fmt.Errorf("project %d has no name: %w", i, errors.ErrSolutionManifest)
		}
		key := strings.ToLower(p.Name)
		if seen[key] {
			return fmt.Errorf("duplicate project %s: %w", p.Name, errors.ErrSolutionManifest)
		}
		seen[key] = true
		switch p.Kind {
		case "", KindDefault, KindCloudService:
		default:
			return fmt.Errorf("project %s has unknown kind %q: %w", p.Name, p.Kind, errors.ErrSolutionManifest)
		}
	}
	return nil
}

// Load reads the manifest at manifestPath and every package database it refers to.
func Load(manifestPath string) (*Solution, error) {
	absPath, err := filepath.Abs(manifestPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open solution manifest %s", manifestPath)
	}
	defer func() { _ = file.Close() }()

	m, err := ParseManifest(file)
	if err != nil {
		return nil, errors.Wrapf(err, "solution manifest %s", manifestPath)
	}

	dir := filepath.Dir(absPath)
	installed, err := LoadInstalledPackages(filepath.Join(dir, StateDirName, PackagesFileName))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load solution packages")
	}

	projects := make([]*Project, 0, len(m.Projects))
	for _, pm := range m.Projects {
		projectDir := pm.Path
		if projectDir == "" {
			projectDir = pm.Name
		}
		if !filepath.IsAbs(projectDir) {
			projectDir = filepath.Join(dir, projectDir)
		}
		db, err := LoadInstalledPackages(filepath.Join(projectDir, PackagesFileName))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load packages of project %s", pm.Name)
		}
		kind := pm.Kind
		if kind == "" {
			kind = KindDefault
		}
		projects = append(projects, &Project{
			Name:       pm.Name,
			Kind:       kind,
			Dir:        projectDir,
			Properties: pm.Properties,
			Installed:  db,
		})
	}

	name := m.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(absPath), filepath.Ext(absPath))
	}
	return New(name, dir, installed, projects...), nil
}
