package detail

import (
	"github.com/glorpus-work/solpkg/pkg/model"
	"github.com/glorpus-work/solpkg/pkg/solution"
	"github.com/hashicorp/go-version"
)

// ProjectModel is the package detail for a single project. It offers Install,
// Update and Uninstall; Consolidate never applies to one project.
type ProjectModel struct {
	base

	project *solution.Project
}

// NewProjectModel creates the detail model of one project.
func NewProjectModel(project *solution.Project, source MetadataSource) *ProjectModel {
	m := &ProjectModel{project: project}
	m.base = base{
		source:   source,
		selected: -1,
	}
	m.canPerform = m.CanPerform
	m.versionList = m.createVersions
	m.recompute = func() {}
	m.commit = m.flush
	return m
}

// Project returns the project the model describes.
func (m *ProjectModel) Project() *solution.Project {
	return m.project
}

// InstalledVersion returns the installed version of the target package, or nil.
func (m *ProjectModel) InstalledVersion() *version.Version {
	if m.id == "" {
		return nil
	}
	return m.project.InstalledVersion(m.id)
}

// CanPerform evaluates the gating predicate of a for the project.
func (m *ProjectModel) CanPerform(a model.Action) bool {
	installed := m.InstalledVersion()
	switch a {
	case model.ActionInstall:
		return m.id != "" && installed == nil
	case model.ActionUpdate:
		if installed == nil {
			return false
		}
		for _, v := range m.known {
			if !v.Equal(installed) {
				return true
			}
		}
		return false
	case model.ActionUninstall:
		return installed != nil
	default:
		return false
	}
}

// ActionEnabled reports whether the selected action can run with the selected version.
func (m *ProjectModel) ActionEnabled() bool {
	if !m.CanPerform(m.action) {
		return false
	}
	selected := m.selectedVersion()
	if selected == nil {
		return false
	}
	return m.action != model.ActionUpdate || !selected.Equal(m.InstalledVersion())
}

// Request returns the tuple the executor runs against this project.
func (m *ProjectModel) Request() model.ActionRequest {
	return model.ActionRequest{
		PackageID: m.id,
		Action:    m.action,
		Version:   m.selectedVersion(),
		Projects:  []string{m.project.Name},
	}
}

func (m *ProjectModel) createVersions() []model.VersionChoice {
	switch m.action {
	case model.ActionInstall:
		return feedVersionChoices(m.known)
	case model.ActionUpdate:
		installed := m.InstalledVersion()
		others := make([]*version.Version, 0, len(m.known))
		for _, v := range m.known {
			if installed == nil || !v.Equal(installed) {
				others = append(others, v)
			}
		}
		return feedVersionChoices(others)
	case model.ActionUninstall:
		if v := m.InstalledVersion(); v != nil {
			return installedVersionChoices([]*version.Version{v})
		}
		return nil
	default:
		return nil
	}
}
