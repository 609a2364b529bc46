package detail

import (
	"fmt"
	"sort"
	"strings"

	"github.com/glorpus-work/solpkg/pkg/model"
	"github.com/hashicorp/go-version"
)

// SelectCheckboxFormat is the label of the "select all" checkbox; %d is the
// number of projects the action applies to.
const SelectCheckboxFormat = "Select all projects (%d)"

// SolutionModel is the package detail for a whole solution. It owns one Entry
// per project and keeps the selection aggregates in sync with them.
type SolutionModel struct {
	base

	roster Roster

	allProjects []*Entry
	projects    []*Entry
	showAll     bool

	actionEnabled      bool
	checkboxState      CheckboxState
	selectCheckboxText string

	// set while the aggregates are refreshed and their notifications delivered;
	// CheckAllProjects and UncheckAllProjects are no-ops meanwhile.
	updatingCheckbox bool
}

// NewSolutionModel creates the model with one entry per project, ordered by
// project name. No package is selected yet, so every entry starts disabled.
func NewSolutionModel(roster Roster, source MetadataSource) *SolutionModel {
	m := &SolutionModel{roster: roster}
	m.base = base{
		source:   source,
		selected: -1,
	}
	m.canPerform = m.CanPerform
	m.versionList = m.createVersions
	m.recompute = m.updateProjectList
	m.commit = m.commitChanges

	for _, p := range roster.Projects() {
		m.allProjects = append(m.allProjects, newEntry(p, m.entrySelectionChanged))
	}
	sort.SliceStable(m.allProjects, func(i, j int) bool {
		return strings.ToLower(m.allProjects[i].project.Name) < strings.ToLower(m.allProjects[j].project.Name)
	})

	m.begin()
	m.updateProjectList()
	m.end()
	return m
}

// AllProjects returns the full roster, one entry per project.
func (m *SolutionModel) AllProjects() []*Entry {
	return m.allProjects
}

// Projects returns the visible entries: all of them when ShowAll is on,
// otherwise the enabled ones. The entries are shared with AllProjects.
func (m *SolutionModel) Projects() []*Entry {
	return m.projects
}

// ShowAll reports whether disabled projects are listed.
func (m *SolutionModel) ShowAll() bool {
	return m.showAll
}

// SetShowAll toggles listing of disabled projects. Entry state is not touched.
func (m *SolutionModel) SetShowAll(showAll bool) {
	m.begin()
	defer m.end()

	if m.showAll != showAll {
		m.showAll = showAll
		m.notify(PropertyShowAll)
	}
	m.filterProjects()
}

// ActionEnabled reports whether at least one visible project is selected, which
// is when Request may be submitted.
func (m *SolutionModel) ActionEnabled() bool {
	return m.actionEnabled
}

// CheckboxState returns the tri-state of the "select all" checkbox.
func (m *SolutionModel) CheckboxState() CheckboxState {
	return m.checkboxState
}

// SelectCheckboxText returns the label of the "select all" checkbox.
func (m *SolutionModel) SelectCheckboxText() string {
	return m.selectCheckboxText
}

// CheckAllProjects selects every enabled project.
func (m *SolutionModel) CheckAllProjects() {
	m.setAllSelected(true)
}

// UncheckAllProjects deselects every enabled project.
func (m *SolutionModel) UncheckAllProjects() {
	m.setAllSelected(false)
}

func (m *SolutionModel) setAllSelected(selected bool) {
	if m.updatingCheckbox {
		return
	}

	m.begin()
	defer m.end()

	for _, e := range m.allProjects {
		if e.enabled {
			e.SetSelected(selected)
		}
	}
	m.notify(PropertyProjects)
}

// CanPerform evaluates the gating predicate of a.
func (m *SolutionModel) CanPerform(a model.Action) bool {
	switch a {
	case model.ActionInstall:
		return m.CanInstall()
	case model.ActionUpdate:
		return m.CanUpdate()
	case model.ActionUninstall:
		return m.CanUninstall()
	case model.ActionConsolidate:
		return m.CanConsolidate()
	default:
		return false
	}
}

// CanInstall is true when the solution does not have the package and at least
// one project lacks it.
func (m *SolutionModel) CanInstall() bool {
	if m.installedInSolution() {
		return false
	}
	for _, p := range m.roster.Projects() {
		if !p.Installed.IsInstalled(m.id) {
			return true
		}
	}
	return false
}

// CanUpdate is true when the package is installed in a project or in the
// solution and the feeds know at least two versions.
func (m *SolutionModel) CanUpdate() bool {
	if len(m.known) < 2 {
		return false
	}
	if m.installedInSolution() {
		return true
	}
	for _, p := range m.roster.Projects() {
		if p.Installed.IsInstalled(m.id) {
			return true
		}
	}
	return false
}

// CanUninstall is true when the package is installed in the solution or in any project.
func (m *SolutionModel) CanUninstall() bool {
	if m.installedInSolution() {
		return true
	}
	for _, p := range m.roster.Projects() {
		if p.Installed.IsInstalled(m.id) {
			return true
		}
	}
	return false
}

// CanConsolidate is true when the projects have at least two distinct versions installed.
func (m *SolutionModel) CanConsolidate() bool {
	return len(model.DistinctVersions(m.projectVersions())) >= 2
}

// Request returns the tuple the executor runs: the selected enabled projects.
func (m *SolutionModel) Request() model.ActionRequest {
	req := model.ActionRequest{
		PackageID: m.id,
		Action:    m.action,
		Version:   m.selectedVersion(),
	}
	for _, e := range m.allProjects {
		if e.enabled && e.selected {
			req.Projects = append(req.Projects, e.project.Name)
		}
	}
	return req
}

func (m *SolutionModel) installedInSolution() bool {
	return m.id != "" && m.roster.InstalledPackages().IsInstalled(m.id)
}

func (m *SolutionModel) projectVersions() []*version.Version {
	var out []*version.Version
	for _, p := range m.roster.Projects() {
		if v := p.InstalledVersion(m.id); v != nil {
			out = append(out, v)
		}
	}
	return out
}

func (m *SolutionModel) createVersions() []model.VersionChoice {
	switch {
	case m.action.UsesInstalledVersions():
		installed := m.projectVersions()
		if v := m.roster.InstalledPackages().InstalledVersion(m.id); v != nil {
			installed = append(installed, v)
		}
		return installedVersionChoices(installed)
	case m.action == model.ActionInstall || m.action == model.ActionUpdate:
		return feedVersionChoices(m.known)
	default:
		return nil
	}
}

// updateProjectList recomputes every entry for the current package, action and
// version. Manual selections are discarded.
func (m *SolutionModel) updateProjectList() {
	selected := m.selectedVersion()
	for _, e := range m.allProjects {
		var installed *version.Version
		if m.id != "" {
			installed = e.project.InstalledVersion(m.id)
		}
		e.reset(installed, applies(m.action, installed, selected))
	}
	m.filterProjects()
}

// applies is the per-project applicability rule of each action.
func applies(a model.Action, installed, selected *version.Version) bool {
	switch a {
	case model.ActionInstall:
		return installed == nil
	case model.ActionUpdate, model.ActionConsolidate:
		return installed != nil && selected != nil && !installed.Equal(selected)
	case model.ActionUninstall:
		return installed != nil && selected != nil && installed.Equal(selected)
	default:
		return false
	}
}

func (m *SolutionModel) filterProjects() {
	if m.showAll {
		m.projects = m.allProjects
	} else {
		visible := make([]*Entry, 0, len(m.allProjects))
		for _, e := range m.allProjects {
			if e.enabled {
				visible = append(visible, e)
			}
		}
		m.projects = visible
	}
	m.notify(PropertyProjects)
}

func (m *SolutionModel) entrySelectionChanged(*Entry) {
	m.begin()
	m.end()
}

// commitChanges runs once per outermost mutation: refresh the aggregates, then
// deliver every queued notification.
func (m *SolutionModel) commitChanges() {
	prev := m.updatingCheckbox
	m.updatingCheckbox = true
	defer func() { m.updatingCheckbox = prev }()

	m.updateActionEnabled()
	m.updateSelectCheckbox()
	m.flush()
}

func (m *SolutionModel) updateActionEnabled() {
	enabled := false
	if m.projects != nil {
		for _, e := range m.projects {
			if e.selected {
				enabled = true
				break
			}
		}
	}
	if enabled != m.actionEnabled {
		m.actionEnabled = enabled
		m.notify(PropertyActionEnabled)
	}
}

func (m *SolutionModel) updateSelectCheckbox() {
	if m.projects == nil {
		return
	}

	total, selected := 0, 0
	for _, e := range m.projects {
		if !e.enabled {
			continue
		}
		total++
		if e.selected {
			selected++
		}
	}

	text := fmt.Sprintf(SelectCheckboxFormat, total)
	if text != m.selectCheckboxText {
		m.selectCheckboxText = text
		m.notify(PropertySelectCheckboxText)
	}
	state := checkboxStateFor(selected, total)
	if state != m.checkboxState {
		m.checkboxState = state
		m.notify(PropertyCheckboxState)
	}
}
