package detail

import (
	"context"
	"testing"

	"github.com/glorpus-work/solpkg/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectModel_NotInstalled(t *testing.T) {
	m := NewProjectModel(project("Alpha", nil), newSource(t, "2.0", "1.5-beta", "1.0"))
	require.NoError(t, m.SetPackage(context.Background(), pkgID))

	assert.Nil(t, m.InstalledVersion())
	assert.Equal(t, []model.Action{model.ActionInstall}, m.Actions())
	assert.Equal(t, model.ActionInstall, m.SelectedAction())
	assert.Equal(t, []string{"2.0 (latest stable)", "----------", "2.0", "1.5-beta", "1.0"}, choiceStrings(m.Versions()))
	assert.True(t, m.ActionEnabled())

	req := m.Request()
	assert.Equal(t, pkgID, req.PackageID)
	assert.Equal(t, model.ActionInstall, req.Action)
	assert.Equal(t, []string{"Alpha"}, req.Projects)
	assert.Equal(t, "2.0", req.Version.Original())
}

func TestProjectModel_Installed(t *testing.T) {
	m := NewProjectModel(project("Beta", map[string]string{pkgID: "1.0"}), newSource(t, "2.0", "1.5-beta", "1.0"))
	require.NoError(t, m.SetPackage(context.Background(), pkgID))

	assert.Equal(t, "1.0", m.InstalledVersion().Original())
	assert.Equal(t, []model.Action{model.ActionUpdate, model.ActionUninstall}, m.Actions())
	assert.Equal(t, model.ActionUpdate, m.SelectedAction())
	assert.Equal(t, []string{"2.0 (latest stable)", "----------", "2.0", "1.5-beta"}, choiceStrings(m.Versions()))
	assert.True(t, m.ActionEnabled())

	require.NoError(t, m.SetSelectedAction(model.ActionUninstall))
	assert.Equal(t, []string{"1.0"}, choiceStrings(m.Versions()))
	assert.True(t, m.ActionEnabled())

	require.NoError(t, m.SetSelectedAction(model.ActionInstall))
	assert.False(t, m.ActionEnabled())
}

func TestProjectModel_OnlyInstalledVersionKnown(t *testing.T) {
	m := NewProjectModel(project("Beta", map[string]string{pkgID: "1.0.0"}), newSource(t, "1.0"))
	require.NoError(t, m.SetPackage(context.Background(), pkgID))

	assert.Equal(t, []model.Action{model.ActionUninstall}, m.Actions())
	assert.False(t, m.CanPerform(model.ActionUpdate))
	assert.False(t, m.CanPerform(model.ActionConsolidate))
}

func TestProjectModel_Notifications(t *testing.T) {
	m := NewProjectModel(project("Beta", map[string]string{pkgID: "1.0"}), newSource(t, "2.0", "1.0"))

	var seen []string
	m.Subscribe(func(property string) { seen = append(seen, property) })
	require.NoError(t, m.SetPackage(context.Background(), pkgID))

	assert.Equal(t, []string{PropertyActions, PropertySelectedAction, PropertyVersions, PropertySelectedVersion}, seen)
}
