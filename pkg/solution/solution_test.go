package solution

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/glorpus-work/solpkg/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestYAML = `name: demo
projects:
  - name: Web
    path: src/web
  - name: cloud
    kind: cloudservice
    path: src/cloud
    properties:
      OutputName: CloudOut
  - name: Api
`

func writeSolution(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	manifest := filepath.Join(dir, "demo.sln.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(manifestYAML), 0o644))

	web, err := LoadInstalledPackages(filepath.Join(dir, "src", "web", PackagesFileName))
	require.NoError(t, err)
	web.Add(&model.InstalledPackage{ID: "jQuery", Version: "1.6"})
	require.NoError(t, web.Save())

	sln, err := LoadInstalledPackages(filepath.Join(dir, StateDirName, PackagesFileName))
	require.NoError(t, err)
	sln.Add(&model.InstalledPackage{ID: "NUnit.Runners", Version: "2.6"})
	require.NoError(t, sln.Save())

	return manifest
}

func TestLoad(t *testing.T) {
	manifest := writeSolution(t)

	s, err := Load(manifest)
	require.NoError(t, err)

	assert.Equal(t, "demo", s.Name)
	require.Len(t, s.Projects(), 3)
	names := []string{s.Projects()[0].Name, s.Projects()[1].Name, s.Projects()[2].Name}
	assert.Equal(t, []string{"Api", "cloud", "Web"}, names)

	web, err := s.Project("web")
	require.NoError(t, err)
	assert.Equal(t, KindDefault, web.Kind)
	assert.Equal(t, "1.6", web.InstalledVersion("jquery").Original())

	cloud, err := s.Project("cloud")
	require.NoError(t, err)
	assert.Equal(t, KindCloudService, cloud.Kind)
	assert.Equal(t, "CloudOut", cloud.Properties["OutputName"])

	api, err := s.Project("api")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(manifest), "Api"), api.Dir)
	assert.Nil(t, api.InstalledVersion("jquery"))

	assert.True(t, s.InstalledPackages().IsInstalled("nunit.runners"))
}

func TestSolution_ProjectNotFound(t *testing.T) {
	s := New("empty", t.TempDir(), nil)
	_, err := s.Project("web")
	assert.ErrorIs(t, err, errors.ErrProjectNotFound)
	assert.NotNil(t, s.InstalledPackages())
}

func TestSolution_Save(t *testing.T) {
	manifest := writeSolution(t)
	s, err := Load(manifest)
	require.NoError(t, err)

	api, err := s.Project("Api")
	require.NoError(t, err)
	api.Installed.Add(&model.InstalledPackage{ID: "Elmah", Version: "1.2"})
	require.NoError(t, s.Save())

	reloaded, err := Load(manifest)
	require.NoError(t, err)
	api, err = reloaded.Project("Api")
	require.NoError(t, err)
	assert.True(t, api.Installed.IsInstalled("elmah"))
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "not yaml", yaml: "projects: [:"},
		{name: "missing project name", yaml: "projects:\n  - path: a\n"},
		{name: "duplicate project", yaml: "projects:\n  - name: a\n  - name: A\n"},
		{name: "unknown kind", yaml: "projects:\n  - name: a\n    kind: website\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest(strings.NewReader(tt.yaml))
			assert.ErrorIs(t, err, errors.ErrSolutionManifest)
		})
	}
}
