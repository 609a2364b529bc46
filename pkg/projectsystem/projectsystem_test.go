package projectsystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/glorpus-work/solpkg/pkg/solution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProject(t *testing.T, kind solution.Kind, props map[string]string) *solution.Project {
	t.Helper()
	return &solution.Project{
		Name:       "Web",
		Kind:       kind,
		Dir:        t.TempDir(),
		Properties: props,
		Installed:  solution.NewInstalledPackages(),
	}
}

func TestNew_PicksAdapterByKind(t *testing.T) {
	_, ok := New(newProject(t, solution.KindDefault, nil)).(*FileSystemProject)
	assert.True(t, ok)
	_, ok = New(newProject(t, solution.KindCloudService, nil)).(*CloudServiceProject)
	assert.True(t, ok)
}

func TestFileSystemProject_Files(t *testing.T) {
	p := NewFileSystemProject(newProject(t, solution.KindDefault, nil))

	require.NoError(t, p.AddFile("Content/site.css", strings.NewReader("body{}")))
	require.NoError(t, p.AddFile("packages/Foo.1.0/readme.txt", strings.NewReader("x")))
	require.NoError(t, p.AddFile(".hidden/notes.txt", strings.NewReader("x")))
	require.NoError(t, p.AddFile("Content/site.css", strings.NewReader("body{color:red}")))

	data, err := os.ReadFile(filepath.Join(p.Root(), "Content", "site.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{color:red}", string(data))
	assert.True(t, p.FileExists("packages/Foo.1.0/readme.txt"))

	items, err := p.Items()
	require.NoError(t, err)
	assert.Equal(t, []string{"Content/site.css"}, items)

	// state survives a reload
	reloaded := NewFileSystemProject(p.project)
	items, err = reloaded.Items()
	require.NoError(t, err)
	assert.Equal(t, []string{"Content/site.css"}, items)

	require.NoError(t, p.DeleteFile("Content/site.css"))
	assert.False(t, p.FileExists("Content/site.css"))
	items, err = p.Items()
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, p.DeleteFile("Content/missing.css"))
}

func TestFileSystemProject_DeleteDirectory(t *testing.T) {
	p := NewFileSystemProject(newProject(t, solution.KindDefault, nil))
	require.NoError(t, p.AddFile("Scripts/a.js", strings.NewReader("a")))
	require.NoError(t, p.AddFile("Scripts/lib/b.js", strings.NewReader("b")))
	require.NoError(t, p.AddFile("Views/index.html", strings.NewReader("c")))

	assert.Error(t, p.DeleteDirectory("Scripts", false))
	require.NoError(t, p.DeleteDirectory("Scripts", true))
	assert.False(t, p.FileExists("Scripts"))

	items, err := p.Items()
	require.NoError(t, err)
	assert.Equal(t, []string{"Views/index.html"}, items)
}

func TestFileSystemProject_RejectsEscapingPaths(t *testing.T) {
	p := NewFileSystemProject(newProject(t, solution.KindDefault, nil))

	for _, rel := range []string{"", "../outside.txt", "a/../../outside.txt", "/etc/passwd"} {
		err := p.AddFile(rel, strings.NewReader("x"))
		assert.ErrorIs(t, err, errors.ErrInvalidPath, rel)
	}
}

func TestFileSystemProject_References(t *testing.T) {
	p := NewFileSystemProject(newProject(t, solution.KindDefault, nil))

	require.NoError(t, p.AddReference("packages/Contoso.1.0/lib/Contoso.Core.dll"))
	assert.True(t, p.ReferenceExists("Contoso.Core"))
	assert.True(t, p.ReferenceExists("contoso.core"))

	require.NoError(t, p.AddReference("packages/Contoso.2.0/lib/Contoso.Core.dll"))
	refs, err := p.References()
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "packages/Contoso.2.0/lib/Contoso.Core.dll", refs[0].Path)

	require.NoError(t, p.RemoveReference("Contoso.Core"))
	assert.False(t, p.ReferenceExists("Contoso.Core"))
}

func TestFileSystemProject_Properties(t *testing.T) {
	project := newProject(t, solution.KindDefault, map[string]string{"RootNamespace": "Contoso.Web"})
	p := NewFileSystemProject(project)

	v, err := p.PropertyValue("rootnamespace")
	require.NoError(t, err)
	assert.Equal(t, "Contoso.Web", v)

	v, err = p.PropertyValue("Name")
	require.NoError(t, err)
	assert.Equal(t, "Web", v)

	_, err = p.PropertyValue("OutputName")
	assert.ErrorIs(t, err, errors.ErrPropertyNotFound)
}

func TestFileSystemProject_SupportAndExclusion(t *testing.T) {
	p := NewFileSystemProject(newProject(t, solution.KindDefault, nil))

	assert.True(t, p.IsBindingRedirectSupported())
	assert.True(t, p.IsSupportedFile("Content/site.css"))
	assert.False(t, p.IsSupportedFile("Web.config"))
	assert.False(t, p.IsSupportedFile("sub/app.config"))

	assert.True(t, p.ExcludeFile("packages/Foo/readme.txt"))
	assert.True(t, p.ExcludeFile(".gitignore"))
	assert.True(t, p.ExcludeFile("a/.cache/b"))
	assert.False(t, p.ExcludeFile("packagesfoo/readme.txt"))
	assert.False(t, p.ExcludeFile("Content/site.css"))
}

func TestCloudServiceProject(t *testing.T) {
	project := newProject(t, solution.KindCloudService, nil)
	p := NewCloudServiceProject(NewFileSystemProject(project))

	require.NoError(t, p.AddFile("ServiceDefinition.csdef", strings.NewReader("<x/>")))
	assert.True(t, p.FileExists("ServiceDefinition.csdef"))
	items, err := p.Items()
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, p.DeleteFile("ServiceDefinition.csdef"))
	assert.True(t, p.FileExists("ServiceDefinition.csdef"))
	require.NoError(t, p.DeleteDirectory(".", true))
	assert.True(t, p.FileExists("ServiceDefinition.csdef"))

	require.NoError(t, p.AddReference("lib/Contoso.Core.dll"))
	refs, err := p.References()
	require.NoError(t, err)
	assert.Empty(t, refs)
	assert.True(t, p.ReferenceExists("anything"))
	require.NoError(t, p.RemoveReference("anything"))

	assert.True(t, p.IsSupportedFile("Web.config"))
	assert.False(t, p.IsBindingRedirectSupported())
	assert.False(t, p.ExcludeFile("packages/Foo/readme.txt"))
	assert.False(t, p.ExcludeFile(".gitignore"))
}

func TestCloudServiceProject_RootNamespace(t *testing.T) {
	withOutput := NewCloudServiceProject(NewFileSystemProject(newProject(t, solution.KindCloudService,
		map[string]string{"OutputName": "Contoso.Cloud", "RootNamespace": "Ignored"})))
	v, err := withOutput.PropertyValue("RootNamespace")
	require.NoError(t, err)
	assert.Equal(t, "Contoso.Cloud", v)

	without := NewCloudServiceProject(NewFileSystemProject(newProject(t, solution.KindCloudService, nil)))
	v, err = without.PropertyValue("rootNamespace")
	require.NoError(t, err)
	assert.Equal(t, "Azure", v)

	v, err = without.PropertyValue("Name")
	require.NoError(t, err)
	assert.Equal(t, "Web", v)
}
