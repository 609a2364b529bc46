package feed

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lookup map[string]string

func (l lookup) InstalledVersion(id string) *version.Version {
	s, ok := l[id]
	if !ok {
		return nil
	}
	v, _ := version.NewVersion(s)
	return v
}

type recordingInstaller struct {
	installed []string
	err       error
}

func (r *recordingInstaller) Install(_ context.Context, pkg *Package) error {
	if r.err != nil {
		return r.err
	}
	r.installed = append(r.installed, pkg.Key())
	return nil
}

const licensedFeed = `[
  {"id":"Lib","version":"1.0","url":"lib.zip","require_license_acceptance":true},
  {"id":"App","version":"2.0","url":"app.zip","require_license_acceptance":true,
   "dependencies":[{"id":"Lib"},{"id":"Free"}]},
  {"id":"Free","version":"1.0","url":"free.zip"}
]`

func TestOnlineProvider_RootNodes(t *testing.T) {
	good := writeFeed(t, licensedFeed)
	m := NewManager([]*Feed{
		{Name: "good", URL: good, Priority: 2, Enabled: true},
		{Name: "broken", URL: filepath.Join(t.TempDir(), "nope"), Priority: 1, Enabled: true},
		{Name: "disabled", URL: good, Enabled: false},
	}, t.TempDir(), nil)
	p := NewOnlineProvider(m)

	nodes := p.RootNodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, "good", nodes[0].Name)
	assert.Len(t, nodes[0].Packages, 3)
	assert.NoError(t, nodes[0].Err)

	assert.Equal(t, "broken", nodes[1].Name)
	assert.True(t, nodes[1].IsEmpty())
	assert.Error(t, nodes[1].Err)
	assert.Equal(t, "Online", p.Name())
}

func TestOnlineProvider_CanExecute(t *testing.T) {
	p := NewOnlineProvider(NewManager(nil, t.TempDir(), nil))
	pkg := &Package{ID: "App", Version: "2.0"}

	assert.True(t, p.CanExecute(pkg, lookup{}))
	assert.True(t, p.CanExecute(pkg, lookup{"App": "1.0"}))
	assert.False(t, p.CanExecute(pkg, lookup{"App": "2.0.0"}))
}

func TestOnlineProvider_Execute(t *testing.T) {
	m := NewManager([]*Feed{{Name: "good", URL: writeFeed(t, licensedFeed), Enabled: true}}, t.TempDir(), nil)
	p := NewOnlineProvider(m)
	app, _, err := m.Latest("App", "")
	require.NoError(t, err)

	licensed, err := p.LicensePackages(app, lookup{"Lib": "1.0"})
	require.NoError(t, err)
	require.Len(t, licensed, 1)
	assert.Equal(t, "App", licensed[0].ID)

	t.Run("new version of installed package", func(t *testing.T) {
		lib := &Package{ID: "Lib", Version: "2.0", URL: "lib.2.0.zip", RequireLicenseAcceptance: true}
		project := lookup{"Lib": "1.0"}
		require.True(t, p.CanExecute(lib, project))

		licensed, err := p.LicensePackages(lib, project)
		require.NoError(t, err)
		require.Len(t, licensed, 1)
		assert.Equal(t, "2.0", licensed[0].Version)

		same, err := p.LicensePackages(lib, lookup{"Lib": "2.0.0"})
		require.NoError(t, err)
		assert.Empty(t, same)
	})

	t.Run("declined", func(t *testing.T) {
		inst := &recordingInstaller{}
		var offered []string
		ok, err := p.Execute(context.Background(), app, lookup{}, func(pkgs []*Package) bool {
			for _, pkg := range pkgs {
				offered = append(offered, pkg.ID)
			}
			return false
		}, inst)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []string{"App", "Lib"}, offered)
		assert.Empty(t, inst.installed)
	})

	t.Run("accepted", func(t *testing.T) {
		inst := &recordingInstaller{}
		ok, err := p.Execute(context.Background(), app, lookup{}, func([]*Package) bool { return true }, inst)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"App@2.0"}, inst.installed)
	})

	t.Run("installer error", func(t *testing.T) {
		inst := &recordingInstaller{err: errors.New("disk full")}
		ok, err := p.Execute(context.Background(), app, lookup{}, func([]*Package) bool { return true }, inst)
		assert.Error(t, err)
		assert.False(t, ok)
	})
}
