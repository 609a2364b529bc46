package solution

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/glorpus-work/solpkg/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadInstalledPackages_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), PackagesFileName)

	db, err := LoadInstalledPackages(path)
	require.NoError(t, err)
	assert.Empty(t, db.All())
	assert.Equal(t, path, db.Path())
}

func TestLoadInstalledPackages_RelativePath(t *testing.T) {
	_, err := LoadInstalledPackages("packages.json")
	assert.ErrorIs(t, err, errors.ErrInvalidPath)
}

func TestLoadInstalledPackages_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), PackagesFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadInstalledPackages(path)
	assert.Error(t, err)
}

func TestLoadInstalledPackages_InvalidVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), PackagesFileName)
	data := `{"format_version":"1","packages":[{"id":"jQuery","version":"not-a-version"}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := LoadInstalledPackages(path)
	assert.ErrorIs(t, err, errors.ErrInvalidVersion)
}

func TestInstalledPackages_UnparsableVersionIsNotInstalled(t *testing.T) {
	db := NewInstalledPackages()
	db.Add(&model.InstalledPackage{ID: "jQuery", Version: "latest"})

	assert.Nil(t, db.InstalledVersion("jQuery"))
	assert.False(t, db.IsInstalled("jQuery"))
}

func TestInstalledPackages_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "web", PackagesFileName)
	db, err := LoadInstalledPackages(path)
	require.NoError(t, err)

	db.Add(&model.InstalledPackage{ID: "jQuery", Version: "1.6.2"})
	db.Add(&model.InstalledPackage{ID: "Elmah", Version: "1.1"})
	require.NoError(t, db.Save())

	loaded, err := LoadInstalledPackages(path)
	require.NoError(t, err)
	require.Len(t, loaded.All(), 2)
	assert.Equal(t, "1.6.2", loaded.Find("jquery").Version)
	assert.False(t, loaded.Find("jquery").InstalledAt.IsZero())
}

func TestInstalledPackages_AddReplacesAndRemove(t *testing.T) {
	db := NewInstalledPackages()
	db.Add(&model.InstalledPackage{ID: "jQuery", Version: "1.6.2"})
	db.Add(&model.InstalledPackage{ID: "JQUERY", Version: "1.7"})

	require.Len(t, db.All(), 1)
	assert.True(t, db.IsInstalled("jquery"))
	assert.Equal(t, "1.7", db.InstalledVersion("jQuery").Original())

	assert.True(t, db.Remove("jquery"))
	assert.False(t, db.Remove("jquery"))
	assert.Nil(t, db.InstalledVersion("jQuery"))
}

func TestInstalledPackages_Filtered(t *testing.T) {
	db := NewInstalledPackages()
	db.Add(&model.InstalledPackage{ID: "Microsoft.Web.Infrastructure", Version: "1.0"})
	db.Add(&model.InstalledPackage{ID: "Microsoft.AspNet.Mvc", Version: "5.2"})
	db.Add(&model.InstalledPackage{ID: "jQuery", Version: "1.6.2"})

	assert.Len(t, db.Filtered(""), 3)
	assert.Len(t, db.Filtered("microsoft"), 2)
	assert.Empty(t, db.Filtered("nunit"))
}

func TestInstalledPackages_SaveUnbound(t *testing.T) {
	assert.ErrorIs(t, NewInstalledPackages().Save(), errors.ErrInvalidPath)
}
