package model

import (
	"testing"

	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/hashicorp/go-version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func versions(t *testing.T, raw ...string) []*version.Version {
	t.Helper()
	out := make([]*version.Version, 0, len(raw))
	for _, s := range raw {
		v, err := ParseVersion(s)
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func originals(vs []*version.Version) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Original())
	}
	return out
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{in: "install", want: ActionInstall},
		{in: "Update", want: ActionUpdate},
		{in: " UNINSTALL ", want: ActionUninstall},
		{in: "consolidate", want: ActionConsolidate},
		{in: "upgrade", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrUnknownAction)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAction_Title(t *testing.T) {
	assert.Equal(t, "Consolidate", ActionConsolidate.Title())
	assert.Equal(t, "", Action("").Title())
}

func TestAction_UsesInstalledVersions(t *testing.T) {
	assert.False(t, ActionInstall.UsesInstalledVersions())
	assert.False(t, ActionUpdate.UsesInstalledVersions())
	assert.True(t, ActionUninstall.UsesInstalledVersions())
	assert.True(t, ActionConsolidate.UsesInstalledVersions())
}

func TestParseVersion_Invalid(t *testing.T) {
	_, err := ParseVersion("not-a-version")
	assert.ErrorIs(t, err, errors.ErrInvalidVersion)
}

func TestSortDescending(t *testing.T) {
	in := versions(t, "1.0", "2.0", "1.5-beta", "1.5")
	got := SortDescending(append(in, nil))

	assert.Equal(t, []string{"2.0", "1.5", "1.5-beta", "1.0"}, originals(got))
	assert.Equal(t, "1.0", in[0].Original(), "input must not be reordered")
}

func TestDistinctVersions(t *testing.T) {
	got := DistinctVersions(versions(t, "1.0", "1.0.0", "2.0", "1.0"))
	assert.Equal(t, []string{"1.0", "2.0"}, originals(got))
}

func TestSameVersion(t *testing.T) {
	vs := versions(t, "1.0", "1.0.0", "1.1")
	assert.True(t, SameVersion(vs[0], vs[1]))
	assert.False(t, SameVersion(vs[0], vs[2]))
	assert.False(t, SameVersion(vs[0], nil))
	assert.True(t, SameVersion(nil, nil))
}

func TestVersionChoice(t *testing.T) {
	v := versions(t, "2.0")[0]

	assert.True(t, Separator().IsSeparator())
	assert.False(t, NewVersionChoice(v, "").IsSeparator())
	assert.Equal(t, "2.0 (latest stable)", NewVersionChoice(v, LatestStableLabel).String())
	assert.Equal(t, "2.0", NewVersionChoice(v, "").String())
	assert.True(t, IsPrerelease(versions(t, "1.5-beta")[0]))
	assert.False(t, IsPrerelease(v))
}

func TestInstalledPackage(t *testing.T) {
	p := &InstalledPackage{ID: "jQuery", Version: "1.6.2"}
	assert.Equal(t, "jQuery@1.6.2", p.Key())
	require.NotNil(t, p.GetVersion())
	assert.Equal(t, "1.6.2", p.GetVersion().Original())

	assert.Nil(t, (&InstalledPackage{ID: "x", Version: "bogus"}).GetVersion())
	assert.Nil(t, (*InstalledPackage)(nil).GetVersion())
}
