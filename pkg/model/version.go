package model

import (
	"fmt"
	"sort"

	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/hashicorp/go-version"
)

// LatestStableLabel marks the surfaced newest non-prerelease version.
const LatestStableLabel = "latest stable"

// VersionChoice is one row of the version picker. The zero value is the separator.
type VersionChoice struct {
	Version *version.Version
	Label   string
}

// Separator returns the visual divider placed after the latest stable entry.
func Separator() VersionChoice {
	return VersionChoice{}
}

// NewVersionChoice creates a selectable entry.
func NewVersionChoice(v *version.Version, label string) VersionChoice {
	return VersionChoice{Version: v, Label: label}
}

// IsSeparator reports whether the entry is the non-selectable divider.
func (c VersionChoice) IsSeparator() bool {
	return c.Version == nil
}

func (c VersionChoice) String() string {
	if c.IsSeparator() {
		return "----------"
	}
	if c.Label == "" {
		return c.Version.Original()
	}
	return fmt.Sprintf("%s (%s)", c.Version.Original(), c.Label)
}

// ParseVersion parses a package version.
func ParseVersion(s string) (*version.Version, error) {
	v, err := version.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("%q: %w: %w", s, errors.ErrInvalidVersion, err)
	}
	return v, nil
}

// IsPrerelease reports whether v carries a prerelease tag such as "-beta".
func IsPrerelease(v *version.Version) bool {
	return v.Prerelease() != ""
}

// SameVersion compares two optional versions semantically. Two absent versions are equal.
func SameVersion(a, b *version.Version) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// SortDescending returns a newest-first copy of vs. Nil entries are dropped.
func SortDescending(vs []*version.Version) []*version.Version {
	out := make([]*version.Version, 0, len(vs))
	for _, v := range vs {
		if v != nil {
			out = append(out, v)
		}
	}
	sort.Stable(sort.Reverse(version.Collection(out)))
	return out
}

// DistinctVersions removes semantically equal duplicates, keeping the first occurrence.
func DistinctVersions(vs []*version.Version) []*version.Version {
	out := make([]*version.Version, 0, len(vs))
	for _, v := range vs {
		if v == nil {
			continue
		}
		dup := false
		for _, seen := range out {
			if seen.Equal(v) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}
