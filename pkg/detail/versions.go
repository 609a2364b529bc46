package detail

import (
	"github.com/glorpus-work/solpkg/pkg/model"
	"github.com/hashicorp/go-version"
)

// feedVersionChoices builds the Install/Update picker: the newest stable version
// labelled "latest stable", a separator, then every version newest first.
func feedVersionChoices(known []*version.Version) []model.VersionChoice {
	sorted := model.SortDescending(model.DistinctVersions(known))
	choices := make([]model.VersionChoice, 0, len(sorted)+2)

	for _, v := range sorted {
		if !model.IsPrerelease(v) {
			choices = append(choices, model.NewVersionChoice(v, model.LatestStableLabel))
			break
		}
	}
	if len(choices) > 0 {
		choices = append(choices, model.Separator())
	}
	for _, v := range sorted {
		choices = append(choices, model.NewVersionChoice(v, ""))
	}
	return choices
}

// installedVersionChoices builds the Uninstall/Consolidate picker from what is
// installed, newest first, without label or separator.
func installedVersionChoices(installed []*version.Version) []model.VersionChoice {
	sorted := model.SortDescending(model.DistinctVersions(installed))
	choices := make([]model.VersionChoice, 0, len(sorted))
	for _, v := range sorted {
		choices = append(choices, model.NewVersionChoice(v, ""))
	}
	return choices
}

// defaultChoice returns the index of the first selectable entry, or -1.
func defaultChoice(choices []model.VersionChoice) int {
	for i, c := range choices {
		if !c.IsSeparator() {
			return i
		}
	}
	return -1
}

// findChoice returns the index of the first selectable entry equal to v, or -1.
func findChoice(choices []model.VersionChoice, v *version.Version) int {
	if v == nil {
		return -1
	}
	for i, c := range choices {
		if !c.IsSeparator() && c.Version.Equal(v) {
			return i
		}
	}
	return -1
}
