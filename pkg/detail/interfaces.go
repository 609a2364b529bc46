//go:generate mockgen -destination=./mocks/detail.go . MetadataSource,Roster

package detail

import (
	"context"

	"github.com/glorpus-work/solpkg/pkg/solution"
	"github.com/hashicorp/go-version"
)

// MetadataSource lists every version of a package known to the feeds.
type MetadataSource interface {
	Versions(ctx context.Context, id string) ([]*version.Version, error)
}

// Roster provides the projects of the solution and the solution-level installs.
// The roster is fixed for the lifetime of a model.
type Roster interface {
	Projects() []*solution.Project
	InstalledPackages() *solution.InstalledPackages
}

// Observer receives the name of a derived property after it changed.
type Observer func(property string)

// Property names passed to observers.
const (
	PropertyActions            = "Actions"
	PropertySelectedAction     = "SelectedAction"
	PropertyVersions           = "Versions"
	PropertySelectedVersion    = "SelectedVersion"
	PropertyProjects           = "Projects"
	PropertyActionEnabled      = "ActionEnabled"
	PropertyCheckboxState      = "CheckboxState"
	PropertySelectCheckboxText = "SelectCheckboxText"
	PropertyShowAll            = "ShowAll"
)
