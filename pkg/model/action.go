// Package model holds the value types shared by the resolver, the feeds, the
// solution roster and the executor.
package model

import (
	"fmt"
	"strings"

	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/hashicorp/go-version"
)

// Action is the operation the user intends to run against a package.
type Action string

const (
	// ActionInstall adds the package to projects that do not have it.
	ActionInstall Action = "install"
	// ActionUpdate moves projects that have the package to the selected version.
	ActionUpdate Action = "update"
	// ActionUninstall removes the selected version from the projects that have it.
	ActionUninstall Action = "uninstall"
	// ActionConsolidate aligns every project on the selected version.
	ActionConsolidate Action = "consolidate"
)

// AllActions lists the actions in the order they are offered.
var AllActions = []Action{ActionInstall, ActionUpdate, ActionUninstall, ActionConsolidate}

// ParseAction converts user input (case-insensitive) into an Action.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case ActionInstall, ActionUpdate, ActionUninstall, ActionConsolidate:
		return a, nil
	default:
		return "", fmt.Errorf("%q: %w", s, errors.ErrUnknownAction)
	}
}

// Title returns the label shown on the action button.
func (a Action) Title() string {
	if a == "" {
		return ""
	}
	return strings.ToUpper(string(a[:1])) + string(a[1:])
}

// UsesInstalledVersions reports whether the candidate versions come from what is
// already installed rather than from the feeds.
func (a Action) UsesInstalledVersions() bool {
	return a == ActionUninstall || a == ActionConsolidate
}

// ActionRequest is the tuple handed to the executor: which action to run for
// which package version against which projects (by name).
type ActionRequest struct {
	PackageID string
	Action    Action
	Version   *version.Version
	Projects  []string
}
