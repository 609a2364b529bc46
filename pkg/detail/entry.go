package detail

import (
	"github.com/glorpus-work/solpkg/pkg/solution"
	"github.com/hashicorp/go-version"
)

// Entry is the derived state of one project for the current package and action.
type Entry struct {
	project  *solution.Project
	version  *version.Version
	enabled  bool
	selected bool

	// selectedChanged is the owning model's subscription, set once at construction.
	selectedChanged func(*Entry)
}

func newEntry(p *solution.Project, onSelected func(*Entry)) *Entry {
	return &Entry{project: p, selectedChanged: onSelected}
}

// Project returns the project the entry describes.
func (e *Entry) Project() *solution.Project {
	return e.project
}

// Version is the installed version of the target package, nil when absent.
func (e *Entry) Version() *version.Version {
	return e.version
}

// Enabled reports whether the selected action applies to the project.
func (e *Entry) Enabled() bool {
	return e.enabled
}

// Selected reports whether the project takes part in the next batch.
func (e *Entry) Selected() bool {
	return e.selected
}

// SetSelected checks or unchecks the project. Disabled entries cannot be selected
// and ignore the call.
func (e *Entry) SetSelected(selected bool) {
	if !e.enabled || e.selected == selected {
		return
	}
	e.selected = selected
	if e.selectedChanged != nil {
		e.selectedChanged(e)
	}
}

// reset applies a recompute result without firing the subscription.
func (e *Entry) reset(v *version.Version, enabled bool) {
	e.version = v
	e.enabled = enabled
	e.selected = enabled
}
