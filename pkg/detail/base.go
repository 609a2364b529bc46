// Package detail derives the package-detail state shown for one package: which
// actions are offered, which versions can be picked and, for a solution, which
// projects each action applies to.
//
// Models are single-threaded. Every setter recomputes all derived state before it
// returns and only then tells observers which properties changed.
package detail

import (
	"context"
	"fmt"
	"slices"

	"github.com/glorpus-work/solpkg/internal/logger"
	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/glorpus-work/solpkg/pkg/model"
	"github.com/hashicorp/go-version"
)

// base holds what the per-solution and per-project models share: the target
// package, its known versions, the offered actions and the version picker.
type base struct {
	source MetadataSource

	id       string
	known    []*version.Version
	actions  []model.Action
	action   model.Action
	versions []model.VersionChoice
	selected int

	observers []Observer
	depth     int
	pending   []string

	// hooks supplied by the owning model
	canPerform  func(model.Action) bool
	versionList func() []model.VersionChoice
	recompute   func()
	commit      func()
}

// Subscribe registers an observer for property changes.
func (b *base) Subscribe(o Observer) {
	b.observers = append(b.observers, o)
}

// PackageID returns the target package id.
func (b *base) PackageID() string {
	return b.id
}

// KnownVersions returns the versions the feeds offer for the target package.
func (b *base) KnownVersions() []*version.Version {
	return b.known
}

// Actions returns the actions currently offered, in display order.
func (b *base) Actions() []model.Action {
	return b.actions
}

// SelectedAction returns the current action, empty when none is offered.
func (b *base) SelectedAction() model.Action {
	return b.action
}

// Versions returns the version picker, separators included.
func (b *base) Versions() []model.VersionChoice {
	return b.versions
}

// SelectedVersion returns the picked entry; ok is false when the picker is empty.
func (b *base) SelectedVersion() (model.VersionChoice, bool) {
	if b.selected < 0 || b.selected >= len(b.versions) {
		return model.VersionChoice{}, false
	}
	return b.versions[b.selected], true
}

func (b *base) selectedVersion() *version.Version {
	c, ok := b.SelectedVersion()
	if !ok {
		return nil
	}
	return c.Version
}

// SetPackage loads the versions of id and re-derives everything. The current
// action is kept when it is still offered, otherwise the first offered action is
// selected.
func (b *base) SetPackage(ctx context.Context, id string) error {
	known, err := b.source.Versions(ctx, id)
	if err != nil {
		return errors.Wrapf(err, "failed to load versions of %s", id)
	}

	b.begin()
	defer b.end()

	b.id = id
	b.known = model.DistinctVersions(known)
	logger.Debug("package selected", logger.Fields{"package": id, "versions": len(b.known)})

	b.rebuildActions()
	next := model.Action("")
	for _, a := range b.actions {
		if a == b.action {
			next = a
			break
		}
	}
	if next == "" && len(b.actions) > 0 {
		next = b.actions[0]
	}
	b.applyAction(next)
	return nil
}

// SetSelectedAction switches the action, rebuilds the picker and recomputes.
// Any of the four actions may be set, offered or not.
func (b *base) SetSelectedAction(a model.Action) error {
	if !slices.Contains(model.AllActions, a) {
		return fmt.Errorf("%q: %w", a, errors.ErrUnknownAction)
	}

	b.begin()
	defer b.end()

	b.applyAction(a)
	return nil
}

// SetSelectedVersion picks v from the current picker and recomputes.
func (b *base) SetSelectedVersion(v *version.Version) error {
	i := findChoice(b.versions, v)
	if i < 0 {
		shown := "<nil>"
		if v != nil {
			shown = v.Original()
		}
		return fmt.Errorf("%s: %w", shown, errors.ErrVersionNotOffered)
	}

	b.begin()
	defer b.end()

	b.selectVersion(i)
	return nil
}

func (b *base) rebuildActions() {
	actions := make([]model.Action, 0, len(model.AllActions))
	for _, a := range model.AllActions {
		if b.canPerform(a) {
			actions = append(actions, a)
		}
	}
	b.actions = actions
	b.notify(PropertyActions)
}

func (b *base) applyAction(a model.Action) {
	if b.action != a {
		b.action = a
		b.notify(PropertySelectedAction)
	}
	b.versions = b.versionList()
	b.notify(PropertyVersions)
	b.selectVersion(defaultChoice(b.versions))
}

func (b *base) selectVersion(i int) {
	b.selected = i
	b.notify(PropertySelectedVersion)
	b.recompute()
}

// notify queues a property change until the outermost mutation completes.
func (b *base) notify(property string) {
	for _, p := range b.pending {
		if p == property {
			return
		}
	}
	b.pending = append(b.pending, property)
}

func (b *base) begin() {
	b.depth++
}

func (b *base) end() {
	b.depth--
	if b.depth == 0 {
		b.commit()
	}
}

// flush delivers queued notifications. Observers may start new mutations.
func (b *base) flush() {
	pending := b.pending
	b.pending = nil
	for _, p := range pending {
		for _, o := range b.observers {
			o(p)
		}
	}
}
