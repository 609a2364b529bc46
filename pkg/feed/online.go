package feed

import (
	"context"

	"github.com/glorpus-work/solpkg/internal/logger"
	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/glorpus-work/solpkg/pkg/model"
	"github.com/hashicorp/go-version"
)

// Node is one feed in the online browser. A feed whose index cannot be loaded
// still gets a node, with no packages and Err set.
type Node struct {
	Name     string
	Feed     *Feed
	Packages []*Package
	Err      error
}

// IsEmpty reports whether the node has nothing to show.
func (n *Node) IsEmpty() bool {
	return len(n.Packages) == 0
}

// InstalledLookup answers whether a project already has a package.
type InstalledLookup interface {
	InstalledVersion(id string) *version.Version
}

// Installer performs the install once licenses are accepted.
type Installer interface {
	Install(ctx context.Context, pkg *Package) error
}

// LicenseAcceptor is asked to accept the licenses of the listed packages.
type LicenseAcceptor func(packages []*Package) bool

// OnlineProvider browses feeds and installs packages into a single project.
type OnlineProvider struct {
	feeds *Manager
}

// NewOnlineProvider creates a provider over the given feeds.
func NewOnlineProvider(feeds *Manager) *OnlineProvider {
	return &OnlineProvider{feeds: feeds}
}

// Name is the title of the provider.
func (p *OnlineProvider) Name() string {
	return "Online"
}

// RootNodes returns one node per enabled feed, in priority order.
func (p *OnlineProvider) RootNodes() []*Node {
	nodes := make([]*Node, 0, len(p.feeds.Feeds()))
	for _, f := range p.feeds.Feeds() {
		if !f.Enabled {
			continue
		}
		node := &Node{Name: f.Name, Feed: f}
		idx, err := p.feeds.Index(f.Name)
		if err != nil {
			logger.Warn("showing empty node for feed", logger.Fields{"feed": f.Name, "error": err.Error()})
			node.Err = err
		} else {
			node.Packages = idx.Packages
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// CanExecute reports whether pkg can be installed: the project must not already
// have that exact id and version.
func (p *OnlineProvider) CanExecute(pkg *Package, project InstalledLookup) bool {
	installed := project.InstalledVersion(pkg.ID)
	if installed == nil {
		return true
	}
	v := pkg.GetVersion()
	return v == nil || !installed.Equal(v)
}

// LicensePackages returns pkg and its dependencies that require license
// acceptance and are not installed in the project at that exact version.
func (p *OnlineProvider) LicensePackages(pkg *Package, project InstalledLookup) ([]*Package, error) {
	deps, err := p.feeds.Dependencies(pkg)
	if err != nil {
		return nil, err
	}
	all := append([]*Package{pkg}, deps...)

	var out []*Package
	for _, candidate := range all {
		if !candidate.RequireLicenseAcceptance {
			continue
		}
		if iv := project.InstalledVersion(candidate.ID); iv != nil && model.SameVersion(iv, candidate.GetVersion()) {
			continue
		}
		out = append(out, candidate)
	}
	return out, nil
}

// Execute installs pkg after the licenses that need it have been accepted.
// It returns false without error when the user declines.
func (p *OnlineProvider) Execute(ctx context.Context, pkg *Package, project InstalledLookup, accept LicenseAcceptor, installer Installer) (bool, error) {
	licensed, err := p.LicensePackages(pkg, project)
	if err != nil {
		return false, err
	}
	if len(licensed) > 0 {
		if accept == nil || !accept(licensed) {
			logger.Info("license declined", logger.Fields{"package": pkg.Key()})
			return false, nil
		}
	}
	if err := installer.Install(ctx, pkg); err != nil {
		return false, errors.Wrapf(err, "failed to install %s", pkg.Key())
	}
	return true, nil
}
