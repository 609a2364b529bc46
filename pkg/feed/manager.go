package feed

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/glorpus-work/solpkg/internal/logger"
	"github.com/glorpus-work/solpkg/pkg/cache"
	"github.com/glorpus-work/solpkg/pkg/errors"
	pkghttp "github.com/glorpus-work/solpkg/pkg/http"
	"github.com/glorpus-work/solpkg/pkg/model"
	"github.com/hashicorp/go-version"
)

// Feed is a configured package source. URL is either an http(s) URL or a local
// directory holding index.json.
type Feed struct {
	Name     string
	URL      string
	Priority uint
	Enabled  bool
}

// IsRemote reports whether the feed is served over http(s).
func (f *Feed) IsRemote() bool {
	u, err := url.Parse(f.URL)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// ResolveURL turns a package URL relative to the feed into an absolute location.
func (f *Feed) ResolveURL(ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("empty package URL in feed %s: %w", f.Name, errors.ErrFeedIndexInvalid)
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return ref, nil
	}
	if filepath.IsAbs(ref) {
		return ref, nil
	}
	if f.IsRemote() {
		base, err := url.Parse(f.URL)
		if err != nil {
			return "", fmt.Errorf("%s: %w", f.URL, errors.ErrFeedURLInvalid)
		}
		return base.JoinPath(ref).String(), nil
	}
	return filepath.Join(f.URL, filepath.FromSlash(ref)), nil
}

// IndexDownloader fetches a remote feed index into a local file.
type IndexDownloader interface {
	DownloadIndex(ctx context.Context, feedURL string, filePath string) error
}

// Manager aggregates the configured feeds.
type Manager struct {
	feeds    []*Feed
	cacheDir string
	client   IndexDownloader
	cacheTTL time.Duration
	indexes  map[string]*Index
}

// NewManager creates a manager. Remote indexes are cached under cacheDir/feeds.
func NewManager(feeds []*Feed, cacheDir string, client IndexDownloader) *Manager {
	sorted := make([]*Feed, len(feeds))
	copy(sorted, feeds)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return &Manager{
		feeds:    sorted,
		cacheDir: cacheDir,
		client:   client,
		indexes:  make(map[string]*Index, len(feeds)),
	}
}

// SetCacheTTL enables staleness checks for remote indexes.
func (m *Manager) SetCacheTTL(ttl time.Duration) {
	m.cacheTTL = ttl
}

// Feeds returns the feeds ordered by descending priority.
func (m *Manager) Feeds() []*Feed {
	return m.feeds
}

// Feed looks a feed up by name.
func (m *Manager) Feed(name string) (*Feed, error) {
	for _, f := range m.feeds {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", name, errors.ErrFeedNotFound)
}

// IndexPath returns where the index of f is read from.
func (m *Manager) IndexPath(f *Feed) string {
	if f.IsRemote() {
		return filepath.Join(m.cacheDir, cache.FeedsDir, f.Name+".json")
	}
	return filepath.Join(f.URL, pkghttp.IndexFileName)
}

// Sync downloads the index of one remote feed. Local feeds need no sync.
func (m *Manager) Sync(ctx context.Context, name string) error {
	f, err := m.Feed(name)
	if err != nil {
		return err
	}
	if !f.IsRemote() {
		logger.Debug("skipping sync of local feed", logger.Fields{"feed": f.Name})
		return nil
	}
	if m.client == nil {
		return fmt.Errorf("no downloader configured for feed %s", f.Name)
	}
	if err := m.client.DownloadIndex(ctx, f.URL, m.IndexPath(f)); err != nil {
		return errors.Wrapf(err, "failed to sync feed %s", f.Name)
	}
	delete(m.indexes, f.Name)
	logger.Info("feed synced", logger.Fields{"feed": f.Name})
	return nil
}

// SyncAll syncs every enabled feed.
func (m *Manager) SyncAll(ctx context.Context) error {
	for _, f := range m.feeds {
		if !f.Enabled {
			continue
		}
		if err := m.Sync(ctx, f.Name); err != nil {
			return err
		}
	}
	return nil
}

// IsStale reports whether the cached index of a remote feed is missing or older than the TTL.
func (m *Manager) IsStale(f *Feed) bool {
	if !f.IsRemote() {
		return false
	}
	stat, err := os.Stat(m.IndexPath(f))
	if err != nil {
		return true
	}
	return m.cacheTTL > 0 && stat.ModTime().Add(m.cacheTTL).Before(time.Now())
}

// Index returns the parsed index of the named feed, loading it on first use.
func (m *Manager) Index(name string) (*Index, error) {
	if idx, ok := m.indexes[name]; ok {
		return idx, nil
	}
	f, err := m.Feed(name)
	if err != nil {
		return nil, err
	}
	idx, err := ParseIndexFromFile(m.IndexPath(f))
	if err != nil {
		return nil, err
	}
	m.indexes[name] = idx
	return idx, nil
}

// enabledIndexes yields the loadable indexes of enabled feeds in priority order.
// Feeds that fail to load are skipped with a warning.
func (m *Manager) enabledIndexes() []feedIndex {
	out := make([]feedIndex, 0, len(m.feeds))
	for _, f := range m.feeds {
		if !f.Enabled {
			continue
		}
		idx, err := m.Index(f.Name)
		if err != nil {
			logger.Warn("feed unavailable", logger.Fields{"feed": f.Name, "error": err.Error()})
			continue
		}
		out = append(out, feedIndex{feed: f, index: idx})
	}
	return out
}

type feedIndex struct {
	feed  *Feed
	index *Index
}

// Versions returns every distinct version of id known to the enabled feeds.
// An unknown package yields an empty list.
func (m *Manager) Versions(ctx context.Context, id string) ([]*version.Version, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var all []*version.Version
	for _, fi := range m.enabledIndexes() {
		for _, pkg := range fi.index.FindPackages(id) {
			v := pkg.GetVersion()
			if v == nil {
				logger.Warn("ignoring invalid version", logger.Fields{"feed": fi.feed.Name, "package": pkg.Key()})
				continue
			}
			all = append(all, v)
		}
	}
	return model.DistinctVersions(all), nil
}

// Find returns the descriptor of id at v from the highest-priority feed that has it.
func (m *Manager) Find(id string, v *version.Version) (*Package, *Feed, error) {
	if v == nil {
		return nil, nil, fmt.Errorf("%s: %w", id, errors.ErrInvalidVersion)
	}
	for _, fi := range m.enabledIndexes() {
		if pkg := fi.index.Find(id, v); pkg != nil {
			return pkg, fi.feed, nil
		}
	}
	return nil, nil, fmt.Errorf("%s@%s: %w", id, v.Original(), errors.ErrPackageNotFound)
}

// Latest returns the newest version of id satisfying constraint ("" accepts any).
func (m *Manager) Latest(id, constraint string) (*Package, *Feed, error) {
	var check version.Constraints
	if constraint != "" {
		c, err := version.NewConstraint(constraint)
		if err != nil {
			return nil, nil, fmt.Errorf("constraint %q on %s: %w: %w", constraint, id, errors.ErrInvalidVersion, err)
		}
		check = c
	}

	var (
		best     *Package
		bestFeed *Feed
		bestVer  *version.Version
	)
	for _, fi := range m.enabledIndexes() {
		for _, pkg := range fi.index.FindPackages(id) {
			v := pkg.GetVersion()
			if v == nil || (check != nil && !check.Check(v)) {
				continue
			}
			if bestVer == nil || v.GreaterThan(bestVer) {
				best, bestFeed, bestVer = pkg, fi.feed, v
			}
		}
	}
	if best == nil {
		return nil, nil, fmt.Errorf("%s %s: %w", id, constraint, errors.ErrPackageNotFound)
	}
	return best, bestFeed, nil
}

// Search returns the newest version of every package whose id or description
// contains term, ordered by id.
func (m *Manager) Search(term string) []*Package {
	needle := strings.ToLower(term)
	latest := make(map[string]*Package)
	for _, fi := range m.enabledIndexes() {
		for _, pkg := range fi.index.Packages {
			if needle != "" &&
				!strings.Contains(strings.ToLower(pkg.ID), needle) &&
				!strings.Contains(strings.ToLower(pkg.Description), needle) {
				continue
			}
			v := pkg.GetVersion()
			if v == nil {
				continue
			}
			key := strings.ToLower(pkg.ID)
			if cur, ok := latest[key]; !ok || v.GreaterThan(cur.GetVersion()) {
				latest[key] = pkg
			}
		}
	}

	out := make([]*Package, 0, len(latest))
	for _, pkg := range latest {
		out = append(out, pkg)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].ID) < strings.ToLower(out[j].ID)
	})
	return out
}

// Dependencies resolves the transitive dependencies of pkg, picking the newest
// version that satisfies each constraint. pkg itself is not included.
func (m *Manager) Dependencies(pkg *Package) ([]*Package, error) {
	var (
		out     []*Package
		visited = map[string]bool{strings.ToLower(pkg.ID): true}
		walk    func(p *Package) error
	)
	walk = func(p *Package) error {
		for _, dep := range p.Dependencies {
			key := strings.ToLower(dep.ID)
			if visited[key] {
				continue
			}
			visited[key] = true
			resolved, _, err := m.Latest(dep.ID, dep.Constraint)
			if err != nil {
				return errors.Wrapf(err, "dependency of %s", p.Key())
			}
			out = append(out, resolved)
			if err := walk(resolved); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(pkg); err != nil {
		return nil, err
	}
	return out, nil
}
