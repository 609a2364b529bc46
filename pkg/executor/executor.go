// Package executor runs install, update, uninstall and consolidate requests
// against the projects of a solution.
package executor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/glorpus-work/solpkg/internal/logger"
	"github.com/glorpus-work/solpkg/pkg/archive"
	"github.com/glorpus-work/solpkg/pkg/cache"
	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/glorpus-work/solpkg/pkg/feed"
	"github.com/glorpus-work/solpkg/pkg/hooks"
	"github.com/glorpus-work/solpkg/pkg/model"
	"github.com/glorpus-work/solpkg/pkg/projectsystem"
	"github.com/glorpus-work/solpkg/pkg/solution"
)

const (
	contentDir = "content/"
	libDir     = "lib/"
)

// New constructs an Executor with the default archive manager, Tengo script
// runner and project-system adapters. Hooks can be empty.
func New(sol *solution.Solution, source PackageSource, fetcher Fetcher, h Hooks) *Executor {
	return &Executor{
		Solution:         sol,
		Source:           source,
		Fetcher:          fetcher,
		Archives:         archive.NewManager(),
		Scripts:          hooks.NewTengoRunner(),
		NewProjectSystem: projectsystem.New,
		Hooks:            h,
	}
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// PackagesDir is the solution folder packages are unpacked into.
func (e *Executor) PackagesDir() string {
	return filepath.Join(e.Solution.Dir, projectsystem.PackagesDirName)
}

func (e *Executor) packageDir(id, v string) string {
	return filepath.Join(e.PackagesDir(), id+"."+v)
}

// Execute applies req. Projects the action does not apply to are skipped with a warning.
func (e *Executor) Execute(ctx context.Context, req model.ActionRequest, opts Options) error {
	if e.Solution == nil {
		return errors.Wrap(errors.ErrNotConfigured, "no solution loaded")
	}
	if !slices.Contains(model.AllActions, req.Action) {
		return fmt.Errorf("%q: %w", req.Action, errors.ErrUnknownAction)
	}
	if req.PackageID == "" {
		return errors.Wrap(errors.ErrPackageNotFound, "no package selected")
	}
	if req.Version == nil {
		return errors.Wrapf(errors.ErrInvalidVersion, "no version selected for %s", req.PackageID)
	}
	if len(req.Projects) == 0 {
		return errors.ErrActionDisabled
	}

	projects := make([]*solution.Project, 0, len(req.Projects))
	for _, name := range req.Projects {
		p, err := e.Solution.Project(name)
		if err != nil {
			return err
		}
		projects = append(projects, p)
	}

	key := req.PackageID + "@" + req.Version.Original()
	for _, p := range projects {
		emit(e.Hooks, Event{Phase: "planning", ID: key, Project: p.Name, Msg: string(req.Action)})
	}
	if opts.DryRun {
		emit(e.Hooks, Event{Phase: "done", ID: key, Msg: "dry-run"})
		return nil
	}

	var err error
	if req.Action == model.ActionUninstall {
		err = e.uninstall(ctx, req, projects)
	} else {
		err = e.install(ctx, req, projects, opts)
	}
	if err != nil {
		emit(e.Hooks, Event{Phase: "error", ID: key, Msg: err.Error()})
		return err
	}
	emit(e.Hooks, Event{Phase: "done", ID: key})
	return nil
}

// install covers Install, Update and Consolidate: every project ends up with
// exactly the requested version.
func (e *Executor) install(ctx context.Context, req model.ActionRequest, projects []*solution.Project, opts Options) error {
	if e.Source == nil {
		return errors.Wrap(errors.ErrNotConfigured, "no package source")
	}
	pkg, source, err := e.Source.Find(req.PackageID, req.Version)
	if err != nil {
		return err
	}

	var deps []*feed.Package
	if req.Action == model.ActionInstall {
		if deps, err = e.Source.Dependencies(pkg); err != nil {
			return err
		}
	}

	firstUse := !e.usedAnywhere(pkg.ID)
	pkgDir, files, err := e.prepare(ctx, pkg, source, opts)
	if err != nil {
		return err
	}
	if firstUse {
		if err := e.runScript(ctx, hooks.Init, pkg.ID, pkg.Version, pkgDir, nil, string(req.Action)); err != nil {
			return err
		}
	}

	var replaced []*model.InstalledPackage
	for _, p := range projects {
		existing := p.Installed.Find(pkg.ID)
		if !applicable(req.Action, existing, pkg) {
			logger.Warn("action does not apply to project", logger.Fields{
				"project": p.Name, "package": pkg.Key(), "action": string(req.Action),
			})
			continue
		}
		ps := e.NewProjectSystem(p)

		for _, dep := range deps {
			if p.Installed.IsInstalled(dep.ID) {
				continue
			}
			if err := e.installDependency(ctx, p, ps, dep, opts); err != nil {
				return err
			}
		}

		if existing != nil {
			if err := e.removeFrom(ctx, p, ps, existing, string(req.Action)); err != nil {
				return err
			}
			replaced = append(replaced, existing)
		}
		if err := e.addTo(ctx, p, ps, pkg, source, pkgDir, files, string(req.Action)); err != nil {
			return err
		}
	}

	for _, old := range replaced {
		e.cleanPackageDir(old)
	}
	return nil
}

func (e *Executor) installDependency(ctx context.Context, p *solution.Project, ps projectsystem.ProjectSystem, dep *feed.Package, opts Options) error {
	pkg, source, err := e.Source.Find(dep.ID, dep.GetVersion())
	if err != nil {
		return err
	}
	pkgDir, files, err := e.prepare(ctx, pkg, source, opts)
	if err != nil {
		return err
	}
	return e.addTo(ctx, p, ps, pkg, source, pkgDir, files, string(model.ActionInstall))
}

func (e *Executor) uninstall(ctx context.Context, req model.ActionRequest, projects []*solution.Project) error {
	var removed []*model.InstalledPackage
	for _, p := range projects {
		existing := p.Installed.Find(req.PackageID)
		if existing == nil || !model.SameVersion(existing.GetVersion(), req.Version) {
			logger.Warn("package version is not installed in project", logger.Fields{
				"project": p.Name, "package": req.PackageID, "version": req.Version.Original(),
			})
			continue
		}
		if err := e.removeFrom(ctx, p, e.NewProjectSystem(p), existing, string(model.ActionUninstall)); err != nil {
			return err
		}
		removed = append(removed, existing)
	}
	for _, old := range removed {
		e.cleanPackageDir(old)
	}
	return nil
}

func applicable(a model.Action, existing *model.InstalledPackage, pkg *feed.Package) bool {
	switch a {
	case model.ActionInstall:
		return existing == nil
	default:
		return existing != nil && !model.SameVersion(existing.GetVersion(), pkg.GetVersion())
	}
}

// prepare makes the package available unpacked in the solution packages folder
// and returns its directory and file list.
func (e *Executor) prepare(ctx context.Context, pkg *feed.Package, source *feed.Feed, opts Options) (string, []string, error) {
	archivePath, err := e.fetch(ctx, pkg, source, opts)
	if err != nil {
		return "", nil, err
	}
	if err := verifyChecksum(archivePath, pkg.Checksum); err != nil {
		return "", nil, err
	}

	pkgDir := e.packageDir(pkg.ID, pkg.Version)
	emit(e.Hooks, Event{Phase: "extracting", ID: pkg.Key(), Msg: pkgDir})
	if err := os.RemoveAll(pkgDir); err != nil {
		return "", nil, fmt.Errorf("failed to clear %s: %w", pkgDir, err)
	}
	files, err := e.Archives.Extract(ctx, archivePath, pkgDir)
	if err != nil {
		return "", nil, errors.Wrapf(err, "failed to extract %s", pkg.Key())
	}
	return pkgDir, files, nil
}

// fetch returns a local path of the package archive, downloading remote
// archives into the cache.
func (e *Executor) fetch(ctx context.Context, pkg *feed.Package, source *feed.Feed, opts Options) (string, error) {
	location, err := source.ResolveURL(pkg.URL)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(location)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return location, nil
	}

	if e.Fetcher == nil {
		return "", errors.Wrap(errors.ErrNotConfigured, "no downloader for remote packages")
	}
	if !filepath.IsAbs(opts.CacheDir) {
		return "", errors.Wrapf(errors.ErrInvalidPath, "cache directory %q must be absolute", opts.CacheDir)
	}
	target := filepath.Join(opts.CacheDir, cache.PackagesDir, strings.ToLower(pkg.ID)+"."+pkg.Version+"-"+path.Base(u.Path))
	if _, err := os.Stat(target); err == nil && verifyChecksum(target, pkg.Checksum) == nil {
		logger.Debug("using cached package", logger.Fields{"package": pkg.Key(), "path": target})
		return target, nil
	}

	emit(e.Hooks, Event{Phase: "downloading", ID: pkg.Key(), Msg: location})
	if err := e.Fetcher.DownloadFile(ctx, location, target); err != nil {
		return "", err
	}
	return target, nil
}

func verifyChecksum(archivePath, want string) error {
	if want == "" {
		return nil
	}
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", archivePath, err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("failed to hash %s: %w", archivePath, err)
	}
	if got := hex.EncodeToString(h.Sum(nil)); !strings.EqualFold(got, want) {
		return errors.Wrapf(errors.ErrChecksumMismatch, "%s: expected %s, got %s", archivePath, want, got)
	}
	return nil
}

// addTo copies content files into the project, references lib assemblies, runs
// the install script and records the package.
func (e *Executor) addTo(ctx context.Context, p *solution.Project, ps projectsystem.ProjectSystem, pkg *feed.Package, source *feed.Feed, pkgDir string, files []string, operation string) error {
	emit(e.Hooks, Event{Phase: "installing", ID: pkg.Key(), Project: p.Name})
	record := &model.InstalledPackage{ID: pkg.ID, Version: pkg.Version, Source: source.Name}

	for _, name := range files {
		switch {
		case strings.HasPrefix(name, contentDir):
			rel := strings.TrimPrefix(name, contentDir)
			if !ps.IsSupportedFile(rel) {
				logger.Debug("skipping unsupported file", logger.Fields{"project": p.Name, "file": rel})
				continue
			}
			if err := addFile(ps, rel, filepath.Join(pkgDir, filepath.FromSlash(name))); err != nil {
				return errors.Wrapf(err, "failed to add %s to %s", rel, p.Name)
			}
			record.Files = append(record.Files, rel)
		case strings.HasPrefix(name, libDir):
			refName := strings.TrimSuffix(path.Base(name), path.Ext(name))
			if ps.ReferenceExists(refName) {
				continue
			}
			refPath, err := filepath.Rel(ps.Root(), filepath.Join(pkgDir, filepath.FromSlash(name)))
			if err != nil {
				return fmt.Errorf("failed to compute reference path for %s: %w", name, err)
			}
			if err := ps.AddReference(refPath); err != nil {
				return errors.Wrapf(err, "failed to reference %s in %s", refName, p.Name)
			}
			record.References = append(record.References, refName)
		}
	}

	if err := e.runScript(ctx, hooks.Install, pkg.ID, pkg.Version, pkgDir, ps, operation); err != nil {
		return err
	}

	p.Installed.Add(record)
	if err := p.Installed.Save(); err != nil {
		return errors.Wrapf(err, "failed to record %s in %s", pkg.Key(), p.Name)
	}
	logger.Info("package installed", logger.Fields{"project": p.Name, "package": pkg.Key()})
	return nil
}

func addFile(ps projectsystem.ProjectSystem, rel, src string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return ps.AddFile(rel, f)
}

// removeFrom runs the uninstall script, then removes what the record says the
// package added and drops the record.
func (e *Executor) removeFrom(ctx context.Context, p *solution.Project, ps projectsystem.ProjectSystem, record *model.InstalledPackage, operation string) error {
	emit(e.Hooks, Event{Phase: "uninstalling", ID: record.Key(), Project: p.Name})

	pkgDir := e.packageDir(record.ID, record.Version)
	if err := e.runScript(ctx, hooks.Uninstall, record.ID, record.Version, pkgDir, ps, operation); err != nil {
		return err
	}
	for _, rel := range record.Files {
		if err := ps.DeleteFile(rel); err != nil {
			return errors.Wrapf(err, "failed to remove %s from %s", rel, p.Name)
		}
	}
	for _, ref := range record.References {
		if err := ps.RemoveReference(ref); err != nil {
			return errors.Wrapf(err, "failed to remove reference %s from %s", ref, p.Name)
		}
	}

	p.Installed.Remove(record.ID)
	if err := p.Installed.Save(); err != nil {
		return errors.Wrapf(err, "failed to update packages of %s", p.Name)
	}
	logger.Info("package removed", logger.Fields{"project": p.Name, "package": record.Key()})
	return nil
}

func (e *Executor) runScript(ctx context.Context, t hooks.ScriptType, id, v, pkgDir string, ps projectsystem.ProjectSystem, operation string) error {
	if e.Scripts == nil {
		return nil
	}
	hc := &hooks.Context{
		PackageID:      id,
		PackageVersion: v,
		Operation:      operation,
		PackageDir:     pkgDir,
		Properties:     map[string]string{},
	}
	if ps != nil {
		hc.ProjectName = ps.Name()
		hc.ProjectDir = ps.Root()
		if ns, err := ps.PropertyValue("RootNamespace"); err == nil {
			hc.Properties["RootNamespace"] = ns
		}
	}
	emit(e.Hooks, Event{Phase: "script", ID: id + "@" + v, Project: hc.ProjectName, Msg: string(t)})
	if err := e.Scripts.Run(ctx, t, hc); err != nil {
		return errors.Wrapf(err, "%s script of %s@%s", t, id, v)
	}
	return nil
}

// usedAnywhere reports whether any project or the solution has id installed.
func (e *Executor) usedAnywhere(id string) bool {
	if e.Solution.InstalledPackages().IsInstalled(id) {
		return true
	}
	for _, p := range e.Solution.Projects() {
		if p.Installed.IsInstalled(id) {
			return true
		}
	}
	return false
}

// cleanPackageDir removes an unpacked package nobody uses any longer.
func (e *Executor) cleanPackageDir(record *model.InstalledPackage) {
	if sln := e.Solution.InstalledPackages().Find(record.ID); sln != nil && model.SameVersion(sln.GetVersion(), record.GetVersion()) {
		return
	}
	for _, p := range e.Solution.Projects() {
		if other := p.Installed.Find(record.ID); other != nil && model.SameVersion(other.GetVersion(), record.GetVersion()) {
			return
		}
	}
	dir := e.packageDir(record.ID, record.Version)
	if err := os.RemoveAll(dir); err != nil {
		logger.Warn("failed to remove unused package", logger.Fields{"path": dir, "error": err.Error()})
	}
}

// ProjectInstaller installs packages into one project. It lets the online
// provider drive the executor.
type ProjectInstaller struct {
	Executor *Executor
	Project  string
	Options  Options
}

// Install installs pkg into the project.
func (i *ProjectInstaller) Install(ctx context.Context, pkg *feed.Package) error {
	v := pkg.GetVersion()
	if v == nil {
		return errors.Wrapf(errors.ErrInvalidVersion, "%s", pkg.Key())
	}
	return i.Executor.Execute(ctx, model.ActionRequest{
		PackageID: pkg.ID,
		Action:    model.ActionInstall,
		Version:   v,
		Projects:  []string{i.Project},
	}, i.Options)
}
