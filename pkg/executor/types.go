//go:generate mockgen -destination=./mocks/executor.go . PackageSource,Fetcher,ScriptRunner

package executor

import (
	"context"

	"github.com/glorpus-work/solpkg/pkg/feed"
	"github.com/glorpus-work/solpkg/pkg/hooks"
	"github.com/glorpus-work/solpkg/pkg/projectsystem"
	"github.com/glorpus-work/solpkg/pkg/solution"
	"github.com/hashicorp/go-version"
)

// PackageSource is the subset of the feed manager used by the executor.
type PackageSource interface {
	Find(id string, v *version.Version) (*feed.Package, *feed.Feed, error)
	Dependencies(pkg *feed.Package) ([]*feed.Package, error)
}

// Fetcher downloads remote package archives.
type Fetcher interface {
	DownloadFile(ctx context.Context, fileURL string, filePath string) error
}

// ScriptRunner runs the scripts shipped in a package.
type ScriptRunner interface {
	Run(ctx context.Context, t hooks.ScriptType, hc *hooks.Context) error
}

// Extractor unpacks package archives.
type Extractor interface {
	Extract(ctx context.Context, archivePath, destDir string) ([]string, error)
}

// Executor applies an action request to the projects of a solution.
type Executor struct {
	Solution         *solution.Solution
	Source           PackageSource
	Fetcher          Fetcher
	Archives         Extractor
	Scripts          ScriptRunner
	NewProjectSystem func(*solution.Project) projectsystem.ProjectSystem
	Hooks            Hooks // Hooks for progress and event notifications
}

// Event represents a simple progress notification.
type Event struct {
	Phase   string // planning|downloading|extracting|installing|uninstalling|script|done
	ID      string // package key
	Project string
	Msg     string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// Options control execution.
type Options struct {
	CacheDir string
	DryRun   bool
}
