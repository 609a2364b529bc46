package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/glorpus-work/solpkg/internal/logger"
	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/glorpus-work/solpkg/pkg/executor"
	"github.com/glorpus-work/solpkg/pkg/feed"
	"github.com/glorpus-work/solpkg/pkg/model"
	"github.com/spf13/cobra"
)

// NewGetCmd creates the get command.
func NewGetCmd() *cobra.Command {
	var (
		project        string
		ver            string
		acceptLicenses bool
		dryRun         bool
	)

	cmd := &cobra.Command{
		Use:   "get PACKAGE",
		Short: "Install a package from the online feeds into one project",
		Long: `Install a package and its dependencies into one project. Packages that
require license acceptance are listed and installed only with --accept-licenses.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.Context(), cmd.OutOrStdout(), args[0], project, ver, acceptLicenses, dryRun)
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Target project")
	cmd.Flags().StringVar(&ver, "version", "", "Version to install (default: latest)")
	cmd.Flags().BoolVar(&acceptLicenses, "accept-licenses", false, "Accept the licenses of the package and its dependencies")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the planned steps without executing")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func runGet(ctx context.Context, w io.Writer, id, projectName, ver string, acceptLicenses, dryRun bool) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	project, err := s.sol.Project(projectName)
	if err != nil {
		return err
	}

	var pkg *feed.Package
	if ver == "" {
		pkg, _, err = s.feeds.Latest(id, "")
	} else {
		v, perr := model.ParseVersion(ver)
		if perr != nil {
			return perr
		}
		pkg, _, err = s.feeds.Find(id, v)
	}
	if err != nil {
		return err
	}

	provider := feed.NewOnlineProvider(s.feeds)
	if !provider.CanExecute(pkg, project) {
		logger.Info("Package is already installed", logger.Fields{"package": pkg.Key(), "project": project.Name})
		return nil
	}

	accept := func(licensed []*feed.Package) bool {
		_, _ = colorHeader.Fprintln(w, "The following packages require license acceptance:")
		for _, p := range licensed {
			_, _ = fmt.Fprintf(w, "  %s %s\n", p.Key(), p.LicenseURL)
		}
		return acceptLicenses
	}
	installer := &executor.ProjectInstaller{
		Executor: s.newExecutor(w),
		Project:  project.Name,
		Options:  executor.Options{CacheDir: s.cfg.GetCacheDir(), DryRun: dryRun},
	}

	ok, err := provider.Execute(ctx, pkg, project, accept, installer)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s (use --accept-licenses): %w", pkg.Key(), errors.ErrLicenseDeclined)
	}
	return nil
}
