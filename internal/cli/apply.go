package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/glorpus-work/solpkg/internal/logger"
	"github.com/glorpus-work/solpkg/pkg/detail"
	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/glorpus-work/solpkg/pkg/executor"
	pkghttp "github.com/glorpus-work/solpkg/pkg/http"
	"github.com/spf13/cobra"
)

type applyOptions struct {
	detailOptions
	projects []string
	dryRun   bool
	cacheDir string
}

// NewApplyCmd creates the apply command.
func NewApplyCmd() *cobra.Command {
	var opts applyOptions

	cmd := &cobra.Command{
		Use:   "apply PACKAGE",
		Short: "Run an action against the projects it applies to",
		Long: `Run the selected action for a package. Every project the action applies to
takes part unless --projects narrows the selection.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringSliceVar(&opts.projects, "projects", nil, "Projects to run the action against (default: all that apply)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the planned steps without executing")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "Download cache directory (defaults to config)")

	return cmd
}

func runApply(ctx context.Context, w io.Writer, id string, opts applyOptions) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	m, err := s.solutionModel(ctx, id, opts.detailOptions)
	if err != nil {
		return err
	}
	if len(opts.projects) > 0 {
		if err := selectProjects(m, opts.projects); err != nil {
			return err
		}
	}
	if !m.ActionEnabled() {
		return fmt.Errorf("%s %s: %w", m.SelectedAction(), id, errors.ErrActionDisabled)
	}

	req := m.Request()
	cacheDir := opts.cacheDir
	if cacheDir == "" {
		cacheDir = s.cfg.GetCacheDir()
	}

	exec := s.newExecutor(w)
	if err := exec.Execute(ctx, req, executor.Options{CacheDir: cacheDir, DryRun: opts.dryRun}); err != nil {
		return fmt.Errorf("failed to %s %s: %w", req.Action, id, err)
	}
	if !opts.dryRun {
		logger.Success("Action completed", logger.Fields{
			"package":  id,
			"action":   string(req.Action),
			"version":  req.Version.Original(),
			"projects": strings.Join(req.Projects, ","),
		})
	}
	return nil
}

// selectProjects narrows the selection to names. Every name must be a project the
// action applies to.
func selectProjects(m *detail.SolutionModel, names []string) error {
	byName := make(map[string]*detail.Entry, len(m.AllProjects()))
	for _, e := range m.AllProjects() {
		byName[strings.ToLower(e.Project().Name)] = e
	}

	wanted := make([]*detail.Entry, 0, len(names))
	for _, name := range names {
		e, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return fmt.Errorf("%s: %w", name, errors.ErrProjectNotFound)
		}
		if !e.Enabled() {
			return fmt.Errorf("%s does not apply to %s: %w", m.SelectedAction(), e.Project().Name, errors.ErrActionDisabled)
		}
		wanted = append(wanted, e)
	}

	m.UncheckAllProjects()
	for _, e := range wanted {
		e.SetSelected(true)
	}
	return nil
}

func (s *session) newExecutor(w io.Writer) *executor.Executor {
	hooks := executor.Hooks{OnEvent: func(e executor.Event) {
		switch {
		case e.Project != "" && e.Msg != "":
			_, _ = fmt.Fprintf(w, "%s: %s %s (%s)\n", e.Phase, e.ID, e.Msg, e.Project)
		case e.Project != "":
			_, _ = fmt.Fprintf(w, "%s: %s (%s)\n", e.Phase, e.ID, e.Project)
		case e.Msg != "":
			_, _ = fmt.Fprintf(w, "%s: %s %s\n", e.Phase, e.ID, e.Msg)
		default:
			_, _ = fmt.Fprintf(w, "%s: %s\n", e.Phase, e.ID)
		}
	}}
	return executor.New(s.sol, s.feeds, pkghttp.NewClient(s.cfg.Settings.HTTPTimeout), hooks)
}
