package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/glorpus-work/solpkg/pkg/detail"
	"github.com/spf13/cobra"
)

// NewActionsCmd creates the actions command.
func NewActionsCmd() *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "actions PACKAGE",
		Short: "List the actions available for a package",
		Long: `List the actions available for a package across the solution, or for a
single project with --project.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActions(cmd.Context(), cmd.OutOrStdout(), args[0], project)
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Evaluate a single project")

	return cmd
}

type actionsView struct {
	Package   string   `json:"package"`
	Project   string   `json:"project,omitempty"`
	Installed string   `json:"installed,omitempty"`
	Actions   []string `json:"actions"`
}

func runActions(ctx context.Context, w io.Writer, id, project string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	view := actionsView{Package: id, Actions: []string{}}
	if project == "" {
		m := detail.NewSolutionModel(s.sol, s.feeds)
		if err := m.SetPackage(ctx, id); err != nil {
			return err
		}
		for _, a := range m.Actions() {
			view.Actions = append(view.Actions, string(a))
		}
	} else {
		p, err := s.sol.Project(project)
		if err != nil {
			return err
		}
		m := detail.NewProjectModel(p, s.feeds)
		if err := m.SetPackage(ctx, id); err != nil {
			return err
		}
		view.Project = p.Name
		if v := m.InstalledVersion(); v != nil {
			view.Installed = v.Original()
		}
		for _, a := range m.Actions() {
			view.Actions = append(view.Actions, string(a))
		}
	}

	if s.jsonOutput() {
		return writeJSON(w, view)
	}
	if view.Project != "" {
		installed := view.Installed
		if installed == "" {
			installed = "not installed"
		}
		_, _ = fmt.Fprintf(w, "%s in %s: %s\n", id, view.Project, installed)
	}
	if len(view.Actions) == 0 {
		_, _ = colorWarn.Fprintln(w, "No action is available")
		return nil
	}
	for _, a := range view.Actions {
		_, _ = fmt.Fprintln(w, a)
	}
	return nil
}
