package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/glorpus-work/solpkg/pkg/model"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var (
		nameFilter string
		project    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed packages",
		Long: `List the packages installed in every project of the solution and at
solution level. Use --name to filter packages by id.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.OutOrStdout(), nameFilter, project)
		},
	}

	cmd.Flags().StringVar(&nameFilter, "name", "", "Filter packages by id (partial match)")
	cmd.Flags().StringVarP(&project, "project", "p", "", "Only list one project")

	return cmd
}

type installedView struct {
	Project string `json:"project"`
	ID      string `json:"id"`
	Version string `json:"version"`
}

// solutionScope labels packages installed at solution level.
const solutionScope = "(solution)"

func runList(w io.Writer, nameFilter, project string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	var rows []installedView
	add := func(scope string, pkgs []*model.InstalledPackage) {
		for _, pkg := range pkgs {
			rows = append(rows, installedView{Project: scope, ID: pkg.ID, Version: pkg.Version})
		}
	}
	if project == "" {
		add(solutionScope, s.sol.InstalledPackages().Filtered(nameFilter))
		for _, p := range s.sol.Projects() {
			add(p.Name, p.Installed.Filtered(nameFilter))
		}
	} else {
		p, err := s.sol.Project(project)
		if err != nil {
			return err
		}
		add(p.Name, p.Installed.Filtered(nameFilter))
	}

	if s.jsonOutput() {
		if rows == nil {
			rows = []installedView{}
		}
		return writeJSON(w, rows)
	}
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "No packages installed")
		return nil
	}

	tabWriter := tabwriter.NewWriter(w, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "PROJECT\tPACKAGE\tVERSION")
	for _, r := range rows {
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\t%s\n", r.Project, r.ID, r.Version)
	}
	_ = tabWriter.Flush()
	return nil
}
