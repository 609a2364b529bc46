package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/glorpus-work/solpkg/pkg/feed"
	"github.com/spf13/cobra"
)

// NewBrowseCmd creates the browse command.
func NewBrowseCmd() *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the packages of every enabled feed",
		Long: `List the packages of every enabled feed. With --project, packages already
installed in that project are marked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd.OutOrStdout(), project)
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Mark packages installed in this project")

	return cmd
}

func runBrowse(w io.Writer, projectName string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	var project feed.InstalledLookup
	if projectName != "" {
		p, err := s.sol.Project(projectName)
		if err != nil {
			return err
		}
		project = p
	}

	provider := feed.NewOnlineProvider(s.feeds)
	nodes := provider.RootNodes()
	if s.jsonOutput() {
		return writeJSON(w, newNodeViews(nodes))
	}
	if len(nodes) == 0 {
		_, _ = fmt.Fprintln(w, "No feeds configured")
		return nil
	}

	for _, node := range nodes {
		_, _ = colorHeader.Fprintf(w, "\n%s (%s)\n", node.Name, node.Feed.URL)
		if node.IsEmpty() {
			if node.Err != nil {
				_, _ = colorWarn.Fprintln(w, "  feed unavailable, run 'solpkg sync'")
			} else {
				_, _ = fmt.Fprintln(w, "  no packages")
			}
			continue
		}
		tabWriter := tabwriter.NewWriter(w, 0, 0, TabWidth, ' ', 0)
		for _, pkg := range node.Packages {
			marker := "  "
			if project != nil && !provider.CanExecute(pkg, project) {
				marker = colorSelected.Sprint("✓ ")
			}
			_, _ = fmt.Fprintf(tabWriter, "%s%s\t%s\t%s\n", marker, pkg.ID, pkg.Version, truncate(pkg.Description, MaxDescriptionLength))
		}
		_ = tabWriter.Flush()
	}
	return nil
}

type nodeView struct {
	Name     string          `json:"name"`
	URL      string          `json:"url"`
	Error    string          `json:"error,omitempty"`
	Packages []*feed.Package `json:"packages"`
}

func newNodeViews(nodes []*feed.Node) []nodeView {
	views := make([]nodeView, 0, len(nodes))
	for _, n := range nodes {
		v := nodeView{Name: n.Name, URL: n.Feed.URL, Packages: n.Packages}
		if n.Err != nil {
			v.Error = n.Err.Error()
		}
		if v.Packages == nil {
			v.Packages = []*feed.Package{}
		}
		views = append(views, v)
	}
	return views
}
