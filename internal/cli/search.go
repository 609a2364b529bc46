package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [TERM]",
		Short: "Search for packages",
		Long: `Search the enabled feeds for packages whose id or description contains
TERM. The newest version of every match is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) > 0 {
				term = args[0]
			}
			return runSearch(cmd.OutOrStdout(), term)
		},
	}

	return cmd
}

func runSearch(w io.Writer, term string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	results := loadFeedManager(cfg).Search(term)
	if cfg.Settings.OutputFormat == formatJSON {
		return writeJSON(w, results)
	}
	if len(results) == 0 {
		_, _ = fmt.Fprintf(w, "No packages found matching '%s'\n", term)
		return nil
	}

	tabWriter := tabwriter.NewWriter(w, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "PACKAGE\tVERSION\tDESCRIPTION")
	for _, pkg := range results {
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\t%s\n", pkg.ID, pkg.Version, truncate(pkg.Description, MaxDescriptionLength))
	}
	_ = tabWriter.Flush()

	_, _ = fmt.Fprintf(w, "\nFound %d package(s) matching '%s'\n", len(results), term)
	return nil
}
