package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/glorpus-work/solpkg/internal/cli"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	solutionPath string
	verbose      bool
	noColor      bool
	outputFormat string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solpkg",
		Short: "A solution-level package manager",
		Long: `solpkg manages packages across every project of a solution:
- detail, actions: which projects an install, update, uninstall or consolidate applies to
- apply, get: run actions against projects
- sync, search, browse: work with package feeds`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().StringVarP(&solutionPath, "solution", "s", "", "solution manifest (default: from config)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (text, json)")

	// Set up CLI package variables
	cli.ConfigPath = &configPath
	cli.SolutionPath = &solutionPath
	cli.Verbose = &verbose
	cli.NoColor = &noColor
	cli.OutputFormat = &outputFormat

	cmd.AddCommand(
		cli.NewDetailCmd(),
		cli.NewActionsCmd(),
		cli.NewApplyCmd(),
		cli.NewGetCmd(),
		cli.NewBrowseCmd(),
		cli.NewSearchCmd(),
		cli.NewSyncCmd(),
		cli.NewListCmd(),
		cli.NewFeedCmd(),
		cli.NewConfigCmd(),
		cli.NewCacheCmd(),
		cli.NewPackCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
