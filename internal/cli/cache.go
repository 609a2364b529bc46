package cli

import (
	"fmt"

	"github.com/glorpus-work/solpkg/pkg/cache"
	"github.com/spf13/cobra"
)

// NewCacheCmd creates the cache command with subcommands.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the download cache",
		Long:  "Inspect and clean synced feed indexes and downloaded package archives",
	}

	cmd.AddCommand(
		newCacheCleanCmd(),
		newCacheInfoCmd(),
		newCacheDirCmd(),
	)

	return cmd
}

func newCacheCleanCmd() *cobra.Command {
	var opts cache.CleanOptions

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the cache",
		Long:  "Remove cached feed indexes and package archives. Without flags both are removed.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, err := loadCacheManager()
			if err != nil {
				return err
			}
			result, err := mgr.Clean(opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Feeds, "feeds", false, "Clean only feed indexes")
	cmd.Flags().BoolVar(&opts.Packages, "packages", false, "Clean only package archives")

	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, err := loadCacheManager()
			if err != nil {
				return err
			}
			info, err := mgr.Info()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), `Cache Information:
  Directory:  %s
  Total Size: %s
  Feeds:      %s (%d files)
  Packages:   %s (%d files)
`,
				info.Directory,
				cache.FormatBytes(info.TotalSize),
				cache.FormatBytes(info.FeedSize), info.FeedFiles,
				cache.FormatBytes(info.PackageSize), info.PackageFiles,
			)
			return nil
		},
	}
}

func newCacheDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Show cache directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, err := loadCacheManager()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), mgr.Directory())
			return nil
		},
	}
}

func loadCacheManager() (*cache.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return cache.NewManager(cfg.GetCacheDir())
}
