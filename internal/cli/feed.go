package cli

import (
	"fmt"
	"io"

	"github.com/glorpus-work/solpkg/internal/logger"
	"github.com/glorpus-work/solpkg/pkg/config"
	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/spf13/cobra"
)

// NewFeedCmd creates the feed command with subcommands.
func NewFeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Manage package feeds",
		Long:  "Add, remove, enable and disable the package feeds in the configuration",
	}

	cmd.AddCommand(
		newFeedListCmd(),
		newFeedAddCmd(),
		newFeedRemoveCmd(),
		newFeedToggleCmd("enable", true),
		newFeedToggleCmd("disable", false),
	)

	return cmd
}

func newFeedListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured feeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			printFeeds(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

func newFeedAddCmd() *cobra.Command {
	var priority uint

	cmd := &cobra.Command{
		Use:   "add NAME URL",
		Short: "Add a feed",
		Long:  "Add a feed. URL is an http(s) address or a local directory holding index.json.",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return updateFeeds(func(cfg *config.Config) error {
				return cfg.AddFeed(args[0], args[1], priority)
			}, "Feed added", args[0])
		},
	}

	cmd.Flags().UintVar(&priority, "priority", 0, "Feed priority (higher wins when versions collide)")

	return cmd
}

func newFeedRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return updateFeeds(func(cfg *config.Config) error {
				if !cfg.RemoveFeed(args[0]) {
					return fmt.Errorf("%s: %w", args[0], errors.ErrFeedNotFound)
				}
				return nil
			}, "Feed removed", args[0])
		},
	}
}

func newFeedToggleCmd(verb string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " NAME",
		Short: fmt.Sprintf("%s a feed", verb),
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return updateFeeds(func(cfg *config.Config) error {
				if !cfg.EnableFeed(args[0], enabled) {
					return fmt.Errorf("%s: %w", args[0], errors.ErrFeedNotFound)
				}
				return nil
			}, "Feed updated", args[0])
		},
	}
}

// updateFeeds loads the configuration, applies change and saves it back.
func updateFeeds(change func(*config.Config) error, msg, name string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := change(cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.SaveConfig(getConfigPath()); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	logger.Success(msg, logger.Fields{"feed": name})
	return nil
}

func printFeeds(w io.Writer, cfg *config.Config) {
	_, _ = fmt.Fprintf(w, "\nFeeds (%d):\n", len(cfg.Feeds))
	for _, f := range cfg.Feeds {
		status := colorSelected.Sprint("enabled")
		if !f.IsEnabled() {
			status = colorDisabled.Sprint("disabled")
		}
		_, _ = fmt.Fprintf(w, "  %s: %s (priority %d, %s)\n", f.Name, f.URL, f.Priority, status)
	}
}
