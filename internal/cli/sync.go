package cli

import (
	"fmt"

	"github.com/glorpus-work/solpkg/internal/logger"
	"github.com/spf13/cobra"
)

// NewSyncCmd creates the sync command.
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [FEED...]",
		Short: "Synchronize feed indexes",
		Long: `Synchronize feed indexes by downloading the latest package lists from the
configured remote feeds. Local feeds are read in place and need no sync.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			feeds := loadFeedManager(cfg)
			ctx := cmd.Context()

			if len(args) == 0 {
				if err := feeds.SyncAll(ctx); err != nil {
					return fmt.Errorf("failed to sync feeds: %w", err)
				}
				logger.Success("Feed indexes synchronized successfully")
				return nil
			}
			for _, name := range args {
				if err := feeds.Sync(ctx, name); err != nil {
					return fmt.Errorf("failed to sync feed %s: %w", name, err)
				}
				logger.Success("Feed index synchronized", logger.Fields{"feed": name})
			}
			return nil
		},
	}

	return cmd
}
