package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/glorpus-work/solpkg/internal/logger"
	"github.com/glorpus-work/solpkg/pkg/archive"
	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/spf13/cobra"
)

// NewPackCmd creates the pack command.
func NewPackCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pack SOURCE_DIR",
		Short: "Create a package archive from a directory",
		Long: `Create a .tar.gz package archive from a directory laid out as
content/ (files added to projects), lib/ (references) and tools/ (scripts).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd.Context(), cmd.OutOrStdout(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "file", "f", "", "Archive to create (default: <dir>.tar.gz)")

	return cmd
}

func runPack(ctx context.Context, w io.Writer, sourceDir, output string) error {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory: %w", sourceDir, errors.ErrInvalidPath)
	}
	if output == "" {
		output = filepath.Clean(sourceDir) + ".tar.gz"
	}

	if err := archive.NewManager().Create(ctx, sourceDir, output); err != nil {
		return fmt.Errorf("failed to create package archive: %w", err)
	}

	logger.Debug("package archive created", logger.Fields{"source": sourceDir, "archive": output})
	_, _ = fmt.Fprintf(w, "Created %s\n", output)
	return nil
}
