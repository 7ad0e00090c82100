package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/mull/internal/wire"
)

// IndexCmd returns the index command
func IndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Rebuild the full-text search index",
		Long: `Rebuild the full-text index over all thoughts from scratch.

The index is derived state under .mull/index.db; it is safe to delete
and rebuild at any time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			n, err := wire.ThoughtService().Reindex(ctx)
			if err != nil {
				return fmt.Errorf("failed to rebuild index: %w", err)
			}
			fmt.Printf("✓ Indexed %d thought(s)\n", n)
			return nil
		},
	}
}
