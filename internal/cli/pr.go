package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/mull/internal/wire"
)

// PRCmd returns the pr command
func PRCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pr [url]",
		Short: "Archive a Bitbucket pull request as a thought note",
		Long: `Fetch a Bitbucket pull request (Cloud or Server) and archive its
description and review comments as a markdown thought.

Private repositories need MULL_BITBUCKET_TOKEN set.

Examples:
  mull pr https://bitbucket.org/team/repo/pull-requests/42
  mull pr https://bb.corp.example/projects/OPS/repos/infra/pull-requests/7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			url := args[0]

			path, err := wire.PullRequestService().Archive(ctx, url)
			if err != nil {
				return fmt.Errorf("failed to archive pull request: %w", err)
			}
			fmt.Printf("✓ Archived: %s\n", path)
			maybeAutoCommit(ctx, fmt.Sprintf("mull: archive PR %s", url))
			return nil
		},
	}
}
