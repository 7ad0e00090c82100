package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/mull/internal/wire"
)

// ClipCmd returns the clip command
func ClipCmd() *cobra.Command {
	var summarize bool

	cmd := &cobra.Command{
		Use:   "clip [url]",
		Short: "Clip a web page into a thought note",
		Long: `Fetch a web page, extract its readable content as markdown, and save
it as a thought. With --summarize, an AI summary is prepended (requires
OPENAI_API_KEY; the clip proceeds without a summary when unavailable).

Examples:
  mull clip https://example.com/article
  mull clip https://example.com/article --summarize`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			url := args[0]

			path, err := wire.ClipService().Clip(ctx, url, summarize)
			if err != nil {
				return fmt.Errorf("failed to clip page: %w", err)
			}
			fmt.Printf("✓ Clipped: %s\n", path)
			maybeAutoCommit(ctx, fmt.Sprintf("mull: clip %s", url))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&summarize, "summarize", "s", false, "Prepend an AI summary")

	return cmd
}
