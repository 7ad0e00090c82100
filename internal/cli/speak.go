package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/mull/internal/wire"
)

// SpeakCmd returns the speak command
func SpeakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "speak [file|todo-id]",
		Short: "Read a thought or todo aloud",
		Long: `Read a thought file or a todo aloud through the system TTS engine
(say on macOS, espeak-ng elsewhere). Markdown syntax is stripped first.

Arguments ending in .md or containing a path separator are treated as
thought files; anything else is treated as a todo id.

Examples:
  mull speak 2026-08-20-shower-idea.md
  mull speak A1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			target := args[0]

			if strings.HasSuffix(target, ".md") || strings.ContainsAny(target, "/\\") {
				if err := wire.SpeakService().SpeakThought(ctx, target); err != nil {
					return fmt.Errorf("failed to speak thought: %w", err)
				}
				return nil
			}
			if err := wire.SpeakService().SpeakTodo(ctx, target); err != nil {
				return fmt.Errorf("failed to speak todo: %w", err)
			}
			return nil
		},
	}
}
