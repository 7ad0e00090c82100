package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/mull/internal/tui"
	"github.com/example/mull/internal/wire"
)

// UICmd returns the ui command
func UICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive matrix view",
		Long: `Open the todo matrix as an interactive 2x2 quadrant grid.

Keys: hjkl/arrows move, space toggles, a adds to the active quadrant,
d deletes (with confirmation), q quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tui.Run(wire.TodoService()); err != nil {
				return fmt.Errorf("ui failed: %w", err)
			}
			return nil
		},
	}
}
