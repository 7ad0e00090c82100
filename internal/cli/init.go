package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/mull/internal/config"
	"github.com/example/mull/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the thoughts directory",
		Long: `Initialize the thoughts directory with the .mull state folder:
config.json, an empty todo matrix, and the full-text index.

The directory is $MULL_THOUGHTS_DIR, defaulting to ~/thoughts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			dir := wire.ThoughtsDir()

			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create thoughts directory: %w", err)
			}
			fmt.Printf("Initializing mull in %s\n", dir)

			if err := config.Save(dir, wire.Config()); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Println("✓ Config written to .mull/config.json")

			// Loading persists the empty default matrix when missing.
			if _, err := wire.TodoService().Stats(ctx); err != nil {
				return fmt.Errorf("failed to initialize todo matrix: %w", err)
			}
			fmt.Println("✓ Todo matrix ready at .mull/todos.json")

			if wire.Index() != nil {
				if n, err := wire.ThoughtService().Reindex(ctx); err == nil {
					fmt.Printf("✓ Indexed %d thought(s)\n", n)
				}
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  mull todo add \"My first todo\" -p high -u urgent")
			fmt.Println("  mull thought new \"My first thought\"")
			fmt.Println("  mull ui")
			return nil
		},
	}
}
