package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/mull/internal/wire"
)

var thoughtCmd = &cobra.Command{
	Use:   "thought",
	Short: "Manage markdown thought notes",
	Long:  "Create, list, open, and search the markdown notes in the thoughts directory",
}

var thoughtNewCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a new thought note",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		title := strings.Join(args, " ")
		body, _ := cmd.Flags().GetString("body")
		open, _ := cmd.Flags().GetBool("open")

		path, err := wire.ThoughtService().New(ctx, title, body)
		if err != nil {
			return fmt.Errorf("failed to create thought: %w", err)
		}
		fmt.Printf("✓ Created thought: %s\n", path)
		maybeAutoCommit(ctx, fmt.Sprintf("mull: new thought %q", title))

		if open {
			return openInEditor(path)
		}
		return nil
	},
}

var thoughtListCmd = &cobra.Command{
	Use:   "list",
	Short: "List thoughts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		summaries, err := wire.ThoughtService().List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list thoughts: %w", err)
		}
		if len(summaries) == 0 {
			fmt.Println("No thoughts found.")
			fmt.Println()
			fmt.Println("Capture your first thought:")
			fmt.Println("  mull thought new \"Shower idea\"")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "MODIFIED\tTITLE\tPATH")
		fmt.Fprintln(w, "--------\t-----\t----")
		for _, s := range summaries {
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.Modified.Format("2006-01-02"), s.Title, s.Path)
		}
		w.Flush()
		return nil
	},
}

var thoughtOpenCmd = &cobra.Command{
	Use:   "open [path]",
	Short: "Open a thought in the editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		// Resolve through the store so relative names work.
		thought, err := wire.ThoughtService().Read(ctx, args[0])
		if err != nil {
			return fmt.Errorf("thought not found: %w", err)
		}
		return openInEditor(thought.Path)
	},
}

var thoughtSearchCmd = &cobra.Command{
	Use:     "search-notes [query]",
	Aliases: []string{"search"},
	Short:   "Full-text search over thoughts",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		query := strings.Join(args, " ")

		hits, err := wire.ThoughtService().Search(ctx, query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if len(hits) == 0 {
			fmt.Printf("No thoughts match %q.\n", query)
			return nil
		}

		fmt.Printf("Found %d thought(s):\n\n", len(hits))
		for _, hit := range hits {
			fmt.Printf("%s\n", hit.Title)
			if hit.Snippet != "" {
				fmt.Printf("   %s\n", hit.Snippet)
			}
			fmt.Printf("   %s\n\n", hit.Path)
		}
		return nil
	},
}

// openInEditor blocks until the editor exits.
func openInEditor(path string) error {
	editor := wire.Config().EditorCommand()
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", editor, err)
	}
	return nil
}

func init() {
	thoughtNewCmd.Flags().StringP("body", "b", "", "Initial body text")
	thoughtNewCmd.Flags().Bool("open", false, "Open the new thought in the editor")

	thoughtCmd.AddCommand(thoughtNewCmd)
	thoughtCmd.AddCommand(thoughtListCmd)
	thoughtCmd.AddCommand(thoughtOpenCmd)
	thoughtCmd.AddCommand(thoughtSearchCmd)
}

// ThoughtCmd returns the thought command
func ThoughtCmd() *cobra.Command {
	return thoughtCmd
}
