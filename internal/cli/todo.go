package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	todocore "github.com/example/mull/internal/core/todo"
	"github.com/example/mull/internal/models"
	"github.com/example/mull/internal/ports/primary"
	"github.com/example/mull/internal/wire"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage the Eisenhower todo matrix",
	Long:  "Create, list, edit, complete, and delete todos organized into the four Eisenhower quadrants",
}

var todoAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new todo",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		title := strings.Join(args, " ")
		description, _ := cmd.Flags().GetString("description")
		priorityFlag, _ := cmd.Flags().GetString("priority")
		urgencyFlag, _ := cmd.Flags().GetString("urgency")
		tags, _ := cmd.Flags().GetStringSlice("tag")
		links, _ := cmd.Flags().GetStringSlice("link")

		priority, err := parsePriority(priorityFlag)
		if err != nil {
			return err
		}
		urgency, err := parseUrgency(urgencyFlag)
		if err != nil {
			return err
		}

		item, err := wire.TodoService().Create(ctx, primary.CreateTodoRequest{
			Title:       title,
			Description: description,
			Priority:    priority,
			Urgency:     urgency,
			Tags:        tags,
			Links:       links,
		})
		if err != nil {
			return fmt.Errorf("failed to create todo: %w", err)
		}

		entry, err := wire.TodoService().Get(ctx, item.ID)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Created todo %s: %s\n", entry.DisplayID, item.Title)
		fmt.Printf("  Quadrant: %s\n", quadrantLabel(item.Quadrant()))
		return nil
	},
}

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos by quadrant",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		completedOnly, _ := cmd.Flags().GetBool("completed")
		activeOnly, _ := cmd.Flags().GetBool("active")
		priorityFlag, _ := cmd.Flags().GetString("priority")
		urgencyFlag, _ := cmd.Flags().GetString("urgency")
		tags, _ := cmd.Flags().GetStringSlice("tag")

		criteria := todocore.Criteria{Tags: tags}
		if completedOnly {
			yes := true
			criteria.Completed = &yes
		}
		if activeOnly {
			no := false
			criteria.Completed = &no
		}
		if priorityFlag != "" {
			p, err := parsePriority(priorityFlag)
			if err != nil {
				return err
			}
			criteria.Priority = &p
		}
		if urgencyFlag != "" {
			u, err := parseUrgency(urgencyFlag)
			if err != nil {
				return err
			}
			criteria.Urgency = &u
		}

		entries, err := wire.TodoService().List(ctx, criteria)
		if err != nil {
			return fmt.Errorf("failed to list todos: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No todos found.")
			fmt.Println()
			fmt.Println("Add your first todo:")
			fmt.Println("  mull todo add \"Write it down\"")
			return nil
		}

		printEntries(entries)

		stats, err := wire.TodoService().Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("\n%d total, %d active, %d completed\n", stats.Total, stats.Active, stats.Completed)
		return nil
	},
}

var todoViewCmd = &cobra.Command{
	Use:   "view [id]",
	Short: "Show todo details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		entry, err := wire.TodoService().Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("todo not found: %w", err)
		}

		item := entry.Item
		fmt.Printf("Todo: %s (%s)\n", entry.DisplayID, item.ID)
		fmt.Printf("Title: %s\n", item.Title)
		if item.Description != "" {
			fmt.Printf("Description: %s\n", item.Description)
		}
		fmt.Printf("Quadrant: %s\n", quadrantLabel(item.Quadrant()))
		fmt.Printf("Priority: %s\n", item.Priority)
		fmt.Printf("Urgency: %s\n", item.Urgency)
		fmt.Printf("Status: %s\n", statusLabel(item))
		fmt.Printf("Created: %s\n", item.CreatedAt.Format("2006-01-02 15:04"))
		if item.CompletedAt != nil {
			fmt.Printf("Completed: %s\n", item.CompletedAt.Format("2006-01-02 15:04"))
		}
		if len(item.Tags) > 0 {
			fmt.Printf("Tags: %s\n", strings.Join(item.Tags, ", "))
		}
		for _, link := range item.Links {
			fmt.Printf("Link: %s\n", link)
		}
		return nil
	},
}

var todoEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit todo fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		patch := primary.TodoPatch{}

		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			patch.Title = &title
		}
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			patch.Description = &description
		}
		if cmd.Flags().Changed("priority") {
			flag, _ := cmd.Flags().GetString("priority")
			p, err := parsePriority(flag)
			if err != nil {
				return err
			}
			patch.Priority = &p
		}
		if cmd.Flags().Changed("urgency") {
			flag, _ := cmd.Flags().GetString("urgency")
			u, err := parseUrgency(flag)
			if err != nil {
				return err
			}
			patch.Urgency = &u
		}
		if cmd.Flags().Changed("tag") {
			tags, _ := cmd.Flags().GetStringSlice("tag")
			patch.Tags = &tags
		}
		if cmd.Flags().Changed("link") {
			links, _ := cmd.Flags().GetStringSlice("link")
			patch.Links = &links
		}

		if patch == (primary.TodoPatch{}) {
			return fmt.Errorf("nothing to change; use --title, --description, --priority, --urgency, --tag or --link")
		}

		item, err := wire.TodoService().Update(ctx, args[0], patch)
		if err != nil {
			return fmt.Errorf("failed to edit todo: %w", err)
		}

		entry, err := wire.TodoService().Get(ctx, item.ID)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Updated todo %s: %s\n", entry.DisplayID, item.Title)
		if patch.Priority != nil || patch.Urgency != nil {
			fmt.Printf("  Quadrant: %s\n", quadrantLabel(item.Quadrant()))
		}
		return nil
	},
}

var todoToggleCmd = &cobra.Command{
	Use:   "toggle [id]",
	Short: "Toggle todo completion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		item, err := wire.TodoService().Toggle(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to toggle todo: %w", err)
		}

		if item.Completed {
			fmt.Printf("✓ Completed: %s\n", item.Title)
		} else {
			fmt.Printf("✓ Reopened: %s\n", item.Title)
		}
		return nil
	},
}

var todoDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := wire.TodoService().Delete(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to delete todo: %w", err)
		}
		fmt.Printf("✓ Deleted todo %s\n", args[0])
		return nil
	},
}

var todoSearchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search todos by title and description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		text := strings.Join(args, " ")

		entries, err := wire.TodoService().List(ctx, todocore.Criteria{Text: text})
		if err != nil {
			return fmt.Errorf("failed to search todos: %w", err)
		}
		if len(entries) == 0 {
			fmt.Printf("No todos match %q.\n", text)
			return nil
		}

		fmt.Printf("Found %d todo(s):\n\n", len(entries))
		printEntries(entries)
		return nil
	},
}

var todoToNoteCmd = &cobra.Command{
	Use:   "to-note [id]",
	Short: "Convert a todo into a thought note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		path, err := wire.ConvertService().TodoToThought(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to convert todo: %w", err)
		}
		fmt.Printf("✓ Wrote note: %s\n", path)
		maybeAutoCommit(ctx, fmt.Sprintf("mull: convert todo %s to note", args[0]))
		return nil
	},
}

var todoFromNoteCmd = &cobra.Command{
	Use:   "from-note [path]",
	Short: "Create a todo from a thought note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		item, err := wire.ConvertService().ThoughtToTodo(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to convert note: %w", err)
		}

		entry, err := wire.TodoService().Get(ctx, item.ID)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Created todo %s: %s\n", entry.DisplayID, item.Title)
		fmt.Printf("  Quadrant: %s\n", quadrantLabel(item.Quadrant()))
		return nil
	},
}

// printEntries renders entries grouped in quadrant order with a tab-aligned
// table.
func printEntries(entries []primary.TodoEntry) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tTITLE\tQUADRANT\tTAGS")
	fmt.Fprintln(w, "--\t------\t-----\t--------\t----")
	for _, entry := range entries {
		check := " "
		if entry.Item.Completed {
			check = "✓"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			entry.DisplayID,
			check,
			entry.Item.Title,
			quadrantLabel(entry.Item.Quadrant()),
			strings.Join(entry.Item.Tags, ","),
		)
	}
	w.Flush()
}

func quadrantLabel(q models.Quadrant) string {
	switch q {
	case models.QuadrantImportantUrgent:
		return "A: Do first"
	case models.QuadrantImportantNotUrgent:
		return "B: Schedule"
	case models.QuadrantNotImportantUrgent:
		return "C: Delegate"
	default:
		return "D: Drop"
	}
}

func statusLabel(item *models.TodoItem) string {
	if item.Completed {
		return "completed"
	}
	return "active"
}

func parsePriority(flag string) (models.Priority, error) {
	switch strings.ToLower(flag) {
	case "", "low":
		return models.PriorityLow, nil
	case "high":
		return models.PriorityHigh, nil
	default:
		return "", fmt.Errorf("invalid priority %q (use high or low)", flag)
	}
}

func parseUrgency(flag string) (models.Urgency, error) {
	switch strings.ToLower(flag) {
	case "", "not-urgent":
		return models.UrgencyNotUrgent, nil
	case "urgent":
		return models.UrgencyUrgent, nil
	default:
		return "", fmt.Errorf("invalid urgency %q (use urgent or not-urgent)", flag)
	}
}

func init() {
	todoAddCmd.Flags().StringP("description", "d", "", "Todo description")
	todoAddCmd.Flags().StringP("priority", "p", "", "Priority (high, low)")
	todoAddCmd.Flags().StringP("urgency", "u", "", "Urgency (urgent, not-urgent)")
	todoAddCmd.Flags().StringSlice("tag", nil, "Tag (repeatable)")
	todoAddCmd.Flags().StringSlice("link", nil, "Link URL (repeatable)")

	todoListCmd.Flags().Bool("completed", false, "Only completed todos")
	todoListCmd.Flags().Bool("active", false, "Only active todos")
	todoListCmd.Flags().StringP("priority", "p", "", "Filter by priority")
	todoListCmd.Flags().StringP("urgency", "u", "", "Filter by urgency")
	todoListCmd.Flags().StringSlice("tag", nil, "Filter by tag (repeatable)")

	todoEditCmd.Flags().String("title", "", "New title")
	todoEditCmd.Flags().StringP("description", "d", "", "New description")
	todoEditCmd.Flags().StringP("priority", "p", "", "New priority (high, low)")
	todoEditCmd.Flags().StringP("urgency", "u", "", "New urgency (urgent, not-urgent)")
	todoEditCmd.Flags().StringSlice("tag", nil, "Replace tags (repeatable)")
	todoEditCmd.Flags().StringSlice("link", nil, "Replace links (repeatable)")

	todoCmd.AddCommand(todoAddCmd)
	todoCmd.AddCommand(todoListCmd)
	todoCmd.AddCommand(todoViewCmd)
	todoCmd.AddCommand(todoEditCmd)
	todoCmd.AddCommand(todoToggleCmd)
	todoCmd.AddCommand(todoDeleteCmd)
	todoCmd.AddCommand(todoSearchCmd)
	todoCmd.AddCommand(todoToNoteCmd)
	todoCmd.AddCommand(todoFromNoteCmd)
}

// TodoCmd returns the todo command
func TodoCmd() *cobra.Command {
	return todoCmd
}
