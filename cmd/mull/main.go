package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/mull/internal/cli"
	"github.com/example/mull/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "mull",
		Short:   "mull - personal note capture and Eisenhower todo matrix",
		Version: version.String(),
		Long: `mull is a CLI for capturing what you are mulling over: todos organized
into the four Eisenhower quadrants, markdown thoughts, clipped web pages,
and archived pull requests, all stored as plain files in a thoughts
directory.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.TodoCmd())
	rootCmd.AddCommand(cli.ThoughtCmd())
	rootCmd.AddCommand(cli.ClipCmd())
	rootCmd.AddCommand(cli.PRCmd())
	rootCmd.AddCommand(cli.SpeakCmd())
	rootCmd.AddCommand(cli.IndexCmd())
	rootCmd.AddCommand(cli.UICmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
