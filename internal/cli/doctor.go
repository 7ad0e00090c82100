package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/mull/internal/config"
	"github.com/example/mull/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	OK      bool
	Warn    bool   // non-fatal issue
	Details string // shown when not OK
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the mull environment",
		Long: `Environment health check for mull.

Validates:
- Thoughts directory and .mull state folder
- Todo matrix document readability
- Full-text index availability
- Git repo status of the thoughts directory
- TTS engine and AI summarization configuration

Examples:
  mull doctor          # Run full health check
  mull doctor --quiet  # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{
				checkThoughtsDir(),
				checkConfig(),
				checkMatrix(),
				checkIndex(),
				checkGit(),
				checkTTS(),
				checkSummarizer(),
			}

			hasErrors := false
			for _, r := range results {
				if !r.OK && !r.Warn {
					hasErrors = true
				}
			}

			if !quiet {
				printResults(results, hasErrors)
			}
			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

func printResults(results []CheckResult, hasErrors bool) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Println()
	for _, r := range results {
		icon := green("✓")
		if !r.OK {
			if r.Warn {
				icon = yellow("⚠")
			} else {
				icon = red("✗")
			}
		}
		fmt.Printf("%s %-16s", icon, r.Name)
		if !r.OK && r.Details != "" {
			fmt.Printf(" %s", r.Details)
		}
		fmt.Println()
	}
	fmt.Println()

	if hasErrors {
		fmt.Println("Issues found. Run 'mull init' to set up the thoughts directory.")
	} else {
		fmt.Println("All checks passed.")
	}
}

func checkThoughtsDir() CheckResult {
	dir := wire.ThoughtsDir()
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return CheckResult{Name: "Thoughts dir", Details: fmt.Sprintf("%s missing (run 'mull init')", dir)}
	}
	return CheckResult{Name: "Thoughts dir", OK: true}
}

func checkConfig() CheckResult {
	if _, err := config.Load(wire.ThoughtsDir()); err != nil {
		return CheckResult{Name: "Config", Details: err.Error()}
	}
	return CheckResult{Name: "Config", OK: true}
}

func checkMatrix() CheckResult {
	path := filepath.Join(wire.ThoughtsDir(), ".mull", "todos.json")
	if _, err := os.Stat(path); err != nil {
		return CheckResult{Name: "Todo matrix", Warn: true, Details: "not created yet (run 'mull init')"}
	}
	if _, err := wire.TodoService().Stats(context.Background()); err != nil {
		return CheckResult{Name: "Todo matrix", Details: err.Error()}
	}
	return CheckResult{Name: "Todo matrix", OK: true}
}

func checkIndex() CheckResult {
	if wire.Index() == nil {
		return CheckResult{Name: "Search index", Warn: true, Details: "unavailable, search degrades to a scan"}
	}
	return CheckResult{Name: "Search index", OK: true}
}

func checkGit() CheckResult {
	if !wire.GitClient().IsRepo(wire.ThoughtsDir()) {
		return CheckResult{Name: "Git repo", Warn: true, Details: "thoughts dir is not a git repo, auto-commit disabled"}
	}
	return CheckResult{Name: "Git repo", OK: true}
}

func checkTTS() CheckResult {
	candidates := []string{"espeak-ng", "espeak"}
	if runtime.GOOS == "darwin" {
		candidates = []string{"say"}
	}
	for _, bin := range candidates {
		if _, err := exec.LookPath(bin); err == nil {
			return CheckResult{Name: "TTS engine", OK: true}
		}
	}
	return CheckResult{Name: "TTS engine", Warn: true, Details: "no engine found, 'mull speak' unavailable"}
}

func checkSummarizer() CheckResult {
	if os.Getenv("OPENAI_API_KEY") == "" {
		return CheckResult{Name: "Summarizer", Warn: true, Details: "OPENAI_API_KEY not set, clips are saved without summaries"}
	}
	return CheckResult{Name: "Summarizer", OK: true}
}
