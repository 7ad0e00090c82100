package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/example/mull/internal/wire"
)

// maybeAutoCommit commits the thoughts directory when auto_commit is enabled
// and the directory is a git repo. Failures are warnings, never fatal: the
// file write already succeeded.
func maybeAutoCommit(ctx context.Context, message string) {
	if !wire.Config().AutoCommit {
		return
	}
	dir := wire.ThoughtsDir()
	git := wire.GitClient()
	if !git.IsRepo(dir) {
		return
	}
	if err := git.AutoCommit(ctx, dir, message); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: auto-commit failed: %v\n", err)
	}
}
