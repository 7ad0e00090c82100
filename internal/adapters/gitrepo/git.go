// Package gitrepo wraps git plumbing for the thoughts directory.
package gitrepo

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Client implements secondary.GitClient by shelling out to git.
type Client struct{}

// New returns a git client.
func New() *Client {
	return &Client{}
}

// IsRepo reports whether dir is inside a git work tree.
func (c *Client) IsRepo(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		return true
	}
	out, err := c.run(context.Background(), dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// AutoCommit stages everything under dir and commits. A clean tree is not an
// error.
func (c *Client) AutoCommit(ctx context.Context, dir, message string) error {
	if _, err := c.run(ctx, dir, "add", "-A"); err != nil {
		return fmt.Errorf("git add failed: %w", err)
	}
	status, err := c.run(ctx, dir, "status", "--porcelain")
	if err != nil {
		return fmt.Errorf("git status failed: %w", err)
	}
	if strings.TrimSpace(status) == "" {
		return nil
	}
	if _, err := c.run(ctx, dir, "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit failed: %w", err)
	}
	return nil
}

// run executes a git command in dir and returns its stdout.
func (c *Client) run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w (%s)", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
