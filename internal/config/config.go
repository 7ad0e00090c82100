// Package config reads and writes the mull configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the flat mull configuration, stored at
// <thoughts>/.mull/config.json.
type Config struct {
	Version    string `json:"version"`
	Editor     string `json:"editor,omitempty"`      // overrides $EDITOR
	AIModel    string `json:"ai_model,omitempty"`    // chat model for summaries
	Voice      string `json:"voice,omitempty"`       // TTS voice
	AutoCommit bool   `json:"auto_commit,omitempty"` // git-commit thoughts after mutations
}

// Default returns the configuration written by `mull init`.
func Default() *Config {
	return &Config{Version: "1"}
}

// Load reads .mull/config.json from the thoughts directory. A missing file
// yields the default config; a malformed file is an error.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ".mull", "config.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes config.json under the thoughts directory.
func Save(dir string, cfg *Config) error {
	mullDir := filepath.Join(dir, ".mull")
	if err := os.MkdirAll(mullDir, 0755); err != nil {
		return fmt.Errorf("failed to create .mull dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(mullDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// EditorCommand resolves the editor: config value, then $EDITOR, then vi.
func (c *Config) EditorCommand() string {
	if c.Editor != "" {
		return c.Editor
	}
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	return "vi"
}
