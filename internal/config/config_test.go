package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingReturnsDefault(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version != "1" {
		t.Errorf("Version = %q, want 1", cfg.Version)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{Version: "1", Editor: "nano", AIModel: "gpt-4o-mini", Voice: "en-gb", AutoCommit: true}

	if err := Save(dir, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip = %+v, want %+v", loaded, cfg)
	}
}

func TestLoadMalformedIsError(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".mull"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".mull", "config.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected parse error for malformed config")
	}
}

func TestEditorCommand(t *testing.T) {
	t.Setenv("EDITOR", "emacs")
	cfg := &Config{}
	if got := cfg.EditorCommand(); got != "emacs" {
		t.Errorf("EditorCommand = %q, want emacs", got)
	}
	cfg.Editor = "nano"
	if got := cfg.EditorCommand(); got != "nano" {
		t.Errorf("EditorCommand = %q, want nano", got)
	}
	t.Setenv("EDITOR", "")
	cfg.Editor = ""
	if got := cfg.EditorCommand(); got != "vi" {
		t.Errorf("EditorCommand = %q, want vi", got)
	}
}
