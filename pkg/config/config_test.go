package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Widget.Engine != "strict" {
		t.Errorf("default engine = %q, want strict", cfg.Widget.Engine)
	}
	if cfg.Widget.Threshold != 1 {
		t.Errorf("default threshold = %d, want 1", cfg.Widget.Threshold)
	}
	if cfg.Widget.MaxResults != 20 {
		t.Errorf("default max_results = %d, want 20", cfg.Widget.MaxResults)
	}
	if !cfg.List.Wrap {
		t.Error("default wrap should be true")
	}
	if cfg.Server.MaxLimit != 64 {
		t.Errorf("default max_limit = %d, want 64", cfg.Server.MaxLimit)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.Widget.Engine = "loose"
	cfg.Widget.Threshold = 2
	cfg.List.MaxVisible = 5
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Widget.Engine != "loose" {
		t.Errorf("engine = %q, want loose", loaded.Widget.Engine)
	}
	if loaded.Widget.Threshold != 2 {
		t.Errorf("threshold = %d, want 2", loaded.Widget.Threshold)
	}
	if loaded.List.MaxVisible != 5 {
		t.Errorf("max_visible = %d, want 5", loaded.List.MaxVisible)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[widget]\nengine = \"prefix\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Widget.Engine != "prefix" {
		t.Errorf("engine = %q, want prefix", cfg.Widget.Engine)
	}
	if cfg.Widget.MaxResults != 20 {
		t.Errorf("unset max_results = %d, want default 20", cfg.Widget.MaxResults)
	}
	if cfg.Server.MaxQuery != 60 {
		t.Errorf("unset max_query = %d, want default 60", cfg.Server.MaxQuery)
	}
}

func TestPartialParseRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[widget]\nthreshold = 3\n\n[list\nbroken"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig should recover, got: %v", err)
	}
	if cfg.List.MaxVisible != 10 {
		t.Errorf("broken section must fall back to defaults, max_visible = %d", cfg.List.MaxVisible)
	}
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if cfg.Widget.Engine != "strict" {
		t.Errorf("engine = %q, want strict", cfg.Widget.Engine)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file to be created: %v", err)
	}
}

func TestUpdatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatal(err)
	}

	threshold := 4
	highlight := false
	if err := cfg.Update(path, &threshold, nil, nil, &highlight); err != nil {
		t.Fatalf("Update: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Widget.Threshold != 4 {
		t.Errorf("threshold = %d, want 4", loaded.Widget.Threshold)
	}
	if loaded.Widget.Highlight {
		t.Error("highlight should be false after update")
	}
	if loaded.Widget.DebounceMs != 120 {
		t.Errorf("untouched debounce_ms = %d, want 120", loaded.Widget.DebounceMs)
	}
}
