package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// A charfreq.toml above the temp dir would make this flaky.
	if cfg.Path != "" {
		t.Skipf("found unrelated config at %s", cfg.Path)
	}
	if cfg.LogLevel != "info" || cfg.Color != ColorAuto {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.Debounce() != 100*time.Millisecond {
		t.Errorf("Expected 100ms debounce, got %s", cfg.Debounce())
	}
}

func TestLoadFindsParentConfig(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, `
log_level = "debug"
color = "never"

[watch]
debounce_ms = 250
`)

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	file := filepath.Join(nested, "input.txt")
	if err := os.WriteFile(file, []byte("hello"), 0644); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}

	for _, start := range []string{nested, file} {
		cfg, err := Load(start)
		if err != nil {
			t.Fatalf("Load(%s) failed: %v", start, err)
		}
		if cfg.Path != path {
			t.Errorf("Expected config from %s, got %s", path, cfg.Path)
		}
		if cfg.LogLevel != "debug" || cfg.Color != ColorNever {
			t.Errorf("Unexpected values: %+v", cfg)
		}
		if cfg.ChunkSize != 64*1024 {
			t.Errorf("Expected default chunk size to survive, got %d", cfg.ChunkSize)
		}
		if cfg.Debounce() != 250*time.Millisecond {
			t.Errorf("Expected 250ms, got %s", cfg.Debounce())
		}
	}
}

func TestLoadFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad level", `log_level = "trace"`, "log_level"},
		{"bad color", `color = "sometimes"`, "color"},
		{"bad chunk", `chunk_size = 0`, "chunk_size"},
		{"negative debounce", "[watch]\ndebounce_ms = -1", "debounce_ms"},
		{"unknown key", `threshold = 5`, "unknown keys"},
		{"syntax", `log_level = `, "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{LogLevel: "loud", Color: "rainbow"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected error")
	}
	for _, want := range []string{"log_level", "color", "chunk_size"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %q in %v", want, err)
		}
	}
}
