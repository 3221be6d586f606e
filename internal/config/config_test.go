package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mgpai22/tgkit/internal/textgrid"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tgkit.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadOverlaysDefinedKeys(t *testing.T) {
	path := writeConfig(t, `
strict = true
file_type = "short"
concurrency = 8
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.Strict {
		t.Errorf("expected strict = true")
	}
	if cfg.FileType != textgrid.FileTypeShort {
		t.Errorf("expected file type short, got %s", cfg.FileType)
	}
	if cfg.Concurrency != 8 {
		t.Errorf("expected concurrency 8, got %d", cfg.Concurrency)
	}
	// untouched keys keep their defaults
	if cfg.Name != textgrid.DefaultName {
		t.Errorf("expected default name, got %q", cfg.Name)
	}
	if cfg.KeepGoing {
		t.Errorf("expected keep_going default false")
	}
}

func TestLoadWithoutPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, `keep_going = true`)
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.KeepGoing {
		t.Errorf("expected keep_going from $%s config", EnvConfigPath)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad file type", `file_type = "binary"`},
		{"zero concurrency", `concurrency = 0`},
		{"unknown key", `stirct = true`},
		{"bad syntax", `strict = `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Errorf("expected error for %q", tt.body)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
