package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if exists {
		t.Error("Load() exists = true, want false")
	}
	if resolved != path {
		t.Errorf("Load() path = %q, want %q", resolved, path)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if !cfg.Conversion.DedupeBlockIDs {
		t.Error("Conversion.DedupeBlockIDs = false, want true")
	}
	if cfg.Conversion.DropEmptyOutputs {
		t.Error("Conversion.DropEmptyOutputs = true, want false")
	}
	if strings.HasPrefix(cfg.Index.Path, "~") {
		t.Errorf("Index.Path = %q, want home expanded", cfg.Index.Path)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[logging]
level = "DEBUG"

[conversion]
drop_empty_outputs = true
dedupe_block_ids = false

[index]
path = "` + filepath.ToSlash(filepath.Join(dir, "idx.db")) + `"

[export]
format = "jsonl"
out_dir = "` + filepath.ToSlash(filepath.Join(dir, "out")) + `"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !exists {
		t.Error("Load() exists = false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if !cfg.Conversion.DropEmptyOutputs || cfg.Conversion.DedupeBlockIDs {
		t.Errorf("Conversion = %+v, want drop_empty_outputs=true dedupe_block_ids=false", cfg.Conversion)
	}
	if cfg.Export.Format != "jsonl" {
		t.Errorf("Export.Format = %q, want jsonl", cfg.Export.Format)
	}
	if cfg.Index.Path != filepath.Join(dir, "idx.db") {
		t.Errorf("Index.Path = %q, want %q", cfg.Index.Path, filepath.Join(dir, "idx.db"))
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "unknown log level",
			mutate: func(c *Config) { c.Logging.Level = "loud" },
			want:   "logging.level",
		},
		{
			name:   "unknown export format",
			mutate: func(c *Config) { c.Export.Format = "xml" },
			want:   "export.format",
		},
		{
			name:   "empty index path",
			mutate: func(c *Config) { c.Index.Path = "" },
			want:   "index.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging\nlevel = "), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Error("Load() error = nil, want parse error")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample() error = %v", err)
	}
	if _, _, _, err := Load(path); err != nil {
		t.Errorf("Load(sample) error = %v", err)
	}
	if err := CreateSample(path); err == nil {
		t.Error("CreateSample() on existing file error = nil, want error")
	}
}
