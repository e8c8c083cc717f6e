package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iksnae/deepnote-bridge/internal"
	"github.com/iksnae/deepnote-bridge/testutil"
)

func TestExportCommand(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		wantFiles []string
	}{
		{
			name:      "markdown",
			format:    "md",
			wantFiles: []string{"sample_notebook-1.md", "sample_notebook-2.md"},
		},
		{
			name:      "jsonl",
			format:    "jsonl",
			wantFiles: []string{"sample_notebook-1.jsonl", "sample_notebook-2.jsonl"},
		},
		{
			name:      "json",
			format:    "json",
			wantFiles: []string{"sample_notebook-1.json", "sample_notebook-2.json"},
		},
		{
			name:      "deepnote",
			format:    "deepnote",
			wantFiles: []string{"sample_notebook-1.deepnote", "sample_notebook-2.deepnote"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			docPath := testutil.WriteSampleDeepnote(t, dir, "sample.deepnote")
			outDir := filepath.Join(dir, "out")

			if _, err := executeCommand(t, "export", docPath, "--format", tt.format, "--out", outDir); err != nil {
				t.Fatalf("export error = %v", err)
			}
			for _, name := range tt.wantFiles {
				if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
					t.Errorf("expected export file %s: %v", name, err)
				}
			}
		})
	}
}

func TestExportCommand_SingleNotebook(t *testing.T) {
	dir := t.TempDir()
	docPath := testutil.WriteSampleDeepnote(t, dir, "sample.deepnote")
	outDir := filepath.Join(dir, "out")

	if _, err := executeCommand(t, "export", docPath, "--out", outDir, "--notebook", "notebook-2"); err != nil {
		t.Fatalf("export error = %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("exported %d file(s), want 1", len(entries))
	}

	doc, err := internal.ReadDeepnoteFile(filepath.Join(outDir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadDeepnoteFile() error = %v", err)
	}
	if len(doc.Project.Notebooks) != 1 || doc.Project.Notebooks[0].ID != "notebook-2" {
		t.Errorf("exported notebooks = %+v, want only notebook-2", doc.Project.Notebooks)
	}
}

func TestExportCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	docPath := testutil.WriteSampleDeepnote(t, dir, "sample.deepnote")
	outDir := filepath.Join(dir, "out")

	tests := []struct {
		name string
		args []string
	}{
		{"invalid format", []string{"export", docPath, "--format", "invalid", "--out", outDir}},
		{"unknown notebook", []string{"export", docPath, "--notebook", "missing", "--out", outDir}},
		{"missing document", []string{"export", filepath.Join(dir, "absent.deepnote"), "--out", outDir}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := executeCommand(t, tt.args...); err == nil {
				t.Errorf("export %v error = nil, want error", tt.args)
			}
		})
	}
}

func TestExportCommand_StopsAtFailedNotebook(t *testing.T) {
	dir := t.TempDir()
	docPath := testutil.WriteSampleDeepnote(t, dir, "sample.deepnote")
	outDir := filepath.Join(dir, "out")

	// A directory where the first export file should go makes that step fail
	if err := os.MkdirAll(filepath.Join(outDir, "sample_notebook-1.md"), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	_, err := executeCommand(t, "export", docPath, "--format", "md", "--out", outDir)
	if err == nil {
		t.Fatal("export error = nil, want error")
	}
	var exportErr *internal.ExportError
	if !errors.As(err, &exportErr) {
		t.Fatalf("export error = %T %v, want *internal.ExportError", err, err)
	}
	if exportErr.Format != "md" {
		t.Errorf("ExportError.Format = %q, want md", exportErr.Format)
	}
	if _, err := os.Stat(filepath.Join(outDir, "sample_notebook-2.md")); !os.IsNotExist(err) {
		t.Errorf("notebook-2 should not be exported after the first step failed, stat error = %v", err)
	}
}
