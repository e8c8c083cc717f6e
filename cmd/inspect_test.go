package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/deepnote-bridge/internal"
	"github.com/iksnae/deepnote-bridge/testutil"
)

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	docPath := testutil.WriteSampleDeepnote(t, dir, "sample.deepnote")

	out, err := executeCommand(t, "inspect", docPath)
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	for _, want := range []string{
		"Sample Project",
		"Analysis",
		"Init",
		"fedcba9876543210fedcba9876543210",
		"SORTING KEY",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q", want)
		}
	}
}

func TestInspectCommand_NotebookFilter(t *testing.T) {
	dir := t.TempDir()
	docPath := testutil.WriteSampleDeepnote(t, dir, "sample.deepnote")

	out, err := executeCommand(t, "inspect", docPath, "--notebook", "notebook-2")
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	if strings.Contains(out, "Analysis") {
		t.Error("filtered inspect output should not list notebook-1")
	}
	if !strings.Contains(out, "22222222222222222222222222222222") {
		t.Error("filtered inspect output missing notebook-2 block")
	}

	if _, err := executeCommand(t, "inspect", docPath, "--notebook", "missing"); err == nil {
		t.Error("inspect with unknown notebook should return error")
	}
}

func TestBlockRows(t *testing.T) {
	count := 7
	blocks := []internal.Block{
		{ID: "b", Type: "code", SortingKey: "a10", ExecutionCount: &count},
		{ID: "a", Type: "markdown", SortingKey: "a2"},
	}

	rows := blockRows(blocks)
	if len(rows) != 2 {
		t.Fatalf("blockRows() = %d rows, want 2", len(rows))
	}
	if rows[0][1] != "a" || rows[1][1] != "b" {
		t.Errorf("row order = %s, %s, want a, b", rows[0][1], rows[1][1])
	}
	if rows[0][4] != "-" || rows[1][4] != "7" {
		t.Errorf("exec column = %q, %q, want -, 7", rows[0][4], rows[1][4])
	}
}

func TestRenderDocument_EmptyNotebook(t *testing.T) {
	doc := internal.NewDeepnoteFile("Empty", "Nothing")

	var buf bytes.Buffer
	if err := renderDocument(&buf, doc, ""); err != nil {
		t.Fatalf("renderDocument() error = %v", err)
	}
	if !strings.Contains(buf.String(), "0 block(s)") {
		t.Errorf("renderDocument() output missing block count:\n%s", buf.String())
	}
}
