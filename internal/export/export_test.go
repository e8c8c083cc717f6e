package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iksnae/deepnote-bridge/internal"
	"github.com/iksnae/deepnote-bridge/testutil"
)

func sampleDocument(t *testing.T) *internal.DeepnoteFile {
	t.Helper()
	doc, err := internal.ParseDeepnoteFile([]byte(testutil.SampleDeepnoteYAML))
	if err != nil {
		t.Fatalf("ParseDeepnoteFile() error = %v", err)
	}
	return doc
}

func TestDeepnoteExporter_RoundTrip(t *testing.T) {
	doc := sampleDocument(t)

	var buf bytes.Buffer
	if err := (&DeepnoteExporter{}).Export(doc, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	again, err := internal.ParseDeepnoteFile(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseDeepnoteFile(exported) error = %v", err)
	}
	if again.Project.ID != doc.Project.ID {
		t.Errorf("Project.ID = %q, want %q", again.Project.ID, doc.Project.ID)
	}
	if _, ok := again.Project.Extra["integrations"]; !ok {
		t.Error("unmodelled project field integrations was lost")
	}

	out := again.Project.Notebooks[0].Blocks[1].Outputs[1]
	if got := out.Data.Keys(); len(got) != 2 || got[0] != "text/plain" || got[1] != "application/json" {
		t.Errorf("Data.Keys() = %v, want [text/plain application/json]", got)
	}
}

func TestJSONExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONExporter(nil).Export(sampleDocument(t), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var got struct {
		ProjectID string                  `json:"projectId"`
		Notebooks []internal.NotebookData `json:"notebooks"`
	}
	testutil.JSONUnmarshal(t, buf.Bytes(), &got)

	if got.ProjectID != "project-1" {
		t.Errorf("projectId = %q, want project-1", got.ProjectID)
	}
	if len(got.Notebooks) != 2 {
		t.Fatalf("notebooks = %d, want 2", len(got.Notebooks))
	}
	cells := got.Notebooks[0].Cells
	if len(cells) != 3 {
		t.Fatalf("cells = %d, want 3", len(cells))
	}
	if cells[0].Kind != internal.CellKindMarkup {
		t.Errorf("cells[0].Kind = %v, want markup", cells[0].Kind)
	}
	if _, ok := cells[1].Metadata[internal.PocketKey]; !ok {
		t.Error("cells[1] metadata has no pocket")
	}
	if len(cells[1].Outputs) != 2 {
		t.Errorf("cells[1] outputs = %d, want 2", len(cells[1].Outputs))
	}
}

func TestJSONLExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONLExporter{}).Export(sampleDocument(t), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lines := 0
	for scanner.Scan() {
		var obj map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &obj); err != nil {
			t.Fatalf("line %d is not JSON: %v", lines, err)
		}
		if _, ok := obj["id"]; !ok {
			t.Errorf("line %d has no id", lines)
		}
		lines++
	}
	if lines != 4 {
		t.Errorf("lines = %d, want 4", lines)
	}
}

func TestMarkdownExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(sampleDocument(t), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Sample Project",
		"## Analysis",
		"# Title",
		"```python\nprint(\"hi\")\n```",
		"```\nhi\n```",
		"```\n42\n```",
		"ZeroDivisionError: division by zero",
		"```sql\nSELECT 1\n```",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestWriteBlock_TextCells(t *testing.T) {
	tests := []struct {
		name  string
		block internal.Block
		want  string
	}{
		{"heading", internal.Block{Type: "text-cell-h2", Content: "Intro"}, "## Intro\n\n"},
		{"bullet", internal.Block{Type: "text-cell-bullet", Content: "item"}, "- item\n\n"},
		{"todo checked", internal.Block{Type: "text-cell-todo", Content: "done", Metadata: map[string]any{"checked": true}}, "- [x] done\n\n"},
		{"callout", internal.Block{Type: "text-cell-callout", Content: "a\nb"}, "> a\n> b\n\n"},
		{"separator", internal.Block{Type: "separator"}, "---\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			writeBlock(&buf, &tt.block)
			if got := buf.String(); got != tt.want {
				t.Errorf("writeBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}
