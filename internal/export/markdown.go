package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/deepnote-bridge/internal"
)

// MarkdownExporter renders notebooks as Markdown
type MarkdownExporter struct{}

// Export exports a document to Markdown format
func (e *MarkdownExporter) Export(doc *internal.DeepnoteFile, w io.Writer) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}

	_, _ = fmt.Fprintf(w, "# %s\n\n", doc.Project.Name)

	for _, nb := range doc.Project.Notebooks {
		_, _ = fmt.Fprintf(w, "## %s\n\n", nb.Name)

		for _, block := range internal.SortBlocks(nb.Blocks) {
			writeBlock(w, &block)
		}
	}

	return nil
}

func writeBlock(w io.Writer, block *internal.Block) {
	switch block.Type {
	case "markdown", "text-cell-p":
		_, _ = fmt.Fprintf(w, "%s\n\n", block.Content)
	case "text-cell-h1":
		_, _ = fmt.Fprintf(w, "# %s\n\n", block.Content)
	case "text-cell-h2":
		_, _ = fmt.Fprintf(w, "## %s\n\n", block.Content)
	case "text-cell-h3":
		_, _ = fmt.Fprintf(w, "### %s\n\n", block.Content)
	case "text-cell-bullet":
		_, _ = fmt.Fprintf(w, "- %s\n\n", block.Content)
	case "text-cell-todo":
		mark := " "
		if checked, _ := block.Metadata["checked"].(bool); checked {
			mark = "x"
		}
		_, _ = fmt.Fprintf(w, "- [%s] %s\n\n", mark, block.Content)
	case "text-cell-callout":
		_, _ = fmt.Fprintf(w, "> %s\n\n", strings.ReplaceAll(block.Content, "\n", "\n> "))
	case "separator":
		_, _ = fmt.Fprintf(w, "---\n\n")
	default:
		lang := "python"
		if block.Type == "sql" {
			lang = "sql"
		}
		_, _ = fmt.Fprintf(w, "```%s\n%s\n```\n\n", lang, block.Content)
		writeOutputs(w, block.Outputs)
	}
}

// writeOutputs renders the textual part of block outputs
func writeOutputs(w io.Writer, outputs []internal.Output) {
	for _, out := range outputs {
		text := outputText(out)
		if text == "" {
			continue
		}
		_, _ = fmt.Fprintf(w, "```\n%s\n```\n\n", strings.TrimRight(text, "\n"))
	}
}

func outputText(out internal.Output) string {
	switch out.OutputType {
	case internal.OutputTypeStream:
		if out.Text != nil {
			return *out.Text
		}
	case internal.OutputTypeError:
		if len(out.Traceback) > 0 {
			return strings.Join(out.Traceback, "\n")
		}
		return fmt.Sprintf("%s: %s", out.Ename, out.Evalue)
	default:
		if v, ok := out.Data.Get(internal.MimeTextPlain); ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
		if out.Text != nil {
			return *out.Text
		}
	}
	return ""
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
