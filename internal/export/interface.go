package export

import (
	"fmt"
	"io"

	"github.com/iksnae/deepnote-bridge/internal"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(doc *internal.DeepnoteFile, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "deepnote", "yaml":
		return &DeepnoteExporter{}, nil
	case "json":
		return NewJSONExporter(nil), nil
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: deepnote, json, jsonl, md)", format)
	}
}
