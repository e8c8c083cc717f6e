package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/deepnote-bridge/internal"
)

// JSONExporter writes every notebook of a document as host notebook data
type JSONExporter struct {
	converter *internal.NotebookConverter
}

// NewJSONExporter creates a JSON exporter; a nil converter uses the defaults
func NewJSONExporter(converter *internal.NotebookConverter) *JSONExporter {
	if converter == nil {
		converter = internal.NewNotebookConverter(nil)
	}
	return &JSONExporter{converter: converter}
}

type hostNotebookExport struct {
	ProjectID string                   `json:"projectId"`
	Notebooks []*internal.NotebookData `json:"notebooks"`
}

// Export exports a document in host JSON format
func (e *JSONExporter) Export(doc *internal.DeepnoteFile, w io.Writer) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}

	out := hostNotebookExport{
		ProjectID: doc.Project.ID,
		Notebooks: make([]*internal.NotebookData, 0, len(doc.Project.Notebooks)),
	}
	for i := range doc.Project.Notebooks {
		data, err := e.converter.ToHost(&doc.Project.Notebooks[i])
		if err != nil {
			return fmt.Errorf("failed to convert notebook %s: %w", doc.Project.Notebooks[i].ID, err)
		}
		out.Notebooks = append(out.Notebooks, data)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
