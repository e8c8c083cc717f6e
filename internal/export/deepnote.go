package export

import (
	"fmt"
	"io"

	"github.com/iksnae/deepnote-bridge/internal"
)

// DeepnoteExporter writes the document back as .deepnote YAML
type DeepnoteExporter struct{}

// Export exports a document in Deepnote YAML format
func (e *DeepnoteExporter) Export(doc *internal.DeepnoteFile, w io.Writer) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	data, err := doc.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Extension returns the file extension for this format
func (e *DeepnoteExporter) Extension() string {
	return "deepnote"
}
