package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/deepnote-bridge/internal"
)

// JSONLExporter exports blocks in JSONL format (one block per line)
type JSONLExporter struct{}

// Export exports a document to JSONL format
func (e *JSONLExporter) Export(doc *internal.DeepnoteFile, w io.Writer) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	enc := json.NewEncoder(w)

	for _, nb := range doc.Project.Notebooks {
		for _, block := range internal.SortBlocks(nb.Blocks) {
			obj := map[string]interface{}{
				"notebookId": nb.ID,
				"id":         block.ID,
				"type":       block.Type,
				"sortingKey": block.SortingKey,
				"content":    block.Content,
			}

			if block.ExecutionCount != nil {
				obj["executionCount"] = *block.ExecutionCount
			}
			if len(block.Outputs) > 0 {
				obj["outputs"] = block.Outputs
			}

			if err := enc.Encode(obj); err != nil {
				return fmt.Errorf("failed to encode block %s: %w", block.ID, err)
			}
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
