package internal

import (
	"encoding/json"
	"fmt"
	"os"
)

// CellKind distinguishes host markup cells from code cells
type CellKind int

const (
	CellKindMarkup CellKind = 1
	CellKindCode   CellKind = 2
)

// Host MIME types reserved for stream and error payloads
const (
	MimeStdout    = "application/vnd.code.notebook.stdout"
	MimeStderr    = "application/vnd.code.notebook.stderr"
	MimeError     = "application/vnd.code.notebook.error"
	MimeTextPlain = "text/plain"
)

// Cell is the host editor's in-memory cell record
type Cell struct {
	Kind       CellKind       `json:"kind"`
	Source     string         `json:"value"`
	LanguageID string         `json:"languageId"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outputs    []CellOutput   `json:"outputs,omitempty"`
}

// CellOutput is one host output: an ordered set of MIME-tagged items
type CellOutput struct {
	Items    []OutputItem   `json:"items"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// OutputItem is a single MIME-tagged payload within a host output
type OutputItem struct {
	Mime string `json:"mime"`
	Data []byte `json:"data"`
}

// NotebookData is the host representation of a whole notebook
type NotebookData struct {
	Cells    []Cell         `json:"cells"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// NewTextOutputItem builds a text/plain host item
func NewTextOutputItem(text string) OutputItem {
	return OutputItem{Mime: MimeTextPlain, Data: []byte(text)}
}

// NewStreamOutputItem builds a stdout or stderr host item
func NewStreamOutputItem(name, text string) OutputItem {
	mime := MimeStdout
	if name == StreamStderr {
		mime = MimeStderr
	}
	return OutputItem{Mime: mime, Data: []byte(text)}
}

// hostError is the JSON payload carried by a host error item
type hostError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// ReadNotebookData loads a host notebook from a JSON file
func ReadNotebookData(path string) (*NotebookData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DocumentError{Path: path, Op: "read", Err: err}
	}

	var nb NotebookData
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, &DocumentError{Path: path, Op: "parse", Err: err}
	}
	return &nb, nil
}

// WriteNotebookData writes a host notebook as indented JSON
func WriteNotebookData(path string, nb *NotebookData) error {
	if nb == nil {
		return &DocumentError{Path: path, Op: "write", Err: fmt.Errorf("notebook is nil")}
	}

	data, err := json.MarshalIndent(nb, "", "  ")
	if err != nil {
		return &DocumentError{Path: path, Op: "marshal", Err: err}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &DocumentError{Path: path, Op: "write", Err: err}
	}
	return nil
}
