package internal

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DeepnoteFileVersion is written into new documents
const DeepnoteFileVersion = "1.0"

// DeepnoteFile is a .deepnote YAML document
type DeepnoteFile struct {
	Version  string           `json:"version" yaml:"version"`
	Metadata DeepnoteMetadata `json:"metadata" yaml:"metadata"`
	Project  DeepnoteProject  `json:"project" yaml:"project"`
}

// DeepnoteMetadata holds document timestamps
type DeepnoteMetadata struct {
	CreatedAt  string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	ModifiedAt string `json:"modifiedAt,omitempty" yaml:"modifiedAt,omitempty"`
}

// DeepnoteProject is the project a document describes
type DeepnoteProject struct {
	ID        string             `json:"id" yaml:"id"`
	Name      string             `json:"name" yaml:"name"`
	Notebooks []DeepnoteNotebook `json:"notebooks" yaml:"notebooks"`
	Settings  map[string]any     `json:"settings,omitempty" yaml:"settings,omitempty"`

	// Extra keeps project fields this tool does not model
	Extra map[string]any `json:"-" yaml:",inline"`
}

// DeepnoteNotebook is one notebook inside a project
type DeepnoteNotebook struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	ExecutionMode string  `json:"executionMode,omitempty" yaml:"executionMode,omitempty"`
	IsModule      bool    `json:"isModule,omitempty" yaml:"isModule,omitempty"`
	Blocks        []Block `json:"blocks" yaml:"blocks"`
}

// ParseDeepnoteFile decodes a .deepnote document
func ParseDeepnoteFile(data []byte) (*DeepnoteFile, error) {
	var file DeepnoteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse deepnote document: %w", err)
	}
	if file.Project.ID == "" {
		return nil, fmt.Errorf("deepnote document has no project id")
	}
	return &file, nil
}

// Marshal encodes the document as YAML
func (f *DeepnoteFile) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("failed to marshal deepnote document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Notebook returns the notebook with the given id, or nil
func (f *DeepnoteFile) Notebook(id string) *DeepnoteNotebook {
	for i := range f.Project.Notebooks {
		if f.Project.Notebooks[i].ID == id {
			return &f.Project.Notebooks[i]
		}
	}
	return nil
}

// Touch stamps the modification time, setting the creation time when missing
func (f *DeepnoteFile) Touch(now time.Time) {
	stamp := now.UTC().Format(time.RFC3339)
	if f.Metadata.CreatedAt == "" {
		f.Metadata.CreatedAt = stamp
	}
	f.Metadata.ModifiedAt = stamp
	if f.Version == "" {
		f.Version = DeepnoteFileVersion
	}
}

// NewDeepnoteFile creates a document holding a single empty notebook
func NewDeepnoteFile(projectName, notebookName string) *DeepnoteFile {
	file := &DeepnoteFile{
		Version: DeepnoteFileVersion,
		Project: DeepnoteProject{
			ID:   GenerateBlockID(),
			Name: projectName,
			Notebooks: []DeepnoteNotebook{
				{ID: GenerateBlockID(), Name: notebookName, Blocks: []Block{}},
			},
		},
	}
	file.Touch(time.Now())
	return file
}

// ReadDeepnoteFile loads a .deepnote document from disk
func ReadDeepnoteFile(path string) (*DeepnoteFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DocumentError{Path: path, Op: "read", Err: err}
	}
	file, err := ParseDeepnoteFile(data)
	if err != nil {
		return nil, &DocumentError{Path: path, Op: "parse", Err: err}
	}
	return file, nil
}

// WriteDeepnoteFile writes a .deepnote document to disk
func WriteDeepnoteFile(path string, file *DeepnoteFile) error {
	data, err := file.Marshal()
	if err != nil {
		return &DocumentError{Path: path, Op: "marshal", Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &DocumentError{Path: path, Op: "write", Err: err}
	}
	return nil
}
