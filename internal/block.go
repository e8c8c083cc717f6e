package internal

import "strings"

// DefaultBlockType is used when a cell carries no stored block kind
const DefaultBlockType = "code"

// Block is the Deepnote unit of notebook content
type Block struct {
	ID             string         `json:"id" yaml:"id"`
	Type           string         `json:"type" yaml:"type"`
	SortingKey     string         `json:"sortingKey" yaml:"sortingKey"`
	ExecutionCount *int           `json:"executionCount,omitempty" yaml:"executionCount,omitempty"`
	Content        string         `json:"content" yaml:"content"`
	Outputs        []Output       `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// OutputType tags a Deepnote output record
type OutputType string

const (
	OutputTypeExecuteResult OutputType = "execute_result"
	OutputTypeDisplayData   OutputType = "display_data"
	OutputTypeStream        OutputType = "stream"
	OutputTypeError         OutputType = "error"
)

// Stream names used by stream outputs
const (
	StreamStdout = "stdout"
	StreamStderr = "stderr"
)

// Output is a Deepnote output attached to a block
type Output struct {
	OutputType     OutputType     `json:"output_type" yaml:"output_type"`
	Name           string         `json:"name,omitempty" yaml:"name,omitempty"`
	Data           *MimeBundle    `json:"data,omitempty" yaml:"data,omitempty"`
	Text           *string        `json:"text,omitempty" yaml:"text,omitempty"`
	ExecutionCount *int           `json:"execution_count,omitempty" yaml:"execution_count,omitempty"`
	Ename          string         `json:"ename,omitempty" yaml:"ename,omitempty"`
	Evalue         string         `json:"evalue,omitempty" yaml:"evalue,omitempty"`
	Traceback      []string       `json:"traceback,omitempty" yaml:"traceback,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

var markupBlockTypes = map[string]bool{
	"markdown":          true,
	"text-cell-h1":      true,
	"text-cell-h2":      true,
	"text-cell-h3":      true,
	"text-cell-p":       true,
	"text-cell-bullet":  true,
	"text-cell-todo":    true,
	"text-cell-callout": true,
	"separator":         true,
	"image":             true,
}

// IsMarkupBlockType reports whether a block kind renders as a host markup cell
func IsMarkupBlockType(blockType string) bool {
	return markupBlockTypes[blockType]
}

// cellKindForBlock picks the host cell kind for a block
func cellKindForBlock(blockType string) CellKind {
	if IsMarkupBlockType(blockType) {
		return CellKindMarkup
	}
	return CellKindCode
}

// languageForBlock picks the host language id for a block
func languageForBlock(blockType string) string {
	switch {
	case IsMarkupBlockType(blockType):
		return "markdown"
	case blockType == "sql":
		return "sql"
	case strings.HasPrefix(blockType, "input-"), blockType == "big-number", blockType == "visualization":
		return "json"
	default:
		return "python"
	}
}

func intPtr(v int) *int {
	return &v
}

func stringPtr(s string) *string {
	return &s
}
