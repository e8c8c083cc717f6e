package testutil

import (
	"path/filepath"
	"testing"
)

// SampleDeepnoteYAML is a small two-notebook document covering code, markdown,
// stream, error and rich outputs
const SampleDeepnoteYAML = `version: "1.0"
metadata:
  createdAt: "2025-01-01T00:00:00Z"
project:
  id: project-1
  name: Sample Project
  integrations: []
  notebooks:
    - id: notebook-1
      name: Analysis
      executionMode: block
      blocks:
        - id: 0123456789abcdef0123456789abcdef
          type: markdown
          sortingKey: a0
          content: "# Title"
          metadata: {}
        - id: fedcba9876543210fedcba9876543210
          type: code
          sortingKey: a1
          executionCount: 3
          content: print("hi")
          metadata:
            slideshow:
              slide_type: slide
          outputs:
            - output_type: stream
              name: stdout
              text: "hi\n"
            - output_type: execute_result
              execution_count: 3
              data:
                text/plain: "42"
                application/json:
                  answer: 42
        - id: 11111111111111111111111111111111
          type: code
          sortingKey: a2
          content: 1/0
          outputs:
            - output_type: error
              ename: ZeroDivisionError
              evalue: division by zero
              traceback:
                - "Traceback (most recent call last)"
                - "ZeroDivisionError: division by zero"
    - id: notebook-2
      name: Init
      blocks:
        - id: 22222222222222222222222222222222
          type: sql
          sortingKey: a0
          content: SELECT 1
`

// WriteSampleDeepnote writes SampleDeepnoteYAML into dir and returns the path
func WriteSampleDeepnote(t *testing.T, dir, name string) string {
	t.Helper()
	return WriteFile(t, dir, filepath.Clean(name), []byte(SampleDeepnoteYAML))
}
