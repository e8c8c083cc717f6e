package internal

import (
	"errors"
	"fmt"
)

var (
	errEmptyMime   = errors.New("output item has no mime type")
	errInvalidUTF8 = errors.New("payload is not valid UTF-8")
	errBinaryInput = errors.New("binary payload cannot be processed as text")
)

// Direction names the way an output item is travelling through a processor
type Direction string

const (
	DirectionToDeepnote Direction = "deepnote"
	DirectionToHost     Direction = "host"
)

// DecodeError represents a host output item whose payload could not be decoded
type DecodeError struct {
	Mime string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error [%s]: %v", e.Mime, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ProcessError represents a MIME processor failing on a single item
type ProcessError struct {
	Mime      string
	Direction Direction
	Err       error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("process error [%s -> %s]: %v", e.Mime, e.Direction, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// DocumentError represents errors reading or writing notebook documents
type DocumentError struct {
	Path string
	Op   string // "read", "parse", "marshal", "write"
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
