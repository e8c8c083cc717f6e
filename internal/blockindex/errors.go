package blockindex

import "fmt"

// IndexError represents errors reading or writing the block index
type IndexError struct {
	Op  string // "open", "migrate", "index", "lookup", ...
	Err error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index error [%s]: %v", e.Op, e.Err)
}

func (e *IndexError) Unwrap() error {
	return e.Err
}
