package internal

import (
	"encoding/json"
	"math"
)

// PocketKey is the reserved host metadata key holding Deepnote-only block fields
const PocketKey = "__deepnotePocket"

// Pocket field names, shared with the top-level metadata keys they are stashed from
const (
	PocketFieldID             = "id"
	PocketFieldType           = "type"
	PocketFieldSortingKey     = "sortingKey"
	PocketFieldExecutionCount = "executionCount"
)

var deepnoteBlockFields = []string{
	PocketFieldID,
	PocketFieldType,
	PocketFieldSortingKey,
	PocketFieldExecutionCount,
}

// Pocket carries Deepnote block identity through host cell metadata.
// Values are stored as found; the accessors do the type checking.
type Pocket map[string]any

// ID returns the stored block id
func (p Pocket) ID() (string, bool) {
	return p.stringField(PocketFieldID)
}

// Type returns the stored block kind
func (p Pocket) Type() (string, bool) {
	return p.stringField(PocketFieldType)
}

// SortingKey returns the stored ordering token
func (p Pocket) SortingKey() (string, bool) {
	return p.stringField(PocketFieldSortingKey)
}

// ExecutionCount returns the stored execution count when it is a non-negative integer
func (p Pocket) ExecutionCount() (int, bool) {
	v, ok := p[PocketFieldExecutionCount]
	if !ok {
		return 0, false
	}
	return asExecutionCount(v)
}

func (p Pocket) stringField(name string) (string, bool) {
	s, ok := p[name].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// AddPocketToCellMetadata stashes the Deepnote block fields found in cell metadata
// (top level, or an existing pocket) into a fresh pocket under PocketKey.
// Top-level block fields are consumed; other keys are left untouched.
// Metadata with none of the fields is not modified, and nil metadata stays nil.
func AddPocketToCellMetadata(cell *Cell) {
	if cell == nil || cell.Metadata == nil {
		return
	}

	pocket := Pocket{}
	if existing, ok := pocketFromValue(cell.Metadata[PocketKey]); ok {
		for _, field := range deepnoteBlockFields {
			if v, ok := existing[field]; ok && v != nil {
				pocket[field] = v
			}
		}
	}
	for _, field := range deepnoteBlockFields {
		if v, ok := cell.Metadata[field]; ok && v != nil {
			pocket[field] = v
		}
	}

	if len(pocket) == 0 {
		return
	}

	metadata := make(map[string]any, len(cell.Metadata)+1)
	for k, v := range cell.Metadata {
		if isDeepnoteBlockField(k) {
			continue
		}
		metadata[k] = v
	}
	metadata[PocketKey] = map[string]any(pocket)
	cell.Metadata = metadata
}

// ExtractPocketFromCellMetadata returns the pocket stored on a cell.
// The boolean is false when no pocket is present; a pocket of a foreign
// shape is reported as present but empty.
func ExtractPocketFromCellMetadata(cell *Cell) (Pocket, bool) {
	if cell == nil || cell.Metadata == nil {
		return nil, false
	}
	raw, ok := cell.Metadata[PocketKey]
	if !ok || raw == nil {
		return nil, false
	}
	if pocket, ok := pocketFromValue(raw); ok {
		return pocket, true
	}
	LogDebug("Ignoring pocket of unexpected type %T", raw)
	return Pocket{}, true
}

// RemovePocketFromCellMetadata replaces the cell metadata with a copy lacking the pocket
func RemovePocketFromCellMetadata(cell *Cell) {
	if cell == nil || cell.Metadata == nil {
		return
	}
	if _, ok := cell.Metadata[PocketKey]; !ok {
		return
	}
	cell.Metadata = metadataWithoutPocket(cell.Metadata)
}

func metadataWithoutPocket(metadata map[string]any) map[string]any {
	if metadata == nil {
		return nil
	}
	out := make(map[string]any, len(metadata))
	for k, v := range metadata {
		if k == PocketKey {
			continue
		}
		out[k] = v
	}
	return out
}

func pocketFromValue(v any) (Pocket, bool) {
	switch p := v.(type) {
	case Pocket:
		return p, true
	case map[string]any:
		return Pocket(p), true
	case map[string]string:
		pocket := make(Pocket, len(p))
		for k, s := range p {
			pocket[k] = s
		}
		return pocket, true
	default:
		return nil, false
	}
}

func isDeepnoteBlockField(key string) bool {
	for _, field := range deepnoteBlockFields {
		if key == field {
			return true
		}
	}
	return false
}

// asExecutionCount accepts the integer shapes produced by Go code, JSON and YAML decoding
func asExecutionCount(v any) (int, bool) {
	var n int64
	switch c := v.(type) {
	case int:
		n = int64(c)
	case int32:
		n = int64(c)
	case int64:
		n = c
	case uint:
		if uint64(c) > math.MaxInt32 {
			return 0, false
		}
		n = int64(c)
	case uint64:
		if c > math.MaxInt32 {
			return 0, false
		}
		n = int64(c)
	case float64:
		if c != math.Trunc(c) || math.IsInf(c, 0) {
			return 0, false
		}
		n = int64(c)
	case json.Number:
		i, err := c.Int64()
		if err != nil {
			return 0, false
		}
		n = i
	case *int:
		if c == nil {
			return 0, false
		}
		n = int64(*c)
	default:
		return 0, false
	}
	if n < 0 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}
