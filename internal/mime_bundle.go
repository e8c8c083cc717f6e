package internal

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MimeBundle maps MIME types to content, keeping insertion order.
// Keys are unique; setting an existing key replaces the value in place.
type MimeBundle struct {
	keys   []string
	values map[string]any
}

// NewMimeBundle creates an empty bundle
func NewMimeBundle() *MimeBundle {
	return &MimeBundle{values: make(map[string]any)}
}

// Set stores content for a MIME type
func (b *MimeBundle) Set(mime string, value any) {
	if b.values == nil {
		b.values = make(map[string]any)
	}
	if _, exists := b.values[mime]; !exists {
		b.keys = append(b.keys, mime)
	}
	b.values[mime] = value
}

// Get returns the content stored for a MIME type
func (b *MimeBundle) Get(mime string) (any, bool) {
	if b == nil {
		return nil, false
	}
	v, ok := b.values[mime]
	return v, ok
}

// Delete removes a MIME type from the bundle
func (b *MimeBundle) Delete(mime string) {
	if b == nil {
		return
	}
	if _, ok := b.values[mime]; !ok {
		return
	}
	delete(b.values, mime)
	for i, k := range b.keys {
		if k == mime {
			b.keys = append(b.keys[:i], b.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of MIME types in the bundle
func (b *MimeBundle) Len() int {
	if b == nil {
		return 0
	}
	return len(b.keys)
}

// Keys returns the MIME types in insertion order
func (b *MimeBundle) Keys() []string {
	if b == nil {
		return nil
	}
	keys := make([]string, len(b.keys))
	copy(keys, b.keys)
	return keys
}

// Range calls fn for each entry in insertion order until fn returns false
func (b *MimeBundle) Range(fn func(mime string, value any) bool) {
	if b == nil {
		return
	}
	for _, k := range b.keys {
		if !fn(k, b.values[k]) {
			return
		}
	}
}

// MarshalJSON writes the bundle as a JSON object in insertion order
func (b *MimeBundle) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range b.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(b.values[k])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s content: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the key order of the source
func (b *MimeBundle) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("mime bundle must be a JSON object")
	}

	b.keys = nil
	b.values = make(map[string]any)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("mime bundle key must be a string")
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode %s content: %w", key, err)
		}
		b.Set(key, value)
	}

	_, err = dec.Token()
	return err
}

// MarshalYAML writes the bundle as a YAML mapping in insertion order
func (b *MimeBundle) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range b.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(b.values[k]); err != nil {
			return nil, fmt.Errorf("failed to encode %s content: %w", k, err)
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

// UnmarshalYAML reads a YAML mapping, keeping the key order of the source
func (b *MimeBundle) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("mime bundle must be a mapping, got line %d", node.Line)
	}

	b.keys = nil
	b.values = make(map[string]any)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("failed to decode %s content: %w", key, err)
		}
		b.Set(key, value)
	}
	return nil
}
