package internal

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// MimeProcessor converts content of one MIME family between host and Deepnote forms
type MimeProcessor interface {
	// ProcessForDeepnote turns decoded host content into the Deepnote data value
	ProcessForDeepnote(content DecodedContent) (any, error)
	// ProcessForVSCode turns a Deepnote data value into a host item, or nil
	// when the value cannot be represented
	ProcessForVSCode(content any, mime string) *OutputItem
}

// MimeTypeProcessorRegistry dispatches MIME types to processors. Patterns are
// exact types ("application/json"), families ("image/*") or structured
// suffixes ("*+json"). Lookup order is exact, suffix, family, fallback.
// Populate it before sharing; lookups do not lock.
type MimeTypeProcessorRegistry struct {
	exact    map[string]MimeProcessor
	suffixes map[string]MimeProcessor
	families map[string]MimeProcessor
	fallback MimeProcessor
}

// NewMimeTypeProcessorRegistry creates a registry with the built-in processors
func NewMimeTypeProcessorRegistry() *MimeTypeProcessorRegistry {
	r := &MimeTypeProcessorRegistry{
		exact:    make(map[string]MimeProcessor),
		suffixes: make(map[string]MimeProcessor),
		families: make(map[string]MimeProcessor),
		fallback: IdentityMimeProcessor{},
	}

	text := TextMimeProcessor{}
	for _, m := range []string{
		"text/plain",
		"text/html",
		"text/markdown",
		"text/latex",
		"text/csv",
		"image/svg+xml",
		"application/javascript",
	} {
		r.Register(m, text)
	}

	jsonProc := JSONMimeProcessor{}
	r.Register("application/json", jsonProc)
	r.Register("*+json", jsonProc)

	r.Register("image/*", ImageMimeProcessor{})
	return r
}

// Register binds a processor to a MIME pattern, replacing any previous binding
func (r *MimeTypeProcessorRegistry) Register(pattern string, p MimeProcessor) {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	switch {
	case strings.HasPrefix(pattern, "*+"):
		r.suffixes[pattern[1:]] = p
	case strings.HasSuffix(pattern, "/*"):
		r.families[strings.TrimSuffix(pattern, "*")] = p
	default:
		r.exact[pattern] = p
	}
}

// SetFallback replaces the processor used for unknown MIME types
func (r *MimeTypeProcessorRegistry) SetFallback(p MimeProcessor) {
	if p != nil {
		r.fallback = p
	}
}

// Processor returns the processor for a MIME type, never nil
func (r *MimeTypeProcessorRegistry) Processor(mimeType string) MimeProcessor {
	m := normalizeMime(mimeType)
	if p, ok := r.exact[m]; ok {
		return p
	}
	if i := strings.LastIndex(m, "+"); i >= 0 {
		if p, ok := r.suffixes[m[i:]]; ok {
			return p
		}
	}
	if i := strings.Index(m, "/"); i >= 0 {
		if p, ok := r.families[m[:i+1]]; ok {
			return p
		}
	}
	return r.fallback
}

// TextMimeProcessor passes text through unchanged
type TextMimeProcessor struct{}

func (TextMimeProcessor) ProcessForDeepnote(content DecodedContent) (any, error) {
	if content.Binary {
		return nil, errBinaryInput
	}
	return content.Text, nil
}

func (TextMimeProcessor) ProcessForVSCode(content any, mime string) *OutputItem {
	text, ok := textValue(content)
	if !ok {
		return nil
	}
	return &OutputItem{Mime: mime, Data: []byte(text)}
}

// JSONMimeProcessor parses JSON payloads into structured Deepnote data and
// serializes them back for the host
type JSONMimeProcessor struct{}

func (JSONMimeProcessor) ProcessForDeepnote(content DecodedContent) (any, error) {
	if content.Binary {
		return nil, errBinaryInput
	}
	var value any
	if err := json.Unmarshal([]byte(content.Text), &value); err != nil {
		return nil, fmt.Errorf("invalid JSON payload: %w", err)
	}
	return value, nil
}

func (JSONMimeProcessor) ProcessForVSCode(content any, mime string) *OutputItem {
	if content == nil {
		return nil
	}
	data, err := json.Marshal(normalizeYAMLValue(content))
	if err != nil {
		LogDebug("Cannot serialize %s content: %v", mime, err)
		return nil
	}
	return &OutputItem{Mime: mime, Data: data}
}

// ImageMimeProcessor base64-encodes binary images for Deepnote and decodes them back
type ImageMimeProcessor struct{}

func (ImageMimeProcessor) ProcessForDeepnote(content DecodedContent) (any, error) {
	if !content.Binary {
		return content.Text, nil
	}
	return base64.StdEncoding.EncodeToString(content.Bytes), nil
}

func (ImageMimeProcessor) ProcessForVSCode(content any, mime string) *OutputItem {
	switch v := content.(type) {
	case []byte:
		return &OutputItem{Mime: mime, Data: v}
	default:
		encoded, ok := textValue(v)
		if !ok {
			return nil
		}
		data, err := decodeBase64(encoded)
		if err != nil {
			LogDebug("Cannot decode %s base64 content: %v", mime, err)
			return nil
		}
		return &OutputItem{Mime: mime, Data: data}
	}
}

// IdentityMimeProcessor handles MIME types nothing else claims
type IdentityMimeProcessor struct{}

func (IdentityMimeProcessor) ProcessForDeepnote(content DecodedContent) (any, error) {
	if content.Binary {
		return base64.StdEncoding.EncodeToString(content.Bytes), nil
	}
	return content.Text, nil
}

func (IdentityMimeProcessor) ProcessForVSCode(content any, mime string) *OutputItem {
	switch v := content.(type) {
	case nil:
		return nil
	case []byte:
		return &OutputItem{Mime: mime, Data: v}
	case string:
		if IsBinaryMime(mime) {
			data, err := decodeBase64(v)
			if err != nil {
				return nil
			}
			return &OutputItem{Mime: mime, Data: data}
		}
		return &OutputItem{Mime: mime, Data: []byte(v)}
	default:
		data, err := json.Marshal(normalizeYAMLValue(v))
		if err != nil {
			return nil
		}
		return &OutputItem{Mime: mime, Data: data}
	}
}

// textValue accepts a string or the multi-line string list form notebooks use
func textValue(content any) (string, bool) {
	switch v := content.(type) {
	case string:
		return v, true
	case []string:
		return strings.Join(v, ""), true
	case []any:
		var sb strings.Builder
		for _, part := range v {
			s, ok := part.(string)
			if !ok {
				return "", false
			}
			sb.WriteString(s)
		}
		return sb.String(), true
	default:
		return "", false
	}
}

func decodeBase64(s string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)
	return base64.StdEncoding.DecodeString(cleaned)
}

// normalizeYAMLValue converts map[interface{}]interface{} values, which JSON
// cannot encode, into map[string]interface{}
func normalizeYAMLValue(v any) any {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAMLValue(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAMLValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeYAMLValue(val)
		}
		return out
	default:
		return v
	}
}
