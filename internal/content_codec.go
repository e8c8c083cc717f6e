package internal

import (
	"mime"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// DecodedContent is a host item payload ready for a MIME processor
type DecodedContent struct {
	Mime   string
	Text   string
	Bytes  []byte
	Binary bool
}

// DecodeOutputItem decodes a host item payload. Binary MIME types keep their
// raw bytes; everything else must be UTF-8 text (a leading BOM is dropped).
func DecodeOutputItem(item OutputItem) (DecodedContent, error) {
	if strings.TrimSpace(item.Mime) == "" {
		return DecodedContent{}, &DecodeError{Mime: item.Mime, Err: errEmptyMime}
	}

	if IsBinaryMime(item.Mime) {
		return DecodedContent{Mime: item.Mime, Bytes: item.Data, Binary: true}, nil
	}

	if !utf8.Valid(item.Data) {
		return DecodedContent{}, &DecodeError{Mime: item.Mime, Err: errInvalidUTF8}
	}
	text, err := unicode.UTF8BOM.NewDecoder().Bytes(item.Data)
	if err != nil {
		return DecodedContent{}, &DecodeError{Mime: item.Mime, Err: err}
	}
	return DecodedContent{Mime: item.Mime, Text: string(text), Bytes: item.Data}, nil
}

// IsBinaryMime reports whether payloads of this MIME type are opaque bytes
func IsBinaryMime(mimeType string) bool {
	m := normalizeMime(mimeType)
	switch {
	case m == "image/svg+xml":
		return false
	case strings.HasPrefix(m, "image/"),
		strings.HasPrefix(m, "audio/"),
		strings.HasPrefix(m, "video/"),
		m == "application/pdf",
		m == "application/octet-stream":
		return true
	default:
		return false
	}
}

// normalizeMime lowercases a MIME type and drops parameters such as charset
func normalizeMime(mimeType string) string {
	m := strings.ToLower(strings.TrimSpace(mimeType))
	if !strings.Contains(m, ";") {
		return m
	}
	if base, _, err := mime.ParseMediaType(m); err == nil {
		return base
	}
	return strings.TrimSpace(m[:strings.Index(m, ";")])
}
