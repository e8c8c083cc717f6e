package internal

// OutputKind is the routing class of a host output
type OutputKind string

const (
	OutputKindStream OutputKind = "stream"
	OutputKindError  OutputKind = "error"
	OutputKindRich   OutputKind = "rich"
)

// OutputTypeDetector classifies host MIME types. It is read-only after
// construction and safe for concurrent use.
type OutputTypeDetector struct {
	streams map[string]string // mime -> stream name
	errors  map[string]bool
}

// NewOutputTypeDetector creates a detector for the host's reserved MIME types
func NewOutputTypeDetector() *OutputTypeDetector {
	return &OutputTypeDetector{
		streams: map[string]string{
			MimeStdout: StreamStdout,
			MimeStderr: StreamStderr,
		},
		errors: map[string]bool{
			MimeError: true,
		},
	}
}

// IsStreamMime reports whether the MIME type carries stdout/stderr chunks
func (d *OutputTypeDetector) IsStreamMime(mime string) bool {
	_, ok := d.streams[normalizeMime(mime)]
	return ok
}

// IsErrorMime reports whether the MIME type carries a host error payload
func (d *OutputTypeDetector) IsErrorMime(mime string) bool {
	return d.errors[normalizeMime(mime)]
}

// StreamName returns "stdout" or "stderr" for stream MIME types
func (d *OutputTypeDetector) StreamName(mime string) (string, bool) {
	name, ok := d.streams[normalizeMime(mime)]
	return name, ok
}

// DetectOutputType routes a whole host output: any error item makes it an
// error output, an output made only of stream items is a stream output, and
// everything else is rich display content.
func (d *OutputTypeDetector) DetectOutputType(output *CellOutput) OutputKind {
	if output == nil || len(output.Items) == 0 {
		return OutputKindRich
	}

	allStreams := true
	for _, item := range output.Items {
		if d.IsErrorMime(item.Mime) {
			return OutputKindError
		}
		if !d.IsStreamMime(item.Mime) {
			allStreams = false
		}
	}
	if allStreams {
		return OutputKindStream
	}
	return OutputKindRich
}
