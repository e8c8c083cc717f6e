package internal

import "fmt"

// RichOutputHandler converts display outputs between the host item list and
// Deepnote's execute_result/display_data shape. Stream and error items are
// left to CellOutputConverter.
type RichOutputHandler struct {
	registry *MimeTypeProcessorRegistry
	detector *OutputTypeDetector
}

// NewRichOutputHandler creates a handler with the built-in processors
func NewRichOutputHandler() *RichOutputHandler {
	return NewRichOutputHandlerWithRegistry(NewMimeTypeProcessorRegistry(), NewOutputTypeDetector())
}

// NewRichOutputHandlerWithRegistry creates a handler around an existing registry and detector
func NewRichOutputHandlerWithRegistry(registry *MimeTypeProcessorRegistry, detector *OutputTypeDetector) *RichOutputHandler {
	if registry == nil {
		registry = NewMimeTypeProcessorRegistry()
	}
	if detector == nil {
		detector = NewOutputTypeDetector()
	}
	return &RichOutputHandler{registry: registry, detector: detector}
}

// Registry exposes the processor registry so callers can register new MIME types
func (h *RichOutputHandler) Registry() *MimeTypeProcessorRegistry {
	return h.registry
}

// ConvertToDeepnote converts one host output. The result starts as an
// execute_result with empty data; once any item lands in data it becomes
// execute_result when an execution count is known and display_data otherwise.
// Items that cannot be converted are dropped with a warning.
func (h *RichOutputHandler) ConvertToDeepnote(output *CellOutput) *Output {
	result := &Output{
		OutputType: OutputTypeExecuteResult,
		Data:       NewMimeBundle(),
	}
	if output == nil {
		return result
	}

	if count, ok := executionCountFromMetadata(output.Metadata); ok {
		result.ExecutionCount = intPtr(count)
	}
	result.Metadata = outputMetadataForDeepnote(output.Metadata)

	placed := false
	for _, item := range output.Items {
		if h.detector.IsStreamMime(item.Mime) || h.detector.IsErrorMime(item.Mime) {
			continue
		}
		value, ok := h.convertItemToDeepnote(item)
		if !ok {
			continue
		}
		result.Data.Set(item.Mime, value)
		placed = true
	}

	if placed {
		if result.ExecutionCount != nil {
			result.OutputType = OutputTypeExecuteResult
		} else {
			result.OutputType = OutputTypeDisplayData
		}
	}
	return result
}

// convertItemToDeepnote runs decode, process, raw text in that order and
// reports false when the item has to be dropped
func (h *RichOutputHandler) convertItemToDeepnote(item OutputItem) (any, bool) {
	content, err := DecodeOutputItem(item)
	if err != nil {
		LogWarn("Dropping output item: %v", err)
		return nil, false
	}

	value, err := processForDeepnote(h.registry.Processor(item.Mime), content)
	if err == nil {
		return value, true
	}

	if content.Binary {
		LogWarn("Dropping output item: %v", err)
		return nil, false
	}
	LogDebug("Falling back to raw text: %v", err)
	return content.Text, true
}

// ConvertToVSCode converts one Deepnote output into host items. Outputs
// without data fall back to a single text/plain item built from text.
// Entries whose processor cannot represent them are skipped.
func (h *RichOutputHandler) ConvertToVSCode(output *Output) []OutputItem {
	if output == nil {
		return nil
	}

	if output.Data.Len() == 0 {
		if output.Text != nil {
			return []OutputItem{NewTextOutputItem(*output.Text)}
		}
		return nil
	}

	items := make([]OutputItem, 0, output.Data.Len())
	output.Data.Range(func(mime string, value any) bool {
		item := processForVSCode(h.registry.Processor(mime), value, mime)
		if item != nil {
			items = append(items, *item)
		}
		return true
	})
	return items
}

// processForDeepnote shields the conversion loop from a panicking processor
func processForDeepnote(p MimeProcessor, content DecodedContent) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = &ProcessError{Mime: content.Mime, Direction: DirectionToDeepnote, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	value, err = p.ProcessForDeepnote(content)
	if err != nil {
		return nil, &ProcessError{Mime: content.Mime, Direction: DirectionToDeepnote, Err: err}
	}
	return value, nil
}

func processForVSCode(p MimeProcessor, content any, mime string) (item *OutputItem) {
	defer func() {
		if r := recover(); r != nil {
			LogWarn("Dropping %s data: %v", mime, &ProcessError{Mime: mime, Direction: DirectionToHost, Err: fmt.Errorf("panic: %v", r)})
			item = nil
		}
	}()
	return p.ProcessForVSCode(content, mime)
}

const hostExecutionCountKey = "executionCount"

func executionCountFromMetadata(metadata map[string]any) (int, bool) {
	if metadata == nil {
		return 0, false
	}
	v, ok := metadata[hostExecutionCountKey]
	if !ok || v == nil {
		return 0, false
	}
	return asExecutionCount(v)
}

func outputMetadataForDeepnote(metadata map[string]any) map[string]any {
	if len(metadata) == 0 {
		return nil
	}
	out := make(map[string]any, len(metadata))
	for k, v := range metadata {
		if k == hostExecutionCountKey {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func outputMetadataForHost(output *Output) map[string]any {
	if output.ExecutionCount == nil && len(output.Metadata) == 0 {
		return nil
	}
	out := make(map[string]any, len(output.Metadata)+1)
	for k, v := range output.Metadata {
		out[k] = v
	}
	if output.ExecutionCount != nil {
		out[hostExecutionCountKey] = *output.ExecutionCount
	}
	return out
}
