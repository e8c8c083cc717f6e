package internal

import (
	"encoding/json"
	"strings"
)

// CellOutputConverter converts every kind of cell output. Stream and error
// outputs are handled here; display content goes through RichOutputHandler.
type CellOutputConverter struct {
	rich     *RichOutputHandler
	detector *OutputTypeDetector

	// DropEmptyOutputs discards display outputs that ended up with no data
	DropEmptyOutputs bool
}

// NewCellOutputConverter creates a converter around a rich output handler
func NewCellOutputConverter(rich *RichOutputHandler) *CellOutputConverter {
	if rich == nil {
		rich = NewRichOutputHandler()
	}
	return &CellOutputConverter{rich: rich, detector: rich.detector}
}

// OutputsToDeepnote converts the outputs of one cell; nil when nothing remains
func (c *CellOutputConverter) OutputsToDeepnote(outputs []CellOutput) []Output {
	var result []Output
	for i := range outputs {
		result = append(result, c.ToDeepnote(&outputs[i])...)
	}
	return result
}

// OutputsToHost converts the outputs of one block; nil when nothing remains
func (c *CellOutputConverter) OutputsToHost(outputs []Output) []CellOutput {
	var result []CellOutput
	for i := range outputs {
		if out := c.ToHost(&outputs[i]); out != nil {
			result = append(result, *out)
		}
	}
	return result
}

// ToDeepnote converts one host output. Stream items become one Deepnote
// output per stream name, display items become one execute_result or
// display_data, and the first error item becomes an error output. An output
// mixing these kinds yields them in that order.
func (c *CellOutputConverter) ToDeepnote(output *CellOutput) []Output {
	if output == nil {
		return nil
	}

	switch c.detector.DetectOutputType(output) {
	case OutputKindStream:
		return c.streamsToDeepnote(output)
	case OutputKindRich:
		if !c.hasStreamItems(output) {
			return c.richToDeepnote(output)
		}
	}

	streams, rich, errs := c.splitItems(output)
	var result []Output
	if len(streams.Items) > 0 {
		result = append(result, c.streamsToDeepnote(streams)...)
	}
	if len(rich.Items) > 0 {
		result = append(result, c.richToDeepnote(rich)...)
	}
	if len(errs.Items) > 1 {
		LogWarn("Keeping the first of %d error items in one output", len(errs.Items))
	}
	if len(errs.Items) > 0 {
		if out, ok := c.errorToDeepnote(errs); ok {
			result = append(result, out)
		}
	}
	return result
}

func (c *CellOutputConverter) richToDeepnote(output *CellOutput) []Output {
	out := c.rich.ConvertToDeepnote(output)
	if c.DropEmptyOutputs && out.Data.Len() == 0 {
		LogDebug("Dropping display output with no convertible data")
		return nil
	}
	return []Output{*out}
}

func (c *CellOutputConverter) hasStreamItems(output *CellOutput) bool {
	for _, item := range output.Items {
		if c.detector.IsStreamMime(item.Mime) {
			return true
		}
	}
	return false
}

// splitItems partitions the items of a mixed output by kind; each part keeps
// the output metadata
func (c *CellOutputConverter) splitItems(output *CellOutput) (streams, rich, errs *CellOutput) {
	streams = &CellOutput{Metadata: output.Metadata}
	rich = &CellOutput{Metadata: output.Metadata}
	errs = &CellOutput{Metadata: output.Metadata}
	for _, item := range output.Items {
		switch {
		case c.detector.IsStreamMime(item.Mime):
			streams.Items = append(streams.Items, item)
		case c.detector.IsErrorMime(item.Mime):
			errs.Items = append(errs.Items, item)
		default:
			rich.Items = append(rich.Items, item)
		}
	}
	return streams, rich, errs
}

func (c *CellOutputConverter) streamsToDeepnote(output *CellOutput) []Output {
	var order []string
	texts := make(map[string]*strings.Builder)
	for _, item := range output.Items {
		name, _ := c.detector.StreamName(item.Mime)
		content, err := DecodeOutputItem(item)
		if err != nil {
			LogWarn("Dropping stream chunk: %v", err)
			continue
		}
		sb, ok := texts[name]
		if !ok {
			sb = &strings.Builder{}
			texts[name] = sb
			order = append(order, name)
		}
		sb.WriteString(content.Text)
	}

	result := make([]Output, 0, len(order))
	for _, name := range order {
		result = append(result, Output{
			OutputType: OutputTypeStream,
			Name:       name,
			Text:       stringPtr(texts[name].String()),
			Metadata:   outputMetadataForDeepnote(output.Metadata),
		})
	}
	return result
}

func (c *CellOutputConverter) errorToDeepnote(output *CellOutput) (Output, bool) {
	for _, item := range output.Items {
		if !c.detector.IsErrorMime(item.Mime) {
			continue
		}
		content, err := DecodeOutputItem(item)
		if err != nil {
			LogWarn("Dropping error output: %v", err)
			return Output{}, false
		}

		var payload hostError
		if err := json.Unmarshal([]byte(content.Text), &payload); err != nil {
			LogDebug("Error payload is not JSON, keeping it as the error value: %v", err)
			payload = hostError{Name: "Error", Message: content.Text}
		}

		out := Output{
			OutputType: OutputTypeError,
			Ename:      payload.Name,
			Evalue:     payload.Message,
			Metadata:   outputMetadataForDeepnote(output.Metadata),
		}
		if payload.Stack != "" {
			out.Traceback = strings.Split(payload.Stack, "\n")
		}
		return out, true
	}
	return Output{}, false
}

// ToHost converts one Deepnote output; nil when it yields no host items
func (c *CellOutputConverter) ToHost(output *Output) *CellOutput {
	if output == nil {
		return nil
	}

	switch output.OutputType {
	case OutputTypeStream:
		text := ""
		if output.Text != nil {
			text = *output.Text
		}
		return &CellOutput{
			Items:    []OutputItem{NewStreamOutputItem(output.Name, text)},
			Metadata: outputMetadataForHost(output),
		}
	case OutputTypeError:
		payload := hostError{
			Name:    output.Ename,
			Message: output.Evalue,
			Stack:   strings.Join(output.Traceback, "\n"),
		}
		data, err := json.Marshal(payload)
		if err != nil {
			LogWarn("Dropping error output %s: %v", output.Ename, err)
			return nil
		}
		return &CellOutput{
			Items:    []OutputItem{{Mime: MimeError, Data: data}},
			Metadata: outputMetadataForHost(output),
		}
	default:
		items := c.rich.ConvertToVSCode(output)
		if len(items) == 0 {
			LogDebug("Skipping %s output with no representable data", output.OutputType)
			return nil
		}
		return &CellOutput{Items: items, Metadata: outputMetadataForHost(output)}
	}
}
