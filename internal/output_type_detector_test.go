package internal

import "testing"

func TestOutputTypeDetector_Mimes(t *testing.T) {
	d := NewOutputTypeDetector()

	tests := []struct {
		mime       string
		wantStream bool
		wantError  bool
		wantName   string
	}{
		{MimeStdout, true, false, StreamStdout},
		{MimeStderr, true, false, StreamStderr},
		{"Application/VND.code.notebook.stdout", true, false, StreamStdout},
		{MimeError, false, true, ""},
		{"text/plain", false, false, ""},
		{"", false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			if got := d.IsStreamMime(tt.mime); got != tt.wantStream {
				t.Errorf("IsStreamMime(%q) = %v, want %v", tt.mime, got, tt.wantStream)
			}
			if got := d.IsErrorMime(tt.mime); got != tt.wantError {
				t.Errorf("IsErrorMime(%q) = %v, want %v", tt.mime, got, tt.wantError)
			}
			if name, _ := d.StreamName(tt.mime); name != tt.wantName {
				t.Errorf("StreamName(%q) = %q, want %q", tt.mime, name, tt.wantName)
			}
		})
	}
}

func TestOutputTypeDetector_DetectOutputType(t *testing.T) {
	d := NewOutputTypeDetector()

	tests := []struct {
		name   string
		output *CellOutput
		want   OutputKind
	}{
		{"nil output", nil, OutputKindRich},
		{"no items", &CellOutput{}, OutputKindRich},
		{
			name:   "stdout only",
			output: &CellOutput{Items: []OutputItem{NewStreamOutputItem(StreamStdout, "hi")}},
			want:   OutputKindStream,
		},
		{
			name: "mixed streams",
			output: &CellOutput{Items: []OutputItem{
				NewStreamOutputItem(StreamStdout, "a"),
				NewStreamOutputItem(StreamStderr, "b"),
			}},
			want: OutputKindStream,
		},
		{
			name:   "error wins",
			output: &CellOutput{Items: []OutputItem{NewTextOutputItem("x"), {Mime: MimeError, Data: []byte("{}")}}},
			want:   OutputKindError,
		},
		{
			name:   "stream plus display",
			output: &CellOutput{Items: []OutputItem{NewStreamOutputItem(StreamStdout, "a"), NewTextOutputItem("b")}},
			want:   OutputKindRich,
		},
		{
			name:   "display",
			output: &CellOutput{Items: []OutputItem{{Mime: "image/png", Data: []byte{0x89}}}},
			want:   OutputKindRich,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.DetectOutputType(tt.output); got != tt.want {
				t.Errorf("DetectOutputType() = %v, want %v", got, tt.want)
			}
		})
	}
}
