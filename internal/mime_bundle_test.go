package internal

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestMimeBundle_Order(t *testing.T) {
	b := NewMimeBundle()
	b.Set("text/plain", "a")
	b.Set("text/html", "<b>a</b>")
	b.Set("application/json", map[string]any{"a": 1})
	b.Set("text/plain", "b")

	want := []string{"text/plain", "text/html", "application/json"}
	if got := b.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if v, _ := b.Get("text/plain"); v != "b" {
		t.Errorf("Get(text/plain) = %v, want b", v)
	}

	b.Delete("text/html")
	b.Delete("image/png")
	if got := b.Keys(); !reflect.DeepEqual(got, []string{"text/plain", "application/json"}) {
		t.Errorf("Keys() after Delete = %v", got)
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
}

func TestMimeBundle_NilSafe(t *testing.T) {
	var b *MimeBundle
	if b.Len() != 0 {
		t.Error("nil bundle Len() should be 0")
	}
	if _, ok := b.Get("text/plain"); ok {
		t.Error("nil bundle Get() should report absent")
	}
	if b.Keys() != nil {
		t.Error("nil bundle Keys() should be nil")
	}
	b.Delete("text/plain")
	b.Range(func(string, any) bool {
		t.Error("nil bundle Range() should not call fn")
		return true
	})
}

func TestMimeBundle_JSONKeepsOrder(t *testing.T) {
	input := `{"text/plain":"42","image/png":"iVBORw0KGgo=","application/json":{"z":1,"a":2}}`

	var b MimeBundle
	if err := json.Unmarshal([]byte(input), &b); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := []string{"text/plain", "image/png", "application/json"}
	if got := b.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	out, err := json.Marshal(&b)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.HasPrefix(string(out), `{"text/plain":"42","image/png":`) {
		t.Errorf("Marshal() = %s, want source key order", out)
	}

	if err := json.Unmarshal([]byte(`["text/plain"]`), &b); err == nil {
		t.Error("Unmarshal() of an array should fail")
	}
}

func TestMimeBundle_YAMLKeepsOrder(t *testing.T) {
	input := "text/plain: hello\ntext/html: <p>hello</p>\napplication/json:\n  answer: 42\n"

	var b MimeBundle
	if err := yaml.Unmarshal([]byte(input), &b); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	want := []string{"text/plain", "text/html", "application/json"}
	if got := b.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	out, err := yaml.Marshal(&b)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	text := string(out)
	if strings.Index(text, "text/plain") > strings.Index(text, "text/html") ||
		strings.Index(text, "text/html") > strings.Index(text, "application/json") {
		t.Errorf("yaml.Marshal() lost key order:\n%s", text)
	}

	if err := yaml.Unmarshal([]byte("- a\n- b\n"), &b); err == nil {
		t.Error("yaml.Unmarshal() of a sequence should fail")
	}
}

func TestMimeBundle_RangeStops(t *testing.T) {
	b := NewMimeBundle()
	b.Set("a/1", 1)
	b.Set("a/2", 2)
	b.Set("a/3", 3)

	var seen []string
	b.Range(func(mime string, _ any) bool {
		seen = append(seen, mime)
		return len(seen) < 2
	})
	if len(seen) != 2 {
		t.Errorf("Range() visited %v, want to stop after 2", seen)
	}
}
