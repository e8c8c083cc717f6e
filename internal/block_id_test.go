package internal

import (
	"regexp"
	"testing"
)

var blockIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestGenerateBlockID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateBlockID()
		if !blockIDPattern.MatchString(id) {
			t.Fatalf("GenerateBlockID() = %q, want 32 lowercase hex characters", id)
		}
		if seen[id] {
			t.Fatalf("GenerateBlockID() repeated %q", id)
		}
		seen[id] = true
	}
}

func TestGenerateSortingKey(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "a0"},
		{1, "a1"},
		{10, "a10"},
		{123, "a123"},
	}

	for _, tt := range tests {
		if got := GenerateSortingKey(tt.index); got != tt.want {
			t.Errorf("GenerateSortingKey(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestCompareSortingKeys(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"a0", "a1", -1},
		{"a9", "a10", -1},
		{"a10", "a9", 1},
		{"a3", "a3", 0},
		{"a0", "a00", -1},
		{"a+1", "a0", -1},
		{"a1V", "a2", -1},
		{"b", "a5", 1},
		{"", "a0", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := CompareSortingKeys(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareSortingKeys(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
