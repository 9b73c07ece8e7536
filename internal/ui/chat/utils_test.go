// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"testing"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"short line untouched", "hello", 20, "hello"},
		{"wraps at word boundary", "hello brave new world", 11, "hello brave\nnew world"},
		{"preserves newlines", "one\ntwo", 20, "one\ntwo"},
		{"zero width untouched", "hello world", 0, "hello world"},
		{"empty string", "", 10, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapText(tt.input, tt.width); got != tt.want {
				t.Errorf("wrapText(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrapTextBreaksLongWords(t *testing.T) {
	long := strings.Repeat("a", 25)
	got := wrapText(long, 10)
	for i, line := range strings.Split(got, "\n") {
		if len(line) > 10 {
			t.Errorf("line %d exceeds width: %q", i, line)
		}
	}
	if strings.ReplaceAll(got, "\n", "") != long {
		t.Error("breaking a long word must not lose characters")
	}
}

func TestWrapTextLineWidths(t *testing.T) {
	input := "the quick brown fox jumps over the lazy dog"
	for _, line := range strings.Split(wrapText(input, 15), "\n") {
		if len(line) > 15 {
			t.Errorf("line too long: %q", line)
		}
	}
}
