// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"
	"time"
)

func TestTypingTargetIndex(t *testing.T) {
	s := newTypingSession(1, "entry_1", "hello world", 10)

	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{9 * time.Millisecond, 0},
		{10 * time.Millisecond, 1},
		{55 * time.Millisecond, 5},
		{110 * time.Millisecond, 11},
		// Past the end clamps to the text length.
		{500 * time.Millisecond, 11},
	}
	for _, tt := range tests {
		got := s.targetIndex(s.start.Add(tt.elapsed))
		if got != tt.want {
			t.Errorf("targetIndex(+%v) = %d, want %d", tt.elapsed, got, tt.want)
		}
	}
}

func TestTypingVisibleTextIsPrefix(t *testing.T) {
	text := "naïve café response"
	s := newTypingSession(1, "entry_1", text, 10)

	runes := []rune(text)
	for i := 0; i <= len(runes); i++ {
		got := s.visibleText(i)
		want := string(runes[:i])
		if got != want {
			t.Fatalf("visibleText(%d) = %q, want %q", i, got, want)
		}
	}

	// Out of range clamps rather than panicking.
	if got := s.visibleText(len(runes) + 10); got != text {
		t.Errorf("visibleText beyond end = %q, want full text", got)
	}
}

func TestTypingTickInterval(t *testing.T) {
	tests := []struct {
		msPerChar int
		want      time.Duration
	}{
		{1, 5 * time.Millisecond},  // Floor applies
		{10, 5 * time.Millisecond}, // Exactly at the floor
		{20, 10 * time.Millisecond},
		{40, 20 * time.Millisecond},
	}
	for _, tt := range tests {
		s := newTypingSession(1, "entry_1", "x", tt.msPerChar)
		if got := s.tickInterval(); got != tt.want {
			t.Errorf("tickInterval(msPerChar=%d) = %v, want %v", tt.msPerChar, got, tt.want)
		}
	}
}

func TestTypingInvalidSpeedFallsBack(t *testing.T) {
	s := newTypingSession(1, "entry_1", "text", 0)
	if s.msPerChar != DefaultTypingMsPerChar {
		t.Errorf("msPerChar = %d, want default %d", s.msPerChar, DefaultTypingMsPerChar)
	}
}

func TestTypingDone(t *testing.T) {
	s := newTypingSession(1, "entry_1", "abc", 10)
	if s.done() {
		t.Error("fresh session should not be done")
	}
	s.lastIndex = 3
	if !s.done() {
		t.Error("session with full prefix revealed should be done")
	}
}
