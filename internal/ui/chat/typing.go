// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file implements the typewriter animation for bot answers. The
// full answer text is known up front; the animation reveals a rune
// prefix whose length is derived from elapsed wall-clock time, so the
// reveal rate stays constant even when individual ticks are delayed.
package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// minTickInterval is the floor on the animation tick period.
	minTickInterval = 5 * time.Millisecond

	// DefaultTypingMsPerChar is the reveal speed when config gives none.
	DefaultTypingMsPerChar = 10
)

// typingSession holds the state of one typewriter animation run.
// It is held by pointer on the Model so tick handlers observe updates
// made by earlier ticks despite Bubble Tea copying the model.
type typingSession struct {
	gen        int       // Animation generation, matched against tick messages
	entryID    string    // Transcript entry being revealed
	text       []rune    // Full answer text
	msPerChar  int       // Reveal speed
	start      time.Time // Animation start, drives the target index
	lastIndex  int       // Last revealed prefix length
	lastRender string    // Last rendered output, for render dedup
}

// newTypingSession starts an animation for the given entry and text.
func newTypingSession(gen int, entryID, text string, msPerChar int) *typingSession {
	if msPerChar < 1 {
		msPerChar = DefaultTypingMsPerChar
	}
	return &typingSession{
		gen:       gen,
		entryID:   entryID,
		text:      []rune(text),
		msPerChar: msPerChar,
		start:     time.Now(),
	}
}

// targetIndex returns the prefix length that should be visible at the
// given time. Derived from elapsed time rather than tick count, so a
// stalled event loop catches up instead of slowing the reveal.
func (s *typingSession) targetIndex(now time.Time) int {
	elapsed := now.Sub(s.start).Milliseconds()
	idx := int(elapsed) / s.msPerChar
	if idx > len(s.text) {
		idx = len(s.text)
	}
	return idx
}

// visibleText returns the revealed prefix for the given target index.
func (s *typingSession) visibleText(idx int) string {
	if idx > len(s.text) {
		idx = len(s.text)
	}
	return string(s.text[:idx])
}

// done reports whether the full text has been revealed.
func (s *typingSession) done() bool {
	return s.lastIndex >= len(s.text)
}

// tickInterval returns the tick period for the session's reveal speed.
// Ticking at half the per-character interval keeps the reveal smooth
// without waking up more often than needed.
func (s *typingSession) tickInterval() time.Duration {
	interval := time.Duration(s.msPerChar) * time.Millisecond / 2
	if interval < minTickInterval {
		interval = minTickInterval
	}
	return interval
}

// typingTickCmd schedules the next animation tick for a generation.
func typingTickCmd(gen int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return NewTypingTickMsg(gen)
	})
}
