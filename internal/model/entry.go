// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// KIND TYPE
// =============================================================================

// Kind classifies a transcript entry by its author and rendering rules.
type Kind string

const (
	// KindUser entries hold the user's prompt verbatim, rendered as
	// literal text so input is never interpreted as markup.
	KindUser Kind = "user"
	// KindBot entries hold markdown produced by the backend.
	KindBot Kind = "bot"
	// KindSystem entries hold short, internally-constructed confirmations.
	KindSystem Kind = "system"
	// KindError entries hold literal error text shown with an error marker.
	KindError Kind = "error"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// DisplayName returns a human-readable label for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindUser:
		return "You"
	case KindBot:
		return "Assistant"
	case KindSystem:
		return "System"
	case KindError:
		return "Error"
	default:
		return string(k)
	}
}

// =============================================================================
// ENTRY TYPE
// =============================================================================

// Entry is a single item in the chat transcript.
type Entry struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Timestamp time.Time `json:"timestamp"`

	// Content is literal text for user/error entries and markdown source
	// for bot entries. Rendering happens in the view layer.
	Content string `json:"content"`

	// Loading marks a placeholder bot entry whose response has not
	// arrived yet.
	Loading bool `json:"-"`
}

// NewEntry creates a new entry with a generated ID.
func NewEntry(kind Kind, content string) *Entry {
	return &Entry{
		ID:        generateID(),
		Kind:      kind,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewPlaceholder creates an empty bot entry in the loading state.
func NewPlaceholder() *Entry {
	e := NewEntry(KindBot, "")
	e.Loading = true
	return e
}

// IsEmpty returns true if the entry has no content.
func (e *Entry) IsEmpty() bool {
	return len(e.Content) == 0
}

// Preview returns a truncated preview of the entry content.
// Uses rune-based truncation to handle Unicode correctly.
func (e *Entry) Preview(maxLen int) string {
	runes := []rune(e.Content)
	if len(runes) <= maxLen {
		return e.Content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// generateID creates a unique entry ID.
func generateID() string {
	return "entry_" + uuid.NewString()
}
