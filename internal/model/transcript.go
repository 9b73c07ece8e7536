// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is an append-only list of chat entries. Entries are added
// and updated in place; they are never removed, so the visible history
// survives backend-side resets.
type Transcript struct {
	entries []*Entry
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append creates a new entry of the given kind and adds it to the end
// of the transcript. Returns the created entry.
func (t *Transcript) Append(kind Kind, content string) *Entry {
	e := NewEntry(kind, content)
	t.entries = append(t.entries, e)
	return e
}

// AppendPlaceholder adds an empty loading bot entry and returns it.
func (t *Transcript) AppendPlaceholder() *Entry {
	e := NewPlaceholder()
	t.entries = append(t.entries, e)
	return e
}

// Entries returns the transcript entries in insertion order.
// The returned slice must not be modified.
func (t *Transcript) Entries() []*Entry {
	return t.entries
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// Last returns the most recent entry, or nil if the transcript is empty.
func (t *Transcript) Last() *Entry {
	if len(t.entries) == 0 {
		return nil
	}
	return t.entries[len(t.entries)-1]
}

// Find returns the entry with the given ID, or nil if not found.
func (t *Transcript) Find(id string) *Entry {
	for _, e := range t.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}
