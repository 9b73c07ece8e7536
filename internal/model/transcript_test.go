// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

func TestTranscriptAppend(t *testing.T) {
	tr := NewTranscript()
	if tr.Len() != 0 {
		t.Fatalf("expected empty transcript, got %d entries", tr.Len())
	}

	e1 := tr.Append(KindUser, "hello")
	e2 := tr.Append(KindBot, "hi there")

	if tr.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", tr.Len())
	}
	if tr.Entries()[0] != e1 || tr.Entries()[1] != e2 {
		t.Error("entries not in insertion order")
	}
	if tr.Last() != e2 {
		t.Error("Last should return most recent entry")
	}
}

func TestTranscriptFind(t *testing.T) {
	tr := NewTranscript()
	e := tr.Append(KindSystem, "history cleared")
	tr.Append(KindUser, "another")

	if got := tr.Find(e.ID); got != e {
		t.Errorf("Find(%q) = %v, want %v", e.ID, got, e)
	}
	if got := tr.Find("entry_missing"); got != nil {
		t.Errorf("Find on unknown ID = %v, want nil", got)
	}
}

func TestTranscriptEmptyLast(t *testing.T) {
	tr := NewTranscript()
	if tr.Last() != nil {
		t.Error("Last on empty transcript should be nil")
	}
}

func TestPlaceholderEntry(t *testing.T) {
	tr := NewTranscript()
	e := tr.AppendPlaceholder()

	if e.Kind != KindBot {
		t.Errorf("placeholder kind = %q, want %q", e.Kind, KindBot)
	}
	if !e.Loading {
		t.Error("placeholder should start in loading state")
	}
	if !e.IsEmpty() {
		t.Error("placeholder should start empty")
	}
}

func TestEntryIDsUnique(t *testing.T) {
	tr := NewTranscript()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		e := tr.Append(KindUser, "msg")
		if seen[e.ID] {
			t.Fatalf("duplicate entry ID %q", e.ID)
		}
		if !strings.HasPrefix(e.ID, "entry_") {
			t.Fatalf("unexpected ID format %q", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestKindDisplayName(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUser, "You"},
		{KindBot, "Assistant"},
		{KindSystem, "System"},
		{KindError, "Error"},
		{Kind("other"), "other"},
	}
	for _, tt := range tests {
		if got := tt.kind.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestEntryPreview(t *testing.T) {
	tests := []struct {
		name    string
		content string
		maxLen  int
		want    string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"unicode", "héllo wörld", 8, "héllo..."},
		{"tiny max", "hello", 2, "he"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEntry(KindUser, tt.content)
			if got := e.Preview(tt.maxLen); got != tt.want {
				t.Errorf("Preview(%d) = %q, want %q", tt.maxLen, got, tt.want)
			}
		})
	}
}
