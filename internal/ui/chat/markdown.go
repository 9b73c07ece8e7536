// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdownRenderer wraps a glamour renderer and rebuilds it when the
// wrap width changes. Rendering falls back to the raw source on error
// so a malformed answer never blanks the transcript.
type markdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

func newMarkdownRenderer(width int) *markdownRenderer {
	mr := &markdownRenderer{}
	mr.setWidth(width)
	return mr
}

// setWidth rebuilds the underlying renderer if the width changed.
func (mr *markdownRenderer) setWidth(width int) {
	if width < 20 {
		width = 20
	}
	if mr.renderer != nil && mr.width == width {
		return
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Keep the previous renderer, or none; Render handles nil.
		return
	}
	mr.renderer = r
	mr.width = width
}

// Render converts markdown to styled terminal output.
func (mr *markdownRenderer) Render(markdown string) string {
	if mr.renderer == nil {
		return markdown
	}
	out, err := mr.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(out, "\n")
}
