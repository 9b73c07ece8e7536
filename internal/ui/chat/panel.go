// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file implements the background info panel: a collapsible view of
// the company background text with an inline editor. The panel moves
// through display, edit, and reset-confirmation modes; edits are staged
// in a textarea and only reach the server on an explicit save.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"

	"github.com/insightsbot/insights-tui/internal/api"
)

// =============================================================================
// PANEL MODES
// =============================================================================

// panelMode represents the current mode of the background panel.
type panelMode int

const (
	panelHidden       panelMode = iota // Panel collapsed
	panelDisplay                       // Showing background read-only
	panelEdit                          // Editing background text
	panelConfirmReset                  // Awaiting y/n for reset
)

// =============================================================================
// BACKGROUND PANEL
// =============================================================================

// backgroundPanel holds the panel state. Held by pointer on the Model
// so editor state survives Bubble Tea model copies.
type backgroundPanel struct {
	mode   panelMode
	info   *api.BackgroundInfo
	editor textarea.Model

	// rollback is the text captured when editing began; cancel restores it.
	rollback string

	// busy is true while a save or reset request is in flight. Edit
	// keys are ignored until the result arrives.
	busy bool

	// loadErr holds the last background fetch error, shown in the panel.
	loadErr error
}

// newBackgroundPanel creates a hidden panel with an unfocused editor.
func newBackgroundPanel() *backgroundPanel {
	ta := textarea.New()
	ta.Placeholder = "Enter company background..."
	ta.CharLimit = api.MaxBackgroundLength + 200 // Soft limit; save enforces the cap
	ta.ShowLineNumbers = false
	ta.SetHeight(8)
	return &backgroundPanel{
		mode:   panelHidden,
		editor: ta,
	}
}

// visible reports whether the panel occupies screen space.
func (p *backgroundPanel) visible() bool {
	return p.mode != panelHidden
}

// editing reports whether the editor owns key input.
func (p *backgroundPanel) editing() bool {
	return p.mode == panelEdit
}

// toggle shows or hides the panel. Hiding while editing discards the
// staged edit, same as cancel.
func (p *backgroundPanel) toggle() {
	if p.visible() {
		if p.editing() {
			p.cancelEdit()
		}
		p.mode = panelHidden
		return
	}
	p.mode = panelDisplay
}

// setInfo replaces the panel's background info after a fetch or a
// server-confirmed save/reset.
func (p *backgroundPanel) setInfo(info *api.BackgroundInfo) {
	p.info = info
	p.loadErr = nil
}

// beginEdit switches to edit mode, staging the current text for rollback.
func (p *backgroundPanel) beginEdit() {
	if p.info == nil || p.busy {
		return
	}
	p.rollback = p.info.CurrentBackground
	p.editor.SetValue(p.info.CurrentBackground)
	p.editor.Focus()
	p.editor.CursorEnd()
	p.mode = panelEdit
}

// cancelEdit discards the staged edit and restores the rollback text.
func (p *backgroundPanel) cancelEdit() {
	p.editor.SetValue(p.rollback)
	p.editor.Blur()
	p.mode = panelDisplay
}

// finishEdit leaves edit mode after a server-confirmed save.
func (p *backgroundPanel) finishEdit() {
	p.editor.Blur()
	p.mode = panelDisplay
}

// charCount returns the rune count of the staged edit text.
func (p *backgroundPanel) charCount() int {
	return len([]rune(p.editor.Value()))
}

// validateEdit checks the staged text against the save rules. Returns
// a user-facing problem description, or empty when the text can be sent.
func (p *backgroundPanel) validateEdit() string {
	n := p.charCount()
	switch {
	case strings.TrimSpace(p.editor.Value()) == "":
		return "Background text cannot be empty"
	case n > api.MaxBackgroundLength:
		return "Background text is too long (max 2000 characters)"
	default:
		return ""
	}
}
