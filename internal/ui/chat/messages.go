// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file defines all Bubble Tea message types used by the chat interface.
// Messages are organized into the following categories:
//   - Ask: Question submission results
//   - Typing: Typewriter animation ticks
//   - Background: Panel load, save, and reset results
//   - History: Server-side history clearing
//
// All message types follow Bubble Tea conventions and are immutable.
package chat

import (
	"time"

	"github.com/insightsbot/insights-tui/internal/api"
)

// =============================================================================
// ASK MESSAGES
// =============================================================================

// AskResultMsg delivers the outcome of a question sent to the backend.
// EntryID identifies the placeholder entry the answer belongs to.
type AskResultMsg struct {
	EntryID  string
	Response *api.AskResponse
	Err      error
}

// =============================================================================
// TYPING MESSAGES
// =============================================================================

// TypingTickMsg advances the typewriter animation. Gen identifies the
// animation run it belongs to; ticks from a superseded run are dropped.
type TypingTickMsg struct {
	Gen  int
	Time time.Time
}

// NewTypingTickMsg creates a tick for the given animation generation.
func NewTypingTickMsg(gen int) TypingTickMsg {
	return TypingTickMsg{Gen: gen, Time: time.Now()}
}

// =============================================================================
// BACKGROUND PANEL MESSAGES
// =============================================================================

// BackgroundLoadedMsg delivers the background info fetch result.
type BackgroundLoadedMsg struct {
	Info *api.BackgroundInfo
	Err  error
}

// BackgroundSavedMsg delivers the result of saving edited background text.
type BackgroundSavedMsg struct {
	Response *api.UpdateBackgroundResponse
	Err      error
}

// BackgroundResetMsg delivers the result of resetting background text.
type BackgroundResetMsg struct {
	Response *api.UpdateBackgroundResponse
	Err      error
}

// =============================================================================
// HISTORY MESSAGES
// =============================================================================

// HistoryClearedMsg delivers the result of a server-side history clear.
type HistoryClearedMsg struct {
	Message string
	Err     error
}
