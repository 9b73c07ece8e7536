// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file contains the Bubble Tea commands that talk to the backend.
// Each command runs the HTTP call on the Bubble Tea goroutine pool and
// delivers the result as a message; cancellation goes through the
// model's cancelManager.
package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/insightsbot/insights-tui/internal/logging"
)

// askCmd submits a question and delivers the answer for entryID.
// The request context is registered with the cancel manager so Esc
// aborts the in-flight call. The background text rides along only
// when it has been locally edited; otherwise the server's stored
// state is authoritative.
func (m *Model) askCmd(entryID, question string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelMgr.set(cancel)

	var background string
	if m.panel.info != nil && m.panel.info.IsEdited {
		background = m.panel.info.CurrentBackground
	}

	backend := m.backend
	return func() tea.Msg {
		resp, err := backend.Ask(ctx, question, background)
		if err != nil {
			logging.Errorf("ask failed: %v", err)
			return AskResultMsg{EntryID: entryID, Err: err}
		}
		return AskResultMsg{EntryID: entryID, Response: resp}
	}
}

// loadBackgroundCmd fetches the background info for the panel.
func (m *Model) loadBackgroundCmd() tea.Cmd {
	backend := m.backend
	timeout := m.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		info, err := backend.GetBackground(ctx)
		if err != nil {
			logging.Warnf("background fetch failed: %v", err)
			return BackgroundLoadedMsg{Err: err}
		}
		return BackgroundLoadedMsg{Info: info}
	}
}

// saveBackgroundCmd sends edited background text to the server.
func (m *Model) saveBackgroundCmd(text string) tea.Cmd {
	backend := m.backend
	timeout := m.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := backend.UpdateBackground(ctx, text)
		if err != nil {
			logging.Errorf("background save failed: %v", err)
			return BackgroundSavedMsg{Err: err}
		}
		return BackgroundSavedMsg{Response: resp}
	}
}

// resetBackgroundCmd restores the original background on the server.
func (m *Model) resetBackgroundCmd() tea.Cmd {
	backend := m.backend
	timeout := m.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := backend.ResetBackground(ctx)
		if err != nil {
			logging.Errorf("background reset failed: %v", err)
			return BackgroundResetMsg{Err: err}
		}
		return BackgroundResetMsg{Response: resp}
	}
}

// clearHistoryCmd wipes the server-side conversation history.
func (m *Model) clearHistoryCmd() tea.Cmd {
	backend := m.backend
	timeout := m.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := backend.ClearHistory(ctx)
		if err != nil {
			logging.Errorf("history clear failed: %v", err)
			return HistoryClearedMsg{Err: err}
		}
		return HistoryClearedMsg{Message: resp.Message}
	}
}
