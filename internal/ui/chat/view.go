// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file contains all rendering logic for the chat interface:
//   - Main view composition (renderChat)
//   - Transcript rendering per entry kind
//   - Background panel rendering (display, edit, confirm modes)
//   - Header, input area, and status bar
//
// Layout heights are fixed constants; the viewport absorbs whatever
// vertical space remains.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/insightsbot/insights-tui/internal/api"
	"github.com/insightsbot/insights-tui/internal/model"
)

// Fixed chrome heights. These MUST stay in sync with the strings the
// render functions below produce; recalcViewport() uses them to size
// the transcript viewport.
const (
	headerHeight    = 2 // Title line + blank separator
	inputAreaHeight = 2 // Separator border + input line
	statusBarHeight = 1
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// renderChat renders the complete chat view.
// Layout: header + [background panel] + transcript viewport + input + status.
func (m Model) renderChat() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	sections := []string{m.renderHeader()}
	if m.panel.visible() {
		sections = append(sections, m.renderPanel())
	}
	sections = append(sections,
		m.viewport.View(),
		m.renderInput(),
		m.renderStatusBar(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title line.
func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("Marketing Insights Bot")

	var stats string
	if m.totalRecords > 0 {
		stats = m.theme.HeaderSubtitle.Render(
			fmt.Sprintf("%d records loaded", m.totalRecords))
	}

	line := title
	if stats != "" {
		gap := m.width - lipgloss.Width(title) - lipgloss.Width(stats) - 2
		if gap > 0 {
			line = title + strings.Repeat(" ", gap) + stats
		}
	}
	return line + "\n"
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// renderEntries renders the full transcript for the viewport.
func (m Model) renderEntries() string {
	entries := m.transcript.Entries()
	if len(entries) == 0 {
		return m.theme.InputPlaceholder.Render("No messages yet. Ask a question to get started.")
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, m.renderEntry(e))
	}
	return strings.Join(parts, "\n\n")
}

// renderEntry renders one transcript entry with its label line.
func (m Model) renderEntry(e *model.Entry) string {
	ts := m.theme.Timestamp.Render(formatTimestamp(e.Timestamp))

	switch e.Kind {
	case model.KindUser:
		label := m.theme.UserLabel.Render(e.Kind.DisplayName())
		// User text is literal; wrapped but never parsed as markup.
		body := m.theme.UserText.Render(wrapText(e.Content, m.contentWidth()))
		return label + " " + ts + "\n" + body

	case model.KindBot:
		label := m.theme.BotLabel.Render(e.Kind.DisplayName())
		if e.Loading {
			body := m.theme.Spinner.Render(m.spinner.View()) + " " +
				m.theme.ThinkingText.Render("Analyzing...")
			return label + " " + ts + "\n" + body
		}
		// An entry whose reveal has not produced any text yet renders
		// as its label alone.
		if e.IsEmpty() {
			return label + " " + ts
		}
		return label + " " + ts + "\n" + m.markdown.Render(e.Content)

	case model.KindError:
		label := m.theme.ErrorLabel.Render("✗ " + e.Kind.DisplayName())
		body := m.theme.ErrorText.Render(wrapText(e.Content, m.contentWidth()))
		return label + " " + ts + "\n" + body

	default: // model.KindSystem
		body := m.theme.SystemText.Render("— " + e.Content + " —")
		return body
	}
}

// contentWidth returns the wrap width for plain-text entries.
func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// =============================================================================
// BACKGROUND PANEL RENDERING
// =============================================================================

// panelHeight returns the rows the panel occupies in its current mode.
func (m Model) panelHeight() int {
	return lipgloss.Height(m.renderPanel())
}

// renderPanel renders the background panel for its current mode.
func (m Model) renderPanel() string {
	var body string

	switch m.panel.mode {
	case panelEdit:
		body = m.renderPanelEdit()
	case panelConfirmReset:
		body = m.renderPanelConfirm()
	default:
		body = m.renderPanelDisplay()
	}

	width := m.width - 4
	if width < 30 {
		width = 30
	}
	return m.theme.PanelBox.Width(width).Render(body)
}

func (m Model) renderPanelDisplay() string {
	title := m.theme.PanelTitle.Render("Company Background")
	if m.panel.info != nil && m.panel.info.IsEdited {
		title += " " + m.theme.PanelEditedBadge.Render("(edited)")
	}

	var body string
	switch {
	case m.panel.loadErr != nil:
		body = m.theme.ErrorText.Render("Could not load background: " + m.panel.loadErr.Error())
	case m.panel.info == nil:
		body = m.theme.InputPlaceholder.Render("Loading background...")
	default:
		body = m.theme.PanelBody.Render(wrapText(m.panel.info.CurrentBackground, m.width-10))
	}

	hint := m.theme.ShortcutDesc.Render("e edit • C-r reset • C-b close")
	return title + "\n" + body + "\n" + hint
}

func (m Model) renderPanelEdit() string {
	title := m.theme.PanelTitle.Render("Edit Background")

	count := m.panel.charCount()
	counter := m.theme.CharCountStyle(count).Render(
		fmt.Sprintf("%d/%d", count, api.MaxBackgroundLength))

	var saving string
	if m.panel.busy {
		saving = m.theme.ThinkingText.Render(" saving...")
	}

	hint := m.theme.ShortcutDesc.Render("C-s save • Esc cancel")
	return title + "\n" + m.panel.editor.View() + "\n" + counter + saving + "  " + hint
}

func (m Model) renderPanelConfirm() string {
	title := m.theme.PanelTitle.Render("Company Background")
	prompt := m.theme.ConfirmPrompt.Render("Reset background to original? (y/n)")
	return title + "\n" + prompt
}

// =============================================================================
// INPUT AND STATUS
// =============================================================================

// renderInput renders the question input line with its top border.
func (m Model) renderInput() string {
	switch m.state {
	case StateAsking:
		return m.theme.InputContainer.Width(m.width - 2).Render(
			m.theme.Spinner.Render(m.spinner.View()) + " " +
				m.theme.ThinkingText.Render("Waiting for answer... (Esc to cancel)"))
	case StateTyping:
		return m.theme.InputContainer.Width(m.width - 2).Render(
			m.theme.ThinkingText.Render("Typing answer... (Esc to stop)"))
	default:
		return m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())
	}
}

// renderStatusBar renders the bottom status line.
func (m Model) renderStatusBar() string {
	var left string
	if m.statusMsg != "" {
		left = m.statusMsg
	} else {
		var hints []string
		for _, b := range m.keyMap.ShortHelp() {
			hints = append(hints,
				m.theme.ShortcutKey.Render(b.Help().Key)+" "+
					m.theme.ShortcutDesc.Render(b.Help().Desc))
		}
		left = strings.Join(hints, "  ")
	}

	var right string
	if m.conversationLength > 0 {
		right = m.theme.StatsValue.Render(fmt.Sprintf("%d exchanges", m.conversationLength))
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return m.theme.StatusBar.Width(m.width).Render(
		left + strings.Repeat(" ", gap) + right)
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

// renderHelpOverlay renders the full-screen help view.
func (m Model) renderHelpOverlay() string {
	var sb strings.Builder
	sb.WriteString(m.theme.HeaderTitle.Render("Keyboard Shortcuts"))
	sb.WriteString("\n\n")

	for _, item := range GetHelpItems() {
		key := m.theme.ShortcutKey.Render(fmt.Sprintf("%-12s", item.Key))
		sb.WriteString("  " + key + " " + m.theme.ShortcutDesc.Render(item.Desc) + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.theme.InputPlaceholder.Render("Press ? or Esc to close"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}
