// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines keyboard bindings and shortcuts for the chat
// interface, along with help text for the overlay.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat interface.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Home         key.Binding
	End          key.Binding
	Submit       key.Binding
	Cancel       key.Binding
	TogglePanel  key.Binding
	EditPanel    key.Binding
	SavePanel    key.Binding
	ResetPanel   key.Binding
	ClearHistory key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat interface.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/C-u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn/C-d", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("Home", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("End", "go to bottom"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "ask question"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "stop answer / cancel edit"),
		),
		TogglePanel: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("C-b", "toggle background panel"),
		),
		EditPanel: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit background"),
		),
		SavePanel: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "save background"),
		),
		ResetPanel: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "reset background"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "clear server history"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp returns the key bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.TogglePanel, k.Help, k.Quit}
}

// FullHelp returns all key bindings grouped for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		// Actions
		{k.Submit, k.Cancel, k.ClearHistory},
		// Background panel
		{k.TogglePanel, k.EditPanel, k.SavePanel, k.ResetPanel},
		// Misc
		{k.Help, k.Quit},
	}
}

// HelpItem is a single entry in the help overlay.
type HelpItem struct {
	Key  string
	Desc string
}

// GetHelpItems returns the full list of shortcuts for the help overlay.
func GetHelpItems() []HelpItem {
	return []HelpItem{
		{"Enter", "Ask a question"},
		{"Esc", "Stop answer animation / cancel edit"},
		{"C-b", "Show or hide the background panel"},
		{"e", "Edit background (panel open)"},
		{"C-s", "Save background edit"},
		{"C-r", "Reset background to original"},
		{"C-x", "Clear server-side history"},
		{"up/down", "Scroll the transcript"},
		{"PgUp/PgDn", "Scroll by half a page"},
		{"Home/End", "Jump to top / bottom"},
		{"?", "Toggle this help"},
		{"C-c", "Quit"},
	}
}
