// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/insightsbot/insights-tui/internal/api"
	"github.com/insightsbot/insights-tui/internal/model"
)

func panelWithInfo(text string) *backgroundPanel {
	p := newBackgroundPanel()
	p.setInfo(&api.BackgroundInfo{
		CompanyID:         "company1",
		CurrentBackground: text,
		CharacterCount:    len([]rune(text)),
	})
	return p
}

func TestPanelToggle(t *testing.T) {
	p := newBackgroundPanel()
	if p.visible() {
		t.Error("panel should start hidden")
	}
	p.toggle()
	if p.mode != panelDisplay {
		t.Errorf("mode = %v, want display", p.mode)
	}
	p.toggle()
	if p.visible() {
		t.Error("second toggle should hide the panel")
	}
}

func TestPanelEditAndCancelRestoresOriginal(t *testing.T) {
	p := panelWithInfo("Original background.")
	p.toggle()
	p.beginEdit()

	if p.mode != panelEdit {
		t.Fatalf("mode = %v, want edit", p.mode)
	}
	if p.editor.Value() != "Original background." {
		t.Errorf("editor seeded with %q", p.editor.Value())
	}

	p.editor.SetValue("Something entirely different")
	p.cancelEdit()

	if p.mode != panelDisplay {
		t.Errorf("mode after cancel = %v, want display", p.mode)
	}
	if p.editor.Value() != "Original background." {
		t.Errorf("cancel should restore staged text, got %q", p.editor.Value())
	}
	if p.info.CurrentBackground != "Original background." {
		t.Error("cancel must not touch the stored info")
	}
}

func TestPanelToggleWhileEditingDiscards(t *testing.T) {
	p := panelWithInfo("Original.")
	p.toggle()
	p.beginEdit()
	p.editor.SetValue("Discarded edit")

	p.toggle()

	if p.visible() {
		t.Error("toggle should hide the panel")
	}
	if p.editor.Value() != "Original." {
		t.Errorf("edit should be discarded, got %q", p.editor.Value())
	}
}

func TestPanelValidateEdit(t *testing.T) {
	p := panelWithInfo("x")
	p.toggle()
	p.beginEdit()

	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"empty", "", true},
		{"whitespace only", "  \n  ", true},
		{"normal", "A fine background.", false},
		{"at cap", strings.Repeat("x", api.MaxBackgroundLength), false},
		{"over cap", strings.Repeat("x", api.MaxBackgroundLength+1), true},
		{"multibyte at cap", strings.Repeat("é", api.MaxBackgroundLength), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.editor.SetValue(tt.text)
			problem := p.validateEdit()
			if tt.wantErr && problem == "" {
				t.Error("expected a validation problem")
			}
			if !tt.wantErr && problem != "" {
				t.Errorf("unexpected problem: %s", problem)
			}
		})
	}
}

func TestPanelCharCountCountsRunes(t *testing.T) {
	p := panelWithInfo("x")
	p.toggle()
	p.beginEdit()
	p.editor.SetValue("héllo")
	if got := p.charCount(); got != 5 {
		t.Errorf("charCount = %d, want 5", got)
	}
}

func TestSaveInvalidTextNeverReachesBackend(t *testing.T) {
	backend := &stubBackend{}
	m := newTestModel(backend)
	m.panel = panelWithInfo("Original.")
	m.panel.toggle()
	m.panel.beginEdit()
	m.panel.editor.SetValue("")

	res, cmd := m.handleEditKey(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = asModel(t, res)

	if cmd != nil {
		t.Error("invalid save must not produce a backend command")
	}
	if backend.saveCalls != 0 {
		t.Errorf("saveCalls = %d, want 0", backend.saveCalls)
	}
	last := m.transcript.Last()
	if last == nil || last.Kind != model.KindError {
		t.Error("a validation problem should be logged as an error entry")
	}
	if m.panel.mode != panelEdit {
		t.Error("invalid save should stay in edit mode")
	}

	// Over the cap is also rejected locally.
	m.panel.editor.SetValue(strings.Repeat("x", api.MaxBackgroundLength+1))
	_, cmd = m.handleEditKey(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil || backend.saveCalls != 0 {
		t.Error("over-cap save must not produce a backend command")
	}
}

func TestSaveSuccessLeavesEditMode(t *testing.T) {
	backend := &stubBackend{}
	m := newTestModel(backend)
	m.panel = panelWithInfo("Original.")
	m.panel.toggle()
	m.panel.beginEdit()
	m.panel.editor.SetValue("New background.")
	m.panel.busy = true

	res, _ := m.handleBackgroundSaved(BackgroundSavedMsg{
		Response: &api.UpdateBackgroundResponse{
			Message: "updated",
			BackgroundInfo: &api.BackgroundInfo{
				CompanyID:         "company1",
				CurrentBackground: "New background.",
				IsEdited:          true,
			},
		},
	})
	m = asModel(t, res)

	if m.panel.mode != panelDisplay {
		t.Errorf("mode = %v, want display after save", m.panel.mode)
	}
	if m.panel.busy {
		t.Error("busy should clear after the save result")
	}
	if !m.panel.info.IsEdited || m.panel.info.CurrentBackground != "New background." {
		t.Errorf("info not updated: %+v", m.panel.info)
	}
	last := m.transcript.Last()
	if last == nil || last.Kind != model.KindSystem || last.Content != "updated" {
		t.Error("save success should log the server's confirmation as a system entry")
	}
}

func TestSaveFailureStaysInEditMode(t *testing.T) {
	m := newTestModel(&stubBackend{})
	m.panel = panelWithInfo("Original.")
	m.panel.toggle()
	m.panel.beginEdit()
	m.panel.editor.SetValue("New text")
	m.panel.busy = true

	res, _ := m.handleBackgroundSaved(BackgroundSavedMsg{Err: errFailed})
	m = asModel(t, res)

	if m.panel.mode != panelEdit {
		t.Error("failed save should stay in edit mode")
	}
	if m.panel.editor.Value() != "New text" {
		t.Error("failed save should keep the staged text")
	}
}

var errFailed = &api.APIError{Status: 500, Message: "server error"}

func TestConfirmResetFlow(t *testing.T) {
	m := newTestModel(&stubBackend{})
	m.panel = panelWithInfo("Edited.")
	m.panel.toggle()

	// Ctrl+R arms the confirmation.
	res, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = asModel(t, res)
	if m.panel.mode != panelConfirmReset {
		t.Fatalf("mode = %v, want confirm", m.panel.mode)
	}

	// "n" declines.
	res, cmd := m.handleConfirmResetKey("n")
	m = asModel(t, res)
	if m.panel.mode != panelDisplay || cmd != nil {
		t.Error("declining must return to display without a command")
	}

	// "y" confirms and issues the reset command.
	m.panel.mode = panelConfirmReset
	res, cmd = m.handleConfirmResetKey("y")
	m = asModel(t, res)
	if cmd == nil {
		t.Error("confirming should produce a reset command")
	}
	if !m.panel.busy {
		t.Error("panel should be busy while the reset is in flight")
	}
}
