// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}
}

func TestSetSize(t *testing.T) {
	theme := NewTheme()
	theme.SetSize(120, 40)
	if theme.Width != 120 || theme.Height != 40 {
		t.Errorf("SetSize(120, 40) gave %dx%d", theme.Width, theme.Height)
	}
}

func TestCharCountStyle(t *testing.T) {
	theme := NewTheme()

	tests := []struct {
		count int
		want  string
	}{
		{0, "normal"},
		{1600, "normal"},
		{1601, "warning"},
		{1800, "warning"},
		{1801, "danger"},
		{2000, "danger"},
		{2500, "danger"},
	}
	for _, tt := range tests {
		got := theme.CharCountStyle(tt.count)
		var name string
		switch {
		case got.GetBold() && got.GetForeground() == theme.CharCountDanger.GetForeground():
			name = "danger"
		case got.GetForeground() == theme.CharCountWarning.GetForeground():
			name = "warning"
		default:
			name = "normal"
		}
		if name != tt.want {
			t.Errorf("CharCountStyle(%d) = %s, want %s", tt.count, name, tt.want)
		}
	}
}
