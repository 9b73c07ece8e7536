// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// wrapText wraps text at word boundaries to fit the given width.
// Words longer than the width are broken mid-word. Existing newlines
// are preserved.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var wrapped []string
	var current strings.Builder
	currentWidth := 0

	for _, word := range strings.Fields(line) {
		wordWidth := runewidth.StringWidth(word)

		// Break words that can never fit on one line.
		for wordWidth > width {
			if currentWidth > 0 {
				wrapped = append(wrapped, current.String())
				current.Reset()
				currentWidth = 0
			}
			head := runewidth.Truncate(word, width, "")
			wrapped = append(wrapped, head)
			word = word[len(head):]
			wordWidth = runewidth.StringWidth(word)
		}

		sep := 0
		if currentWidth > 0 {
			sep = 1
		}
		if currentWidth+sep+wordWidth > width {
			wrapped = append(wrapped, current.String())
			current.Reset()
			currentWidth = 0
			sep = 0
		}
		if sep == 1 {
			current.WriteByte(' ')
			currentWidth++
		}
		current.WriteString(word)
		currentWidth += wordWidth
	}

	if current.Len() > 0 {
		wrapped = append(wrapped, current.String())
	}
	if len(wrapped) == 0 {
		wrapped = []string{""}
	}
	return wrapped
}

// formatTimestamp formats an entry timestamp for display.
func formatTimestamp(t time.Time) string {
	return t.Format("15:04")
}
