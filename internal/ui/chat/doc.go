// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the interactive chat view.
//
// The view runs a single-question-at-a-time loop: a submitted question
// appends a user entry and a loading placeholder, the answer arrives as
// one response, and a typewriter animation reveals it character by
// character. A collapsible panel shows the company background text the
// backend analyzes against, with inline editing, length validation, and
// a confirmed reset.
//
// States:
//
//	StateReady  - accepting input
//	StateAsking - question in flight, spinner shown
//	StateTyping - answer revealing, Esc stops early
//
// The transcript is append-only. Clearing the server-side history adds
// a system entry but removes nothing from the visible log.
package chat
