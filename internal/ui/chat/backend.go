// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/insightsbot/insights-tui/internal/api"
)

// Backend is the subset of the API client the chat view depends on.
// Defined here so tests can substitute a stub.
type Backend interface {
	Ask(ctx context.Context, question, background string) (*api.AskResponse, error)
	GetBackground(ctx context.Context) (*api.BackgroundInfo, error)
	UpdateBackground(ctx context.Context, background string) (*api.UpdateBackgroundResponse, error)
	ResetBackground(ctx context.Context) (*api.UpdateBackgroundResponse, error)
	ClearHistory(ctx context.Context) (*api.ClearHistoryResponse, error)
}
