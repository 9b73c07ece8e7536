// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// BackgroundInfo describes the company background text and its edit state.
type BackgroundInfo struct {
	CompanyID          string `json:"company_id"`
	CurrentBackground  string `json:"current_background"`
	OriginalBackground string `json:"original_background,omitempty"`
	IsEdited           bool   `json:"is_edited"`
	CharacterCount     int    `json:"character_count"`
}

// AskRequest is the body sent to the ask endpoint. Background is only
// set when the user has locally edited the background text; otherwise
// the server's own stored state is authoritative.
type AskRequest struct {
	Prompt     string `json:"prompt"`
	CompanyID  string `json:"company_id"`
	Background string `json:"background,omitempty"`
}

// AskResponse is the answer from the ask endpoint. A 200 response can
// still carry an error field instead of insights.
type AskResponse struct {
	Insights           string          `json:"insights"`
	Error              string          `json:"error,omitempty"`
	TotalRecords       int             `json:"total_records"`
	ConversationLength int             `json:"conversation_length"`
	BackgroundInfo     *BackgroundInfo `json:"background_info,omitempty"`
	Warning            string          `json:"warning,omitempty"`
}

// UpdateBackgroundRequest is the body sent when saving edited background text.
type UpdateBackgroundRequest struct {
	CompanyID  string `json:"company_id"`
	Background string `json:"background"`
}

// companyRequest is the body for endpoints that only need the company ID.
type companyRequest struct {
	CompanyID string `json:"company_id"`
}

// UpdateBackgroundResponse is returned after a save or reset.
type UpdateBackgroundResponse struct {
	Message        string          `json:"message"`
	BackgroundInfo *BackgroundInfo `json:"background_info,omitempty"`
}

// ClearHistoryResponse is returned after clearing server-side history.
type ClearHistoryResponse struct {
	Message string `json:"message"`
}

// StatusResponse is the diagnostics payload from the test endpoint.
type StatusResponse struct {
	Status             string `json:"status"`
	Company            string `json:"company,omitempty"`
	DatabaseConnection bool   `json:"database_connection"`
	BackgroundPreview  string `json:"background_preview,omitempty"`
	BackgroundIsEdited bool   `json:"background_is_edited"`
	ConnectionError    string `json:"connection_error,omitempty"`
	Error              string `json:"error,omitempty"`
}

// errorResponse covers both error body shapes the server produces.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
