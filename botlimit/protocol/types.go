// Package protocol defines the JSON payloads returned by the botlimit MCP tools.
package protocol

import (
	"time"

	"github.com/go-harden/botlimit/botlimit/limit"
)

// FieldLimit is the limit of a single field.
type FieldLimit struct {
	Field     string `json:"field"`
	Limit     int    `json:"limit,omitempty"`
	Unlimited bool   `json:"unlimited,omitempty"`
}

// LimitsResponse is returned by limit_get.
type LimitsResponse struct {
	Limits []FieldLimit `json:"limits"`
}

// MeasureResponse is returned by text_measure.
type MeasureResponse struct {
	Characters int `json:"characters"`
	Runes      int `json:"runes"`
	Bytes      int `json:"bytes"`
	Width      int `json:"width"`
}

// TruncateResponse is returned by text_truncate.
type TruncateResponse struct {
	Field          string `json:"field"`
	Value          string `json:"value"`
	Truncated      bool   `json:"truncated"`
	OriginalLength int    `json:"original_length"`
	Length         int    `json:"length"`
	Limit          int    `json:"limit,omitempty"`
	HistoryID      string `json:"history_id,omitempty"`
}

// OnboardingResponse is returned by onboarding_truncate.
type OnboardingResponse struct {
	Content    limit.OnboardingContent `json:"content"`
	Truncated  []string                `json:"truncated,omitempty"`
	HistoryIDs []string                `json:"history_ids,omitempty"`
}

// HistoryEntry describes one truncation performed by the service.
type HistoryEntry struct {
	ID             string    `json:"id"`
	SessionID      string    `json:"session_id,omitempty"`
	Field          string    `json:"field"`
	Ref            string    `json:"ref,omitempty"`
	Limit          int       `json:"limit"`
	OriginalLength int       `json:"original_length"`
	Original       string    `json:"original"`
	Result         string    `json:"result"`
	At             time.Time `json:"at"`
}

// HistoryResponse is returned by history_list.
type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
	Total   int            `json:"total"`
}

// HistoryClearResponse is returned by history_clear.
type HistoryClearResponse struct {
	Removed int `json:"removed"`
}
