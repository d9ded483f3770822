package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ProviderDescriptor describes one backend language-model provider.
type ProviderDescriptor struct {
	Name             string `json:"name"`
	Available        bool   `json:"available"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}

// SessionContext is a point-in-time copy of the controller's session state.
// An empty SelectedProvider means no provider has been chosen yet.
type SessionContext struct {
	SessionID        string `json:"session_id"`
	SelectedProvider string `json:"selected_provider,omitempty"`
}

// ConversationID addresses a persisted conversation. The backend may send it
// as a JSON number or a string. Canonical digit-only ids are encoded as JSON
// numbers, everything else as strings.
type ConversationID string

// UnmarshalJSON accepts both `12` and `"12"`.
func (id *ConversationID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ConversationID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("conversation id must be a string or number: %w", err)
	}
	*id = ConversationID(n.String())
	return nil
}

// MarshalJSON emits digit-only ids as numbers and everything else as strings.
func (id ConversationID) MarshalJSON() ([]byte, error) {
	s := string(id)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(n, 10) == s {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

// naiveLayouts are accepted for timestamps written without a zone offset,
// such as "2024-05-01T10:00:00.123456". They are read as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Timestamp is a time.Time that decodes from RFC 3339 or from an offset-less
// ISO 8601 string. It always encodes as RFC 3339 in UTC.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		ts.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		ts.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		ts.Time = t
		return nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.UTC().Format(time.RFC3339Nano))
}

// ConversationRecord is a read-only copy of a persisted exchange.
type ConversationRecord struct {
	ID          ConversationID `json:"id"`
	LLMProvider string         `json:"llm_provider"`
	UserMessage string         `json:"user_message"`
	LLMResponse string         `json:"llm_response"`
	Timestamp   Timestamp      `json:"timestamp"`
	Rating      *int           `json:"rating"`
	Feedback    *string        `json:"feedback,omitempty"`
}

// Rated reports whether the record carries a rating.
func (r ConversationRecord) Rated() bool {
	return r.Rating != nil && *r.Rating > 0
}

// StatBlock is one aggregate of conversations and ratings.
type StatBlock struct {
	TotalConversations int     `json:"total_conversations"`
	AverageRating      float64 `json:"average_rating"`
	TotalRatings       int     `json:"total_ratings"`
}

// AnalyticsSnapshot is a fully replaced, point-in-time copy of usage analytics.
type AnalyticsSnapshot struct {
	Daily              StatBlock            `json:"daily_stats"`
	Weekly             StatBlock            `json:"weekly_stats"`
	ProviderComparison map[string]StatBlock `json:"provider_comparison"`
}
