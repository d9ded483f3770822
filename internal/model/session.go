package model

import "time"

// ExchangeStatus is the lifecycle phase of a single chat turn.
type ExchangeStatus int

const (
	ExchangeIdle ExchangeStatus = iota
	ExchangeSending
	ExchangeCompleted
	ExchangeFailed
)

func (s ExchangeStatus) String() string {
	switch s {
	case ExchangeSending:
		return "sending"
	case ExchangeCompleted:
		return "completed"
	case ExchangeFailed:
		return "failed"
	default:
		return "idle"
	}
}

// ExchangeState tracks one user-message to backend-response cycle.
type ExchangeState struct {
	TurnID         string
	Status         ExchangeStatus
	UserText       string
	ConversationID ConversationID
}

// Role identifies who authored a transcript turn.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Turn is one message unit in the visible transcript.
type Turn struct {
	ID             string
	Role           Role
	Text           string
	Placeholder    bool
	ConversationID ConversationID // set on bot turns that answer a persisted exchange
	Rateable       bool
	CreatedAt      time.Time
}

// RatingDraft is in-progress, not-yet-submitted rating input.
type RatingDraft struct {
	ConversationID ConversationID
	Score          int
	FeedbackText   string
}

// RatingDialogState is what the presentation surface shows for the rating workflow.
type RatingDialogState struct {
	Open           bool
	ConversationID ConversationID
	Score          int
	FeedbackText   string
}

// NoticeKind classifies a transient notice.
type NoticeKind string

const (
	NoticeSuccess  NoticeKind = "success"
	NoticeError    NoticeKind = "error"
	NoticeBlocking NoticeKind = "blocking"
)

// Notice is a short message the presentation surface shows and later removes.
// A zero Duration means the notice stays until replaced.
type Notice struct {
	Text     string
	Kind     NoticeKind
	Duration time.Duration
}

// ProviderOption is one selectable entry in the provider picker.
type ProviderOption struct {
	Name    string
	Label   string
	Enabled bool
	Hint    string
}

// HistoryItem is one row of the published conversation history.
type HistoryItem struct {
	Record   ConversationRecord
	Rateable bool
}

// Tab names the panels the presentation surface can switch between.
type Tab string

const (
	TabChat      Tab = "chat"
	TabAnalytics Tab = "analytics"
	TabHistory   Tab = "history"
)
