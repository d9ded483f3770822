package model

import "time"

// Conversation is one persisted exchange as the dev backend stores it.
type Conversation struct {
	ID          int64
	SessionID   string
	UserMessage string
	LLMProvider string
	LLMResponse string
	Timestamp   time.Time
}

// Rating is the single rating attached to a conversation.
type Rating struct {
	ConversationID int64
	Rating         int
	Feedback       *string
	Timestamp      time.Time
}
