package domain

import (
	"errors"
	"time"
)

// ErrProviderUnavailable is returned when the selected AI provider has no
// API key configured.
var ErrProviderUnavailable = errors.New("ai provider not configured")

// Chat message roles, matching the chat-completions wire convention.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    string `json:"role" bson:"role"`
	Content string `json:"content" bson:"content"`
}

// Conversation is a persisted chat exchange, stored after the assistant
// reply has fully streamed.
type Conversation struct {
	ID        string        `json:"id" bson:"_id,omitempty"`
	UserID    string        `json:"user_id" bson:"user_id"`
	Messages  []ChatMessage `json:"messages" bson:"messages"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}
