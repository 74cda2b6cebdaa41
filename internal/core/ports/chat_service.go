package ports

import (
	"context"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

// ChatService runs an authenticated chat turn against the user's preferred
// AI provider. onDelta is invoked for each streamed reply fragment; the full
// reply is returned once the stream completes and the conversation has been
// recorded.
type ChatService interface {
	Chat(ctx context.Context, userID string, messages []domain.ChatMessage, onDelta func(delta string) error) (string, error)
}
