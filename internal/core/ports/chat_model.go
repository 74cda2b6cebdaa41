package ports

import (
	"context"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

// ChatModel abstracts a hosted chat-completions API.
type ChatModel interface {
	// Name is the provider identifier (e.g. "openai", "grok").
	Name() string
	// Configured reports whether credentials are present.
	Configured() bool
	// StreamChat sends the prompt and streams the reply, calling onDelta per
	// fragment. It returns the accumulated reply text.
	StreamChat(ctx context.Context, system string, messages []domain.ChatMessage, onDelta func(delta string) error) (string, error)
}
