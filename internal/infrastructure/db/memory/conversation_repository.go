package memory

import (
	"context"
	"sync"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

// ConversationRepository appends conversations to a slice; nothing reads
// them back through the API.
type ConversationRepository struct {
	mu            sync.Mutex
	conversations []*domain.Conversation
}

func NewConversationRepository() *ConversationRepository {
	return &ConversationRepository{}
}

func (r *ConversationRepository) Insert(_ context.Context, conv *domain.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *conv
	clone.ID = newID()
	clone.Messages = append([]domain.ChatMessage(nil), conv.Messages...)
	r.conversations = append(r.conversations, &clone)
	return nil
}

// Len reports how many conversations were stored. Test helper.
func (r *ConversationRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conversations)
}
