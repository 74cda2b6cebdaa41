package ports

import (
	"context"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

// ConversationRepository persists completed chat exchanges.
type ConversationRepository interface {
	Insert(ctx context.Context, conv *domain.Conversation) error
}
