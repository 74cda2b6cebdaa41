package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

const conversationsCollection = "conversations"

// ConversationRepository appends finished chat exchanges to the
// conversations collection. Nothing reads them back through the API today.
type ConversationRepository struct {
	coll *mongo.Collection
}

func NewConversationRepository(db *mongo.Database) *ConversationRepository {
	return &ConversationRepository{coll: db.Collection(conversationsCollection)}
}

func (r *ConversationRepository) Insert(ctx context.Context, conv *domain.Conversation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := struct {
		UserID    string               `bson:"user_id"`
		Messages  []domain.ChatMessage `bson:"messages"`
		CreatedAt time.Time            `bson:"created_at"`
	}{
		UserID:    conv.UserID,
		Messages:  conv.Messages,
		CreatedAt: conv.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}
	return nil
}
