package ports

import (
	"context"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

// GoalRepository defines persistence operations for goals, scoped to the
// owning user.
type GoalRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.Goal, error)
	FindByID(ctx context.Context, userID, goalID string) (*domain.Goal, error)
	Insert(ctx context.Context, goal *domain.Goal) (*domain.Goal, error)
	Update(ctx context.Context, goal *domain.Goal) error
	Delete(ctx context.Context, userID, goalID string) error
}
