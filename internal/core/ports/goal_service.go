package ports

import (
	"context"
	"time"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

// CreateGoalInput carries the data for a new goal.
type CreateGoalInput struct {
	Title       string
	Description string
	Category    string
	TargetDate  time.Time
	Milestones  []string
}

// UpdateGoalInput carries partial goal changes; nil fields are left
// untouched. Progress is clamped to [0,100] by the service.
type UpdateGoalInput struct {
	Title       *string
	Description *string
	Category    *string
	Progress    *int
	TargetDate  *time.Time
	Milestones  []string
}

// GoalService defines use-case operations for the goal tracker.
type GoalService interface {
	List(ctx context.Context, userID string) ([]*domain.Goal, error)
	Create(ctx context.Context, userID string, input CreateGoalInput) (*domain.Goal, error)
	Update(ctx context.Context, userID, goalID string, input UpdateGoalInput) (*domain.Goal, error)
	Delete(ctx context.Context, userID, goalID string) error
}
