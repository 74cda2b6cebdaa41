package ports

import (
	"context"
	"time"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

// CreateTaskInput carries the data for a new task. Priority defaults to
// medium and category to general when empty.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    string
	Category    string
	DueDate     *time.Time
}

// UpdateTaskInput carries partial task changes; nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *string
	Category    *string
	Completed   *bool
	DueDate     *time.Time
}

// TaskService defines use-case operations for the task manager.
type TaskService interface {
	List(ctx context.Context, userID string) ([]*domain.Task, error)
	Create(ctx context.Context, userID string, input CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, userID, taskID string, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}
