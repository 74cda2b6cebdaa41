package ports

import (
	"context"
	"time"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks. Every lookup is
// scoped to the owning user.
type TaskRepository interface {
	// ListByUser returns the user's tasks, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Task, error)
	// ListRecent returns up to limit tasks created at or after since, used to
	// build chat context.
	ListRecent(ctx context.Context, userID string, since time.Time, limit int) ([]*domain.Task, error)
	FindByID(ctx context.Context, userID, taskID string) (*domain.Task, error)
	Insert(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, userID, taskID string) error
}
