package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

// TaskRepository keeps tasks in a mutex-guarded map keyed by id.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*domain.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{tasks: make(map[string]*domain.Task)}
}

func (r *TaskRepository) ListByUser(_ context.Context, userID string) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Task
	for _, t := range r.tasks {
		if t.UserID == userID {
			clone := *t
			out = append(out, &clone)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *TaskRepository) ListRecent(_ context.Context, userID string, since time.Time, limit int) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Task
	for _, t := range r.tasks {
		if t.UserID == userID && !t.CreatedAt.Before(since) {
			clone := *t
			out = append(out, &clone)
		}
	}
	sortNewestFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *TaskRepository) FindByID(_ context.Context, userID, taskID string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *TaskRepository) Insert(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *task
	clone.ID = newID()
	r.tasks[clone.ID] = &clone

	out := clone
	return &out, nil
}

func (r *TaskRepository) Update(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tasks[task.ID]
	if !ok || stored.UserID != task.UserID {
		return domain.ErrTaskNotFound
	}
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *TaskRepository) Delete(_ context.Context, userID, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[taskID]
	if !ok || t.UserID != userID {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, taskID)
	return nil
}

func sortNewestFirst(tasks []*domain.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
}
