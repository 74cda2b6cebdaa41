package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mindmate/mindmate-api/internal/core/domain"
)

// GoalRepository keeps goals in a mutex-guarded map keyed by id.
type GoalRepository struct {
	mu    sync.RWMutex
	goals map[string]*domain.Goal
}

func NewGoalRepository() *GoalRepository {
	return &GoalRepository{goals: make(map[string]*domain.Goal)}
}

func (r *GoalRepository) ListByUser(_ context.Context, userID string) ([]*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Goal
	for _, g := range r.goals {
		if g.UserID == userID {
			out = append(out, cloneGoal(g))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *GoalRepository) FindByID(_ context.Context, userID, goalID string) (*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.goals[goalID]
	if !ok || g.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}
	return cloneGoal(g), nil
}

func (r *GoalRepository) Insert(_ context.Context, goal *domain.Goal) (*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := cloneGoal(goal)
	clone.ID = newID()
	r.goals[clone.ID] = clone
	return cloneGoal(clone), nil
}

func (r *GoalRepository) Update(_ context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.goals[goal.ID]
	if !ok || stored.UserID != goal.UserID {
		return domain.ErrGoalNotFound
	}
	r.goals[goal.ID] = cloneGoal(goal)
	return nil
}

func (r *GoalRepository) Delete(_ context.Context, userID, goalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.goals[goalID]
	if !ok || g.UserID != userID {
		return domain.ErrGoalNotFound
	}
	delete(r.goals, goalID)
	return nil
}

func cloneGoal(g *domain.Goal) *domain.Goal {
	clone := *g
	clone.Milestones = append([]string(nil), g.Milestones...)
	return &clone
}
