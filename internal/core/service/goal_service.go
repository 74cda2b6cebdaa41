package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindmate/mindmate-api/internal/api/metrics"
	"github.com/mindmate/mindmate-api/internal/core/domain"
	"github.com/mindmate/mindmate-api/internal/core/ports"
)

// GoalService implements the goal tracker use cases.
type GoalService struct {
	repo ports.GoalRepository
	log  zerolog.Logger
}

func NewGoalService(repo ports.GoalRepository, log zerolog.Logger) *GoalService {
	return &GoalService{repo: repo, log: log}
}

func (s *GoalService) List(ctx context.Context, userID string) ([]*domain.Goal, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *GoalService) Create(ctx context.Context, userID string, input ports.CreateGoalInput) (*domain.Goal, error) {
	goal := &domain.Goal{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		TargetDate:  input.TargetDate,
		Milestones:  input.Milestones,
		CreatedAt:   time.Now().UTC(),
	}
	if goal.Category == "" {
		goal.Category = "general"
	}
	if goal.Milestones == nil {
		goal.Milestones = []string{}
	}

	created, err := s.repo.Insert(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}

	metrics.GoalsCreatedTotal.Inc()
	s.log.Debug().Str("goal_id", created.ID).Str("user_id", userID).Msg("goal created")
	return created, nil
}

func (s *GoalService) Update(ctx context.Context, userID, goalID string, input ports.UpdateGoalInput) (*domain.Goal, error) {
	goal, err := s.repo.FindByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		goal.Title = *input.Title
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.Category != nil {
		goal.Category = *input.Category
	}
	if input.Progress != nil {
		goal.Progress = clampProgress(*input.Progress)
	}
	if input.TargetDate != nil {
		goal.TargetDate = *input.TargetDate
	}
	if input.Milestones != nil {
		goal.Milestones = input.Milestones
	}

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, goalID string) error {
	return s.repo.Delete(ctx, userID, goalID)
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
