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

// TaskService implements the task manager use cases.
type TaskService struct {
	repo ports.TaskRepository
	log  zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, log zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, log: log}
}

func (s *TaskService) List(ctx context.Context, userID string) ([]*domain.Task, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *TaskService) Create(ctx context.Context, userID string, input ports.CreateTaskInput) (*domain.Task, error) {
	task := &domain.Task{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Category:    input.Category,
		DueDate:     input.DueDate,
		CreatedAt:   time.Now().UTC(),
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	if task.Category == "" {
		task.Category = "general"
	}

	created, err := s.repo.Insert(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	metrics.TasksCreatedTotal.WithLabelValues(created.Priority).Inc()
	s.log.Debug().Str("task_id", created.ID).Str("user_id", userID).Msg("task created")
	return created, nil
}

func (s *TaskService) Update(ctx context.Context, userID, taskID string, input ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Category != nil {
		task.Category = *input.Category
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	return s.repo.Delete(ctx, userID, taskID)
}
