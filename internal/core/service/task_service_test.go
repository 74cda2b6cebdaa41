package service

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindmate/mindmate-api/internal/core/domain"
	"github.com/mindmate/mindmate-api/internal/core/ports"
)

type stubTaskRepo struct {
	tasks  map[string]*domain.Task
	nextID int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) ListByUser(_ context.Context, userID string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.UserID == userID {
			clone := *t
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubTaskRepo) ListRecent(_ context.Context, userID string, since time.Time, limit int) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.UserID == userID && !t.CreatedAt.Before(since) {
			clone := *t
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, userID, taskID string) (*domain.Task, error) {
	t, ok := r.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) Insert(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.nextID++
	clone := *task
	clone.ID = fmt.Sprintf("task_%d", r.nextID)
	r.tasks[clone.ID] = &clone
	stored := clone
	return &stored, nil
}

func (r *stubTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, userID, taskID string) error {
	t, ok := r.tasks[taskID]
	if !ok || t.UserID != userID {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, taskID)
	return nil
}

func TestTaskService_Create_Defaults(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), zerolog.Nop())

	task, err := svc.Create(context.Background(), "user_1", ports.CreateTaskInput{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if task.Priority != domain.PriorityMedium {
		t.Fatalf("expected medium priority default, got %s", task.Priority)
	}
	if task.Category != "general" {
		t.Fatalf("expected general category default, got %s", task.Category)
	}
	if task.Completed {
		t.Fatalf("new task must not be completed")
	}
}

func TestTaskService_Update_PartialMerge(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, zerolog.Nop())

	task, err := svc.Create(context.Background(), "user_1", ports.CreateTaskInput{
		Title:    "Write report",
		Priority: domain.PriorityHigh,
		Category: "work",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	done := true
	updated, err := svc.Update(context.Background(), "user_1", task.ID, ports.UpdateTaskInput{Completed: &done})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.Completed {
		t.Fatalf("expected completed")
	}
	if updated.Title != "Write report" || updated.Priority != domain.PriorityHigh || updated.Category != "work" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestTaskService_Update_WrongOwner(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, zerolog.Nop())

	task, err := svc.Create(context.Background(), "user_1", ports.CreateTaskInput{Title: "Private"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	title := "Hijacked"
	if _, err := svc.Update(context.Background(), "user_2", task.ID, ports.UpdateTaskInput{Title: &title}); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound for foreign task, got %v", err)
	}
}

func TestTaskService_Delete(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, zerolog.Nop())

	task, err := svc.Create(context.Background(), "user_1", ports.CreateTaskInput{Title: "Temp"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), "user_1", task.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), "user_1", task.ID); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound after delete, got %v", err)
	}
}
