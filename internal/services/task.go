package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/compasshq/compass/server/internal/model"
	"github.com/compasshq/compass/server/internal/store"
)

type TaskService struct {
	store store.Store
}

func NewTaskService(s store.Store) *TaskService {
	return &TaskService{store: s}
}

func (s *TaskService) CreateTask(ctx context.Context, t *model.Task) (*model.Task, error) {
	if strings.TrimSpace(t.Title) == "" {
		return nil, fmt.Errorf("%w: task title is required", model.ErrValidation)
	}
	if t.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", model.ErrValidation)
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	if !model.ValidPriority(t.Priority) {
		return nil, fmt.Errorf("%w: invalid priority %q", model.ErrValidation, t.Priority)
	}
	return s.store.Tasks().Create(ctx, t)
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID string) (*model.Task, error) {
	return s.store.Tasks().GetByID(ctx, userID, taskID)
}

func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	return s.store.Tasks().List(ctx, userID)
}

func (s *TaskService) UpdateTask(ctx context.Context, t *model.Task) (*model.Task, error) {
	if strings.TrimSpace(t.Title) == "" {
		return nil, fmt.Errorf("%w: task title is required", model.ErrValidation)
	}
	if t.Priority != "" && !model.ValidPriority(t.Priority) {
		return nil, fmt.Errorf("%w: invalid priority %q", model.ErrValidation, t.Priority)
	}
	return s.store.Tasks().Update(ctx, t)
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	return s.store.Tasks().Delete(ctx, userID, taskID)
}
