package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/compasshq/compass/server/internal/model"
	"github.com/compasshq/compass/server/internal/store"
)

type GoalService struct {
	store store.Store
}

func NewGoalService(s store.Store) *GoalService {
	return &GoalService{store: s}
}

func (s *GoalService) CreateGoal(ctx context.Context, g *model.Goal) (*model.Goal, error) {
	if strings.TrimSpace(g.Title) == "" {
		return nil, fmt.Errorf("%w: goal title is required", model.ErrValidation)
	}
	if g.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", model.ErrValidation)
	}
	return s.store.Goals().Create(ctx, g)
}

func (s *GoalService) GetGoal(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	return s.store.Goals().GetByID(ctx, userID, goalID)
}

func (s *GoalService) ListGoals(ctx context.Context, userID string) ([]*model.Goal, error) {
	return s.store.Goals().List(ctx, userID)
}

func (s *GoalService) UpdateGoal(ctx context.Context, g *model.Goal) (*model.Goal, error) {
	if strings.TrimSpace(g.Title) == "" {
		return nil, fmt.Errorf("%w: goal title is required", model.ErrValidation)
	}
	return s.store.Goals().Update(ctx, g)
}

func (s *GoalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	return s.store.Goals().Delete(ctx, userID, goalID)
}
