package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/compasshq/compass/server/internal/model"
	"github.com/compasshq/compass/server/internal/store"
)

type ThreadService struct {
	store store.Store
}

func NewThreadService(s store.Store) *ThreadService {
	return &ThreadService{store: s}
}

func (s *ThreadService) CreateThread(ctx context.Context, t *model.ConversationThread) (*model.ConversationThread, error) {
	if t.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", model.ErrValidation)
	}
	if strings.TrimSpace(t.Title) == "" {
		t.Title = "New Conversation"
	}
	return s.store.Threads().Create(ctx, t)
}

func (s *ThreadService) GetThread(ctx context.Context, userID, threadID string) (*model.ConversationThread, error) {
	return s.store.Threads().GetByID(ctx, userID, threadID)
}

func (s *ThreadService) ListThreads(ctx context.Context, userID string) ([]*model.ConversationThread, error) {
	return s.store.Threads().List(ctx, userID)
}

func (s *ThreadService) UpdateThread(ctx context.Context, t *model.ConversationThread) (*model.ConversationThread, error) {
	return s.store.Threads().Update(ctx, t)
}

func (s *ThreadService) DeleteThread(ctx context.Context, userID, threadID string) error {
	return s.store.Threads().Delete(ctx, userID, threadID)
}

// AppendMessage records one message on a thread after verifying the thread
// belongs to the user.
func (s *ThreadService) AppendMessage(ctx context.Context, userID string, m *model.ConversationMessage) (*model.ConversationMessage, error) {
	if m.Role != "user" && m.Role != "assistant" {
		return nil, fmt.Errorf("%w: message role must be user or assistant", model.ErrValidation)
	}
	if _, err := s.store.Threads().GetByID(ctx, userID, m.ThreadID); err != nil {
		return nil, err
	}
	return s.store.Threads().AddMessage(ctx, m)
}

func (s *ThreadService) ListMessages(ctx context.Context, userID, threadID string) ([]*model.ConversationMessage, error) {
	return s.store.Threads().ListMessages(ctx, userID, threadID)
}
