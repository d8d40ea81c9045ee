package store

import (
	"context"

	"github.com/compasshq/compass/server/internal/model"
)

// Store exposes persistence operations required by services and the
// assistant dispatcher. Implementations live under internal/store/<driver>/
// (memory, sqlite, postgres).
type Store interface {
	Goals() Goals
	Tasks() Tasks
	Events() Events
	Threads() Threads
}

type Goals interface {
	Create(ctx context.Context, g *model.Goal) (*model.Goal, error)
	GetByID(ctx context.Context, userID, goalID string) (*model.Goal, error)
	List(ctx context.Context, userID string) ([]*model.Goal, error)
	Update(ctx context.Context, g *model.Goal) (*model.Goal, error)
	Delete(ctx context.Context, userID, goalID string) error
}

type Tasks interface {
	Create(ctx context.Context, t *model.Task) (*model.Task, error)
	GetByID(ctx context.Context, userID, taskID string) (*model.Task, error)
	List(ctx context.Context, userID string) ([]*model.Task, error)
	Update(ctx context.Context, t *model.Task) (*model.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

type Events interface {
	Create(ctx context.Context, e *model.CalendarEvent) (*model.CalendarEvent, error)
	GetByID(ctx context.Context, userID, eventID string) (*model.CalendarEvent, error)
	List(ctx context.Context, userID string) ([]*model.CalendarEvent, error)
	Update(ctx context.Context, e *model.CalendarEvent) (*model.CalendarEvent, error)
	Delete(ctx context.Context, userID, eventID string) error
}

type Threads interface {
	Create(ctx context.Context, t *model.ConversationThread) (*model.ConversationThread, error)
	GetByID(ctx context.Context, userID, threadID string) (*model.ConversationThread, error)
	List(ctx context.Context, userID string) ([]*model.ConversationThread, error)
	Update(ctx context.Context, t *model.ConversationThread) (*model.ConversationThread, error)
	Delete(ctx context.Context, userID, threadID string) error
	AddMessage(ctx context.Context, m *model.ConversationMessage) (*model.ConversationMessage, error)
	ListMessages(ctx context.Context, userID, threadID string) ([]*model.ConversationMessage, error)
}
