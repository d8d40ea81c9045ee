// Package memory provides an in-memory store.Store implementation.
// It backs unit tests and local experimentation; the sqlite and postgres
// drivers are the persistent options.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/compasshq/compass/server/internal/model"
	"github.com/compasshq/compass/server/internal/store"
)

type memStore struct {
	mu       sync.RWMutex
	goals    map[string][]*model.Goal
	tasks    map[string][]*model.Task
	events   map[string][]*model.CalendarEvent
	threads  map[string][]*model.ConversationThread
	messages map[string][]*model.ConversationMessage
}

// New returns an empty in-memory store.
func New() store.Store {
	return &memStore{
		goals:    map[string][]*model.Goal{},
		tasks:    map[string][]*model.Task{},
		events:   map[string][]*model.CalendarEvent{},
		threads:  map[string][]*model.ConversationThread{},
		messages: map[string][]*model.ConversationMessage{},
	}
}

func (s *memStore) Goals() store.Goals     { return (*memGoals)(s) }
func (s *memStore) Tasks() store.Tasks     { return (*memTasks)(s) }
func (s *memStore) Events() store.Events   { return (*memEvents)(s) }
func (s *memStore) Threads() store.Threads { return (*memThreads)(s) }

// --- Goals ---

type memGoals memStore

func (g *memGoals) Create(_ context.Context, in *model.Goal) (*model.Goal, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := *in
	out.GoalID = uuid.New().String()
	out.CreationTime = time.Now().UTC()
	g.goals[out.UserID] = append(g.goals[out.UserID], &out)
	cp := out
	return &cp, nil
}

func (g *memGoals) GetByID(_ context.Context, userID, goalID string) (*model.Goal, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, it := range g.goals[userID] {
		if it.GoalID == goalID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (g *memGoals) List(_ context.Context, userID string) ([]*model.Goal, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	items := g.goals[userID]
	// newest first, matching the SQL drivers
	out := make([]*model.Goal, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		cp := *items[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (g *memGoals) Update(_ context.Context, in *model.Goal) (*model.Goal, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, it := range g.goals[in.UserID] {
		if it.GoalID == in.GoalID {
			upd := *in
			upd.CreationTime = it.CreationTime
			g.goals[in.UserID][i] = &upd
			cp := upd
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (g *memGoals) Delete(_ context.Context, userID, goalID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	items := g.goals[userID]
	for i, it := range items {
		if it.GoalID == goalID {
			g.goals[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

// --- Tasks ---

type memTasks memStore

func (t *memTasks) Create(_ context.Context, in *model.Task) (*model.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := *in
	out.TaskID = uuid.New().String()
	out.CreationTime = time.Now().UTC()
	if out.Priority == "" {
		out.Priority = model.PriorityMedium
	}
	t.tasks[out.UserID] = append(t.tasks[out.UserID], &out)
	cp := out
	return &cp, nil
}

func (t *memTasks) GetByID(_ context.Context, userID, taskID string) (*model.Task, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, it := range t.tasks[userID] {
		if it.TaskID == taskID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (t *memTasks) List(_ context.Context, userID string) ([]*model.Task, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	items := t.tasks[userID]
	out := make([]*model.Task, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		cp := *items[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (t *memTasks) Update(_ context.Context, in *model.Task) (*model.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, it := range t.tasks[in.UserID] {
		if it.TaskID == in.TaskID {
			upd := *in
			upd.CreationTime = it.CreationTime
			t.tasks[in.UserID][i] = &upd
			cp := upd
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (t *memTasks) Delete(_ context.Context, userID, taskID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	items := t.tasks[userID]
	for i, it := range items {
		if it.TaskID == taskID {
			t.tasks[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

// --- Events ---

type memEvents memStore

func (e *memEvents) Create(_ context.Context, in *model.CalendarEvent) (*model.CalendarEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := *in
	out.EventID = uuid.New().String()
	out.CreationTime = time.Now().UTC()
	e.events[out.UserID] = append(e.events[out.UserID], &out)
	cp := out
	return &cp, nil
}

func (e *memEvents) GetByID(_ context.Context, userID, eventID string) (*model.CalendarEvent, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, it := range e.events[userID] {
		if it.EventID == eventID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (e *memEvents) List(_ context.Context, userID string) ([]*model.CalendarEvent, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	items := e.events[userID]
	out := make([]*model.CalendarEvent, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		cp := *items[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (e *memEvents) Update(_ context.Context, in *model.CalendarEvent) (*model.CalendarEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, it := range e.events[in.UserID] {
		if it.EventID == in.EventID {
			upd := *in
			upd.CreationTime = it.CreationTime
			e.events[in.UserID][i] = &upd
			cp := upd
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (e *memEvents) Delete(_ context.Context, userID, eventID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	items := e.events[userID]
	for i, it := range items {
		if it.EventID == eventID {
			e.events[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

// --- Threads ---

type memThreads memStore

func (t *memThreads) Create(_ context.Context, in *model.ConversationThread) (*model.ConversationThread, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := *in
	out.ThreadID = uuid.New().String()
	now := time.Now().UTC()
	out.CreationTime = now
	out.UpdateTime = now
	t.threads[out.UserID] = append(t.threads[out.UserID], &out)
	cp := out
	return &cp, nil
}

func (t *memThreads) GetByID(_ context.Context, userID, threadID string) (*model.ConversationThread, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, it := range t.threads[userID] {
		if it.ThreadID == threadID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (t *memThreads) List(_ context.Context, userID string) ([]*model.ConversationThread, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	items := t.threads[userID]
	out := make([]*model.ConversationThread, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		cp := *items[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (t *memThreads) Update(_ context.Context, in *model.ConversationThread) (*model.ConversationThread, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, it := range t.threads[in.UserID] {
		if it.ThreadID == in.ThreadID {
			upd := *in
			upd.CreationTime = it.CreationTime
			upd.UpdateTime = time.Now().UTC()
			t.threads[in.UserID][i] = &upd
			cp := upd
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (t *memThreads) Delete(_ context.Context, userID, threadID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	items := t.threads[userID]
	for i, it := range items {
		if it.ThreadID == threadID {
			t.threads[userID] = append(items[:i], items[i+1:]...)
			delete(t.messages, threadID)
			return nil
		}
	}
	return model.ErrNotFound
}

func (t *memThreads) AddMessage(_ context.Context, in *model.ConversationMessage) (*model.ConversationMessage, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := *in
	out.MessageID = uuid.New().String()
	out.CreationTime = time.Now().UTC()
	t.messages[out.ThreadID] = append(t.messages[out.ThreadID], &out)
	cp := out
	return &cp, nil
}

func (t *memThreads) ListMessages(_ context.Context, userID, threadID string) ([]*model.ConversationMessage, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	found := false
	for _, th := range t.threads[userID] {
		if th.ThreadID == threadID {
			found = true
			break
		}
	}
	if !found {
		return nil, model.ErrNotFound
	}
	items := t.messages[threadID]
	// oldest first: messages read in conversation order
	out := make([]*model.ConversationMessage, 0, len(items))
	for _, it := range items {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}
