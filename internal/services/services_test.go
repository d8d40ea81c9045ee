package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compasshq/compass/server/internal/model"
	"github.com/compasshq/compass/server/internal/store/memory"
)

func TestGoalService_Validation(t *testing.T) {
	svc := NewGoalService(memory.New())
	ctx := context.Background()

	_, err := svc.CreateGoal(ctx, &model.Goal{UserID: "u1", Title: "   "})
	assert.True(t, errors.Is(err, model.ErrValidation))

	_, err = svc.CreateGoal(ctx, &model.Goal{Title: "Learn Spanish"})
	assert.True(t, errors.Is(err, model.ErrValidation))

	g, err := svc.CreateGoal(ctx, &model.Goal{UserID: "u1", Title: "Learn Spanish"})
	require.NoError(t, err)
	assert.NotEmpty(t, g.GoalID)
}

func TestTaskService_PriorityDefaulting(t *testing.T) {
	svc := NewTaskService(memory.New())
	ctx := context.Background()

	tk, err := svc.CreateTask(ctx, &model.Task{UserID: "u1", Title: "review documents"})
	require.NoError(t, err)
	assert.Equal(t, model.PriorityMedium, tk.Priority)

	_, err = svc.CreateTask(ctx, &model.Task{UserID: "u1", Title: "x", Priority: "urgent"})
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestEventService_DefaultDuration(t *testing.T) {
	svc := NewEventService(memory.New())
	ctx := context.Background()

	start := time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC)
	ev, err := svc.CreateEvent(ctx, &model.CalendarEvent{UserID: "u1", Title: "team meeting", StartTime: start})
	require.NoError(t, err)
	assert.Equal(t, start.Add(time.Hour), ev.EndTime)

	_, err = svc.CreateEvent(ctx, &model.CalendarEvent{UserID: "u1", Title: "bad", StartTime: start, EndTime: start.Add(-time.Minute)})
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestThreadService_AppendMessage(t *testing.T) {
	st := memory.New()
	svc := NewThreadService(st)
	ctx := context.Background()

	th, err := svc.CreateThread(ctx, &model.ConversationThread{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "New Conversation", th.Title)

	_, err = svc.AppendMessage(ctx, "u1", &model.ConversationMessage{ThreadID: th.ThreadID, Role: "system", Content: "x"})
	assert.True(t, errors.Is(err, model.ErrValidation))

	_, err = svc.AppendMessage(ctx, "someone-else", &model.ConversationMessage{ThreadID: th.ThreadID, Role: "user", Content: "hi"})
	assert.True(t, errors.Is(err, model.ErrNotFound))

	msg, err := svc.AppendMessage(ctx, "u1", &model.ConversationMessage{ThreadID: th.ThreadID, Role: "user", Content: "hi"})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.MessageID)

	msgs, err := svc.ListMessages(ctx, "u1", th.ThreadID)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}
