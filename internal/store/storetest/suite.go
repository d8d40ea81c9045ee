package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/compasshq/compass/server/internal/model"
	"github.com/compasshq/compass/server/internal/store"
)

// Run exercises a minimal compliance suite against a store.Store
// implementation. Implementations should provide a clean, isolated store
// and return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	userID := "u-" + uuid.New().String()

	// Goals
	desc := "read the docs front to back"
	g, err := s.Goals().Create(ctx, &model.Goal{UserID: userID, Title: "Learn React from scratch", Description: &desc})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	if g.GoalID == "" {
		t.Fatalf("CreateGoal: empty goal id")
	}
	if _, err := s.Goals().Create(ctx, &model.Goal{UserID: userID, Title: "Exercise daily"}); err != nil {
		t.Fatalf("CreateGoal second: %v", err)
	}
	if got, err := s.Goals().GetByID(ctx, userID, g.GoalID); err != nil || got.Title != "Learn React from scratch" {
		t.Fatalf("GetGoal: got=%v err=%v", got, err)
	}
	goals, err := s.Goals().List(ctx, userID)
	if err != nil || len(goals) != 2 {
		t.Fatalf("ListGoals: n=%d err=%v", len(goals), err)
	}
	if goals[0].Title != "Exercise daily" {
		t.Fatalf("ListGoals: expected newest first, got %q", goals[0].Title)
	}

	g.Completed = true
	target := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	g.TargetDate = &target
	upd, err := s.Goals().Update(ctx, g)
	if err != nil || !upd.Completed || upd.TargetDate == nil {
		t.Fatalf("UpdateGoal: got=%v err=%v", upd, err)
	}

	// Tasks
	due := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	tk, err := s.Tasks().Create(ctx, &model.Task{UserID: userID, Title: "review documents", DueDate: &due, Priority: model.PriorityHigh, GoalID: &g.GoalID})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if got, err := s.Tasks().GetByID(ctx, userID, tk.TaskID); err != nil || got.Priority != model.PriorityHigh || got.GoalID == nil {
		t.Fatalf("GetTask: got=%v err=%v", got, err)
	}
	if lst, err := s.Tasks().List(ctx, userID); err != nil || len(lst) != 1 {
		t.Fatalf("ListTasks: n=%d err=%v", len(lst), err)
	}
	tk.Completed = true
	if upd, err := s.Tasks().Update(ctx, tk); err != nil || !upd.Completed {
		t.Fatalf("UpdateTask: got=%v err=%v", upd, err)
	}

	// Events
	start := time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC)
	ev, err := s.Events().Create(ctx, &model.CalendarEvent{UserID: userID, Title: "doctor's appointment", StartTime: start, EndTime: start.Add(time.Hour)})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if got, err := s.Events().GetByID(ctx, userID, ev.EventID); err != nil || !got.EndTime.Equal(start.Add(time.Hour)) {
		t.Fatalf("GetEvent: got=%v err=%v", got, err)
	}
	ev.Title = "dentist appointment"
	if upd, err := s.Events().Update(ctx, ev); err != nil || upd.Title != "dentist appointment" {
		t.Fatalf("UpdateEvent: got=%v err=%v", upd, err)
	}

	// Threads and messages
	th, err := s.Threads().Create(ctx, &model.ConversationThread{UserID: userID, Title: "New Conversation"})
	if err != nil || th.ThreadID == "" {
		t.Fatalf("CreateThread: got=%v err=%v", th, err)
	}
	if _, err := s.Threads().AddMessage(ctx, &model.ConversationMessage{ThreadID: th.ThreadID, Role: "user", Content: "Show my goals"}); err != nil {
		t.Fatalf("AddMessage user: %v", err)
	}
	meta := map[string]interface{}{"actions": []interface{}{map[string]interface{}{"action_type": "read", "entity_type": "goal"}}}
	if _, err := s.Threads().AddMessage(ctx, &model.ConversationMessage{ThreadID: th.ThreadID, Role: "assistant", Content: "Here are your goals", Metadata: meta}); err != nil {
		t.Fatalf("AddMessage assistant: %v", err)
	}
	msgs, err := s.Threads().ListMessages(ctx, userID, th.ThreadID)
	if err != nil || len(msgs) != 2 {
		t.Fatalf("ListMessages: n=%d err=%v", len(msgs), err)
	}
	if msgs[0].Role != "user" || msgs[1].Role != "assistant" {
		t.Fatalf("ListMessages: expected conversation order, got %s/%s", msgs[0].Role, msgs[1].Role)
	}
	if msgs[1].Metadata == nil {
		t.Fatalf("ListMessages: assistant metadata lost")
	}

	sum := "summary"
	th.Summary = &sum
	if upd, err := s.Threads().Update(ctx, th); err != nil || upd.Summary == nil {
		t.Fatalf("UpdateThread: got=%v err=%v", upd, err)
	}

	// Deletes
	if err := s.Tasks().Delete(ctx, userID, tk.TaskID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if err := s.Events().Delete(ctx, userID, ev.EventID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if err := s.Goals().Delete(ctx, userID, g.GoalID); err != nil {
		t.Fatalf("DeleteGoal: %v", err)
	}
	if err := s.Threads().Delete(ctx, userID, th.ThreadID); err != nil {
		t.Fatalf("DeleteThread: %v", err)
	}
	if _, err := s.Threads().ListMessages(ctx, userID, th.ThreadID); err == nil {
		t.Fatalf("ListMessages after thread delete: expected error")
	}
	if _, err := s.Goals().GetByID(ctx, userID, g.GoalID); err == nil {
		t.Fatalf("GetGoal after delete: expected error")
	}
}
