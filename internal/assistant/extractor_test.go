package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compasshq/compass/server/internal/model"
	"github.com/compasshq/compass/server/internal/timeparse"
)

// Wednesday reference for deterministic date resolution.
var extractorRef = time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)

func extractorWith(responses ...string) *Extractor {
	e := NewExtractor(&scriptedOracle{responses: responses}, timeparse.New(time.UTC), zerolog.Nop())
	e.now = func() time.Time { return extractorRef }
	return e
}

func TestExtractCreate_TaskDefaults(t *testing.T) {
	e := extractorWith(`{"success": true, "title": "review documents"}`)
	payloads, err := e.ExtractCreate(context.Background(), "Add a task to review documents", DomainTask)
	require.NoError(t, err)
	require.Len(t, payloads, 1)

	p := payloads[0]
	assert.Equal(t, "review documents", p.Title)
	assert.Equal(t, model.PriorityMedium, p.Priority)
	// No due date in the message: default is one week out at 9:00.
	assert.Equal(t, time.Date(2026, 9, 9, 9, 0, 0, 0, time.UTC), p.Due)
}

func TestExtractCreate_TaskWithDate(t *testing.T) {
	e := extractorWith(`{"success": true, "title": "review documents", "due_date": "next friday", "priority": "HIGH"}`)
	payloads, err := e.ExtractCreate(context.Background(), "msg", DomainTask)
	require.NoError(t, err)
	require.Len(t, payloads, 1)

	assert.Equal(t, time.Date(2026, 9, 4, 9, 0, 0, 0, time.UTC), payloads[0].Due)
	assert.Equal(t, model.PriorityHigh, payloads[0].Priority)
}

func TestExtractCreate_GoalDefaultTargetDate(t *testing.T) {
	e := extractorWith(`{"success": true, "title": "Learn Spanish", "target_date": "gibberish"}`)
	payloads, err := e.ExtractCreate(context.Background(), "msg", DomainGoal)
	require.NoError(t, err)
	require.Len(t, payloads, 1)
	// Unresolvable expression falls back to one month out.
	assert.Equal(t, time.Date(2026, 10, 2, 9, 0, 0, 0, time.UTC), payloads[0].Due)
}

func TestExtractCreate_EventDateAndTime(t *testing.T) {
	e := extractorWith(`{"success": true, "title": "dentist appointment", "date": "next friday", "time": "2:30 PM", "location": "Main St clinic"}`)
	payloads, err := e.ExtractCreate(context.Background(), "msg", DomainEvent)
	require.NoError(t, err)
	require.Len(t, payloads, 1)

	p := payloads[0]
	assert.Equal(t, time.Date(2026, 9, 4, 14, 30, 0, 0, time.UTC), p.Due)
	assert.Equal(t, p.Due.Add(time.Hour), p.End)
	assert.Equal(t, "Main St clinic", p.Location)
}

func TestExtractCreate_Batch(t *testing.T) {
	e := extractorWith("{\"success\": true, \"title\": \"A\"}\n{\"success\": true, \"title\": \"B\"}")
	payloads, err := e.ExtractCreate(context.Background(), "add goals: A, B", DomainGoal)
	require.NoError(t, err)
	require.Len(t, payloads, 2)
	assert.Equal(t, "A", payloads[0].Title)
	assert.Equal(t, "B", payloads[1].Title)
}

func TestExtractCreate_Insufficiency(t *testing.T) {
	e := extractorWith(`{"success": false, "error": "no concrete task described"}`)
	payloads, err := e.ExtractCreate(context.Background(), "do something I guess", DomainTask)
	require.NoError(t, err)
	assert.Nil(t, payloads)
}

func TestExtractCreate_NoJSON(t *testing.T) {
	e := extractorWith("Could you tell me more about what you'd like to do?")
	payloads, err := e.ExtractCreate(context.Background(), "hmm", DomainTask)
	require.NoError(t, err)
	assert.Nil(t, payloads)
}

func TestExtractCreate_OracleErrorPropagates(t *testing.T) {
	e := NewExtractor(&scriptedOracle{err: errors.New("quota exceeded")}, timeparse.New(time.UTC), zerolog.Nop())
	_, err := e.ExtractCreate(context.Background(), "msg", DomainTask)
	assert.Error(t, err)
}

func TestExtractTitle(t *testing.T) {
	e := extractorWith(`{"title": "learn React"}`)
	title, err := e.ExtractTitle(context.Background(), "Delete my goal to learn React", DomainGoal, OpDelete)
	require.NoError(t, err)
	assert.Equal(t, "learn React", title)

	e = extractorWith(`{"title": ""}`)
	title, err = e.ExtractTitle(context.Background(), "delete it", DomainGoal, OpDelete)
	require.NoError(t, err)
	assert.Empty(t, title)
}

func TestExtractUpdate(t *testing.T) {
	e := extractorWith(`{"title": "reading goal", "date": "next month", "priority": "High"}`)
	upd, err := e.ExtractUpdate(context.Background(), "push my reading goal to next month, high priority", DomainGoal)
	require.NoError(t, err)
	assert.Equal(t, "reading goal", upd.TitleRef)
	assert.Equal(t, "next month", upd.Date)
	assert.Equal(t, "high", upd.Priority)
	assert.Empty(t, upd.NewTitle)
}
