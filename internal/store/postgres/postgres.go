package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/compasshq/compass/server/internal/model"
	"github.com/compasshq/compass/server/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Goals() store.Goals     { return &goals{db: s.db} }
func (s *pgStore) Tasks() store.Tasks     { return &tasks{db: s.db} }
func (s *pgStore) Events() store.Events   { return &events{db: s.db} }
func (s *pgStore) Threads() store.Threads { return &threads{db: s.db} }

// HealthPing verifies database connectivity.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	return err
}

// --- Goals ---

type goals struct{ db *sql.DB }

func (g *goals) Create(ctx context.Context, m *model.Goal) (*model.Goal, error) {
	id := uuid.New().String()
	var created time.Time
	row := g.db.QueryRowContext(ctx, `
        INSERT INTO goals (goal_id, user_id, title, description, category, target_date, completed)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING creation_time
    `, id, m.UserID, m.Title, m.Description, m.Category, m.TargetDate, m.Completed)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.GoalID = id
	out.CreationTime = created
	return &out, nil
}

func (g *goals) GetByID(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	row := g.db.QueryRowContext(ctx, `
        SELECT goal_id, user_id, title, description, category, target_date, completed, creation_time
        FROM goals WHERE user_id=$1 AND goal_id=$2
    `, userID, goalID)
	return scanGoal(row)
}

func (g *goals) List(ctx context.Context, userID string) ([]*model.Goal, error) {
	rows, err := g.db.QueryContext(ctx, `
        SELECT goal_id, user_id, title, description, category, target_date, completed, creation_time
        FROM goals WHERE user_id=$1 ORDER BY rowid_seq DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Goal
	for rows.Next() {
		m, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (g *goals) Update(ctx context.Context, m *model.Goal) (*model.Goal, error) {
	res, err := g.db.ExecContext(ctx, `
        UPDATE goals SET title=$1, description=$2, category=$3, target_date=$4, completed=$5
        WHERE user_id=$6 AND goal_id=$7
    `, m.Title, m.Description, m.Category, m.TargetDate, m.Completed, m.UserID, m.GoalID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return g.GetByID(ctx, m.UserID, m.GoalID)
}

func (g *goals) Delete(ctx context.Context, userID, goalID string) error {
	res, err := g.db.ExecContext(ctx, `DELETE FROM goals WHERE user_id=$1 AND goal_id=$2`, userID, goalID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanGoal(row rowScanner) (*model.Goal, error) {
	var m model.Goal
	if err := row.Scan(&m.GoalID, &m.UserID, &m.Title, &m.Description, &m.Category, &m.TargetDate, &m.Completed, &m.CreationTime); err != nil {
		return nil, mapNoRows(err)
	}
	return &m, nil
}

// --- Tasks ---

type tasks struct{ db *sql.DB }

func (t *tasks) Create(ctx context.Context, m *model.Task) (*model.Task, error) {
	id := uuid.New().String()
	priority := m.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	var created time.Time
	row := t.db.QueryRowContext(ctx, `
        INSERT INTO tasks (task_id, user_id, goal_id, title, description, due_date, priority, completed)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING creation_time
    `, id, m.UserID, m.GoalID, m.Title, m.Description, m.DueDate, priority, m.Completed)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.TaskID = id
	out.Priority = priority
	out.CreationTime = created
	return &out, nil
}

func (t *tasks) GetByID(ctx context.Context, userID, taskID string) (*model.Task, error) {
	row := t.db.QueryRowContext(ctx, `
        SELECT task_id, user_id, goal_id, title, description, due_date, priority, completed, creation_time
        FROM tasks WHERE user_id=$1 AND task_id=$2
    `, userID, taskID)
	return scanTask(row)
}

func (t *tasks) List(ctx context.Context, userID string) ([]*model.Task, error) {
	rows, err := t.db.QueryContext(ctx, `
        SELECT task_id, user_id, goal_id, title, description, due_date, priority, completed, creation_time
        FROM tasks WHERE user_id=$1 ORDER BY rowid_seq DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Task
	for rows.Next() {
		m, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (t *tasks) Update(ctx context.Context, m *model.Task) (*model.Task, error) {
	res, err := t.db.ExecContext(ctx, `
        UPDATE tasks SET goal_id=$1, title=$2, description=$3, due_date=$4, priority=$5, completed=$6
        WHERE user_id=$7 AND task_id=$8
    `, m.GoalID, m.Title, m.Description, m.DueDate, m.Priority, m.Completed, m.UserID, m.TaskID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return t.GetByID(ctx, m.UserID, m.TaskID)
}

func (t *tasks) Delete(ctx context.Context, userID, taskID string) error {
	res, err := t.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id=$1 AND task_id=$2`, userID, taskID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanTask(row rowScanner) (*model.Task, error) {
	var m model.Task
	if err := row.Scan(&m.TaskID, &m.UserID, &m.GoalID, &m.Title, &m.Description, &m.DueDate, &m.Priority, &m.Completed, &m.CreationTime); err != nil {
		return nil, mapNoRows(err)
	}
	return &m, nil
}

// --- Events ---

type events struct{ db *sql.DB }

func (e *events) Create(ctx context.Context, m *model.CalendarEvent) (*model.CalendarEvent, error) {
	id := uuid.New().String()
	var created time.Time
	row := e.db.QueryRowContext(ctx, `
        INSERT INTO events (event_id, user_id, title, description, location, start_time, end_time)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING creation_time
    `, id, m.UserID, m.Title, m.Description, m.Location, m.StartTime, m.EndTime)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.EventID = id
	out.CreationTime = created
	return &out, nil
}

func (e *events) GetByID(ctx context.Context, userID, eventID string) (*model.CalendarEvent, error) {
	row := e.db.QueryRowContext(ctx, `
        SELECT event_id, user_id, title, description, location, start_time, end_time, creation_time
        FROM events WHERE user_id=$1 AND event_id=$2
    `, userID, eventID)
	return scanEvent(row)
}

func (e *events) List(ctx context.Context, userID string) ([]*model.CalendarEvent, error) {
	rows, err := e.db.QueryContext(ctx, `
        SELECT event_id, user_id, title, description, location, start_time, end_time, creation_time
        FROM events WHERE user_id=$1 ORDER BY rowid_seq DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.CalendarEvent
	for rows.Next() {
		m, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (e *events) Update(ctx context.Context, m *model.CalendarEvent) (*model.CalendarEvent, error) {
	res, err := e.db.ExecContext(ctx, `
        UPDATE events SET title=$1, description=$2, location=$3, start_time=$4, end_time=$5
        WHERE user_id=$6 AND event_id=$7
    `, m.Title, m.Description, m.Location, m.StartTime, m.EndTime, m.UserID, m.EventID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return e.GetByID(ctx, m.UserID, m.EventID)
}

func (e *events) Delete(ctx context.Context, userID, eventID string) error {
	res, err := e.db.ExecContext(ctx, `DELETE FROM events WHERE user_id=$1 AND event_id=$2`, userID, eventID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanEvent(row rowScanner) (*model.CalendarEvent, error) {
	var m model.CalendarEvent
	if err := row.Scan(&m.EventID, &m.UserID, &m.Title, &m.Description, &m.Location, &m.StartTime, &m.EndTime, &m.CreationTime); err != nil {
		return nil, mapNoRows(err)
	}
	return &m, nil
}

// --- Threads ---

type threads struct{ db *sql.DB }

func (t *threads) Create(ctx context.Context, m *model.ConversationThread) (*model.ConversationThread, error) {
	id := uuid.New().String()
	var created, updated time.Time
	row := t.db.QueryRowContext(ctx, `
        INSERT INTO threads (thread_id, user_id, title, summary)
        VALUES ($1,$2,$3,$4)
        RETURNING creation_time, update_time
    `, id, m.UserID, m.Title, m.Summary)
	if err := row.Scan(&created, &updated); err != nil {
		return nil, err
	}
	out := *m
	out.ThreadID = id
	out.CreationTime = created
	out.UpdateTime = updated
	return &out, nil
}

func (t *threads) GetByID(ctx context.Context, userID, threadID string) (*model.ConversationThread, error) {
	row := t.db.QueryRowContext(ctx, `
        SELECT thread_id, user_id, title, summary, creation_time, update_time
        FROM threads WHERE user_id=$1 AND thread_id=$2
    `, userID, threadID)
	return scanThread(row)
}

func (t *threads) List(ctx context.Context, userID string) ([]*model.ConversationThread, error) {
	rows, err := t.db.QueryContext(ctx, `
        SELECT thread_id, user_id, title, summary, creation_time, update_time
        FROM threads WHERE user_id=$1 ORDER BY update_time DESC, rowid_seq DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.ConversationThread
	for rows.Next() {
		m, err := scanThread(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (t *threads) Update(ctx context.Context, m *model.ConversationThread) (*model.ConversationThread, error) {
	res, err := t.db.ExecContext(ctx, `
        UPDATE threads SET title=$1, summary=$2, update_time=now() WHERE user_id=$3 AND thread_id=$4
    `, m.Title, m.Summary, m.UserID, m.ThreadID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return t.GetByID(ctx, m.UserID, m.ThreadID)
}

func (t *threads) Delete(ctx context.Context, userID, threadID string) error {
	res, err := t.db.ExecContext(ctx, `DELETE FROM threads WHERE user_id=$1 AND thread_id=$2`, userID, threadID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	_, err = t.db.ExecContext(ctx, `DELETE FROM thread_messages WHERE thread_id=$1`, threadID)
	return err
}

func (t *threads) AddMessage(ctx context.Context, m *model.ConversationMessage) (*model.ConversationMessage, error) {
	id := uuid.New().String()
	var metaJSON *string
	if m.Metadata != nil {
		raw, err := json.Marshal(m.Metadata)
		if err != nil {
			return nil, err
		}
		s := string(raw)
		metaJSON = &s
	}
	var created time.Time
	row := t.db.QueryRowContext(ctx, `
        INSERT INTO thread_messages (message_id, thread_id, role, content, metadata)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING creation_time
    `, id, m.ThreadID, m.Role, m.Content, metaJSON)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.MessageID = id
	out.CreationTime = created
	return &out, nil
}

func (t *threads) ListMessages(ctx context.Context, userID, threadID string) ([]*model.ConversationMessage, error) {
	if _, err := t.GetByID(ctx, userID, threadID); err != nil {
		return nil, err
	}
	rows, err := t.db.QueryContext(ctx, `
        SELECT message_id, thread_id, role, content, metadata, creation_time
        FROM thread_messages WHERE thread_id=$1 ORDER BY rowid_seq ASC
    `, threadID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.ConversationMessage
	for rows.Next() {
		var m model.ConversationMessage
		var metaJSON *string
		if err := rows.Scan(&m.MessageID, &m.ThreadID, &m.Role, &m.Content, &metaJSON, &m.CreationTime); err != nil {
			return nil, err
		}
		if metaJSON != nil && *metaJSON != "" {
			if err := json.Unmarshal([]byte(*metaJSON), &m.Metadata); err != nil {
				return nil, err
			}
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func scanThread(row rowScanner) (*model.ConversationThread, error) {
	var m model.ConversationThread
	if err := row.Scan(&m.ThreadID, &m.UserID, &m.Title, &m.Summary, &m.CreationTime, &m.UpdateTime); err != nil {
		return nil, mapNoRows(err)
	}
	return &m, nil
}
