package postgres

import (
	"database/sql"
	"fmt"
)

// EnsureSchema creates the tables the store needs if they do not exist.
// Production deployments run migrations out of band; this keeps local
// development and integration tests self-contained.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS goals (
			rowid_seq BIGSERIAL,
			goal_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			category TEXT,
			target_date TIMESTAMPTZ,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			creation_time TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			rowid_seq BIGSERIAL,
			task_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			goal_id TEXT,
			title TEXT NOT NULL,
			description TEXT,
			due_date TIMESTAMPTZ,
			priority TEXT NOT NULL DEFAULT 'medium',
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			creation_time TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id)`,
		`CREATE TABLE IF NOT EXISTS events (
			rowid_seq BIGSERIAL,
			event_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			location TEXT,
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ NOT NULL,
			creation_time TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_user ON events(user_id)`,
		`CREATE TABLE IF NOT EXISTS threads (
			rowid_seq BIGSERIAL,
			thread_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			summary TEXT,
			creation_time TIMESTAMPTZ NOT NULL DEFAULT now(),
			update_time TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_threads_user ON threads(user_id)`,
		`CREATE TABLE IF NOT EXISTS thread_messages (
			rowid_seq BIGSERIAL,
			message_id TEXT PRIMARY KEY,
			thread_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			metadata TEXT,
			creation_time TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_thread_messages_thread ON thread_messages(thread_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("postgres schema: %w", err)
		}
	}
	return nil
}
