package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS coaching_sessions (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL,
		flow             TEXT NOT NULL
		                 CHECK(flow IN ('morning','evening','adhoc','challenge_intro')),
		state            TEXT NOT NULL DEFAULT 'created'
		                 CHECK(state IN ('created','in_progress','plan_confirmed','completed','abandoned')),
		turn_count       INTEGER NOT NULL DEFAULT 0 CHECK(turn_count >= 0),
		started_at       TEXT NOT NULL,
		last_activity_at TEXT NOT NULL,
		completed_at     TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_coaching_sessions_user ON coaching_sessions(user_id, started_at)`,

	`CREATE TABLE IF NOT EXISTS messages (
		id         TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES coaching_sessions(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL,
		role       TEXT NOT NULL CHECK(role IN ('user','assistant','system')),
		content    TEXT NOT NULL,
		metadata   TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL,
		seq        INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, seq)`,

	`CREATE TABLE IF NOT EXISTS daily_notes (
		user_id    TEXT NOT NULL,
		note_date  TEXT NOT NULL,
		plan       TEXT,
		raw_dump   TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL,
		PRIMARY KEY (user_id, note_date)
	)`,

	`CREATE TABLE IF NOT EXISTS parked_items (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL,
		text             TEXT NOT NULL,
		reason           TEXT NOT NULL DEFAULT '',
		status           TEXT NOT NULL DEFAULT 'parked'
		                 CHECK(status IN ('parked','under_review','reactivated','deleted')),
		parked_at        TEXT NOT NULL,
		last_reviewed_at TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_parked_items_user_status ON parked_items(user_id, status)`,

	`CREATE TABLE IF NOT EXISTS challenge_progress (
		user_id          TEXT NOT NULL,
		challenge_number INTEGER NOT NULL CHECK(challenge_number > 0),
		started_at       TEXT NOT NULL,
		completed_at     TEXT,
		PRIMARY KEY (user_id, challenge_number)
	)`,

	`CREATE TABLE IF NOT EXISTS user_values (
		user_id     TEXT PRIMARY KEY,
		core_values TEXT NOT NULL DEFAULT '[]',
		vision      TEXT NOT NULL DEFAULT '',
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS streaks (
		user_id   TEXT NOT NULL,
		flow      TEXT NOT NULL,
		current   INTEGER NOT NULL DEFAULT 0,
		longest   INTEGER NOT NULL DEFAULT 0,
		last_date TEXT,
		PRIMARY KEY (user_id, flow)
	)`,

	`CREATE TABLE IF NOT EXISTS user_profile (
		user_id         TEXT PRIMARY KEY,
		name            TEXT NOT NULL DEFAULT '',
		active_projects TEXT NOT NULL DEFAULT '[]',
		timezone        TEXT NOT NULL DEFAULT '',
		updated_at      TEXT NOT NULL
	)`,
}
