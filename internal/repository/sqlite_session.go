package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/dayframe/internal/db"
	"github.com/alexanderramin/dayframe/internal/domain"
)

// SQLiteCoachingSessionRepo implements CoachingSessionRepo using a SQLite database.
type SQLiteCoachingSessionRepo struct {
	db db.DBTX
}

// NewSQLiteCoachingSessionRepo creates a new SQLiteCoachingSessionRepo.
func NewSQLiteCoachingSessionRepo(conn db.DBTX) *SQLiteCoachingSessionRepo {
	return &SQLiteCoachingSessionRepo{db: conn}
}

const sessionColumns = `id, user_id, flow, state, turn_count, started_at, last_activity_at, completed_at`

// Upsert writes the full session row. The engine saves after every state
// change so the row is always replaced wholesale.
func (r *SQLiteCoachingSessionRepo) Upsert(ctx context.Context, s *domain.CoachingSession) error {
	query := `INSERT INTO coaching_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			state = excluded.state,
			turn_count = excluded.turn_count,
			last_activity_at = excluded.last_activity_at,
			completed_at = excluded.completed_at`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		string(s.Flow),
		string(s.State),
		s.TurnCount,
		formatTime(s.StartedAt),
		formatTime(s.LastActivityAt),
		nullableTimeToString(s.CompletedAt, timeLayout),
	)
	if err != nil {
		return fmt.Errorf("upserting coaching session: %w", err)
	}
	return nil
}

func (r *SQLiteCoachingSessionRepo) GetByID(ctx context.Context, id string) (*domain.CoachingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM coaching_sessions WHERE id = ?`
	s, err := scanCoachingSession(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("coaching session %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

// ListByUser returns the user's sessions, newest first. A non-positive
// limit returns all of them.
func (r *SQLiteCoachingSessionRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.CoachingSession, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT ` + sessionColumns + ` FROM coaching_sessions
		WHERE user_id = ? ORDER BY started_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing coaching sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.CoachingSession
	for rows.Next() {
		s, err := scanCoachingSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating coaching sessions: %w", err)
	}
	return sessions, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCoachingSession(row rowScanner) (*domain.CoachingSession, error) {
	var s domain.CoachingSession
	var flow, state, startedAt, lastActivityAt string
	var completedAt sql.NullString

	err := row.Scan(&s.ID, &s.UserID, &flow, &state, &s.TurnCount,
		&startedAt, &lastActivityAt, &completedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning coaching session: %w", err)
	}

	s.Flow = domain.Flow(flow)
	s.State = domain.SessionState(state)
	if s.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if s.LastActivityAt, err = parseTime(lastActivityAt, "last_activity_at"); err != nil {
		return nil, err
	}
	s.CompletedAt = parseNullableTime(completedAt, timeLayout)
	return &s, nil
}
