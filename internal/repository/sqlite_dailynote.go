package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/dayframe/internal/db"
	"github.com/alexanderramin/dayframe/internal/domain"
)

// SQLiteDailyNoteRepo implements DailyNoteRepo using a SQLite database.
// The plan is stored as a JSON document alongside the raw brain dump.
type SQLiteDailyNoteRepo struct {
	db db.DBTX
}

// NewSQLiteDailyNoteRepo creates a new SQLiteDailyNoteRepo.
func NewSQLiteDailyNoteRepo(conn db.DBTX) *SQLiteDailyNoteRepo {
	return &SQLiteDailyNoteRepo{db: conn}
}

func (r *SQLiteDailyNoteRepo) Get(ctx context.Context, userID string, date time.Time) (*domain.DailyNote, error) {
	query := `SELECT user_id, note_date, plan, raw_dump, updated_at
		FROM daily_notes WHERE user_id = ? AND note_date = ?`
	n, err := scanDailyNote(r.db.QueryRowContext(ctx, query, userID, formatDate(date)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("daily note %s: %w", formatDate(date), ErrNotFound)
		}
		return nil, err
	}
	return n, nil
}

func (r *SQLiteDailyNoteRepo) Upsert(ctx context.Context, n *domain.DailyNote) error {
	var plan interface{}
	if n.Plan != nil {
		b, err := json.Marshal(n.Plan)
		if err != nil {
			return fmt.Errorf("encoding plan: %w", err)
		}
		plan = string(b)
	}
	query := `INSERT INTO daily_notes (user_id, note_date, plan, raw_dump, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, note_date) DO UPDATE SET
			plan = excluded.plan,
			raw_dump = excluded.raw_dump,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		n.UserID,
		formatDate(n.Date),
		plan,
		n.RawDump,
		formatTime(n.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting daily note: %w", err)
	}
	return nil
}

// ListRecent returns the user's notes, newest date first.
func (r *SQLiteDailyNoteRepo) ListRecent(ctx context.Context, userID string, limit int) ([]*domain.DailyNote, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT user_id, note_date, plan, raw_dump, updated_at
		FROM daily_notes WHERE user_id = ? ORDER BY note_date DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing daily notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.DailyNote
	for rows.Next() {
		n, err := scanDailyNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily notes: %w", err)
	}
	return notes, nil
}

func scanDailyNote(row rowScanner) (*domain.DailyNote, error) {
	var n domain.DailyNote
	var noteDate, updatedAt string
	var plan sql.NullString

	if err := row.Scan(&n.UserID, &noteDate, &plan, &n.RawDump, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning daily note: %w", err)
	}

	var err error
	if n.Date, err = parseDate(noteDate); err != nil {
		return nil, err
	}
	if n.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	if plan.Valid && plan.String != "" {
		var p domain.DailyNotePlan
		if err := json.Unmarshal([]byte(plan.String), &p); err != nil {
			return nil, fmt.Errorf("decoding plan for %s: %w", noteDate, err)
		}
		n.Plan = &p
	}
	return &n, nil
}
