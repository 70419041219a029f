package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/dayframe/internal/db"
	"github.com/alexanderramin/dayframe/internal/domain"
)

// SQLiteStreakRepo implements StreakRepo using a SQLite database.
type SQLiteStreakRepo struct {
	db db.DBTX
}

// NewSQLiteStreakRepo creates a new SQLiteStreakRepo.
func NewSQLiteStreakRepo(conn db.DBTX) *SQLiteStreakRepo {
	return &SQLiteStreakRepo{db: conn}
}

func (r *SQLiteStreakRepo) Get(ctx context.Context, userID string, flow domain.Flow) (*domain.Streak, error) {
	query := `SELECT user_id, flow, current, longest, last_date FROM streaks
		WHERE user_id = ? AND flow = ?`
	s, err := scanStreak(r.db.QueryRowContext(ctx, query, userID, string(flow)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s streak: %w", flow, ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *SQLiteStreakRepo) Upsert(ctx context.Context, s *domain.Streak) error {
	var lastDate interface{}
	if !s.LastDate.IsZero() {
		lastDate = formatDate(s.LastDate)
	}
	query := `INSERT OR REPLACE INTO streaks (user_id, flow, current, longest, last_date)
		VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, s.UserID, string(s.Flow), s.Current, s.Longest, lastDate); err != nil {
		return fmt.Errorf("upserting streak: %w", err)
	}
	return nil
}

func (r *SQLiteStreakRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Streak, error) {
	query := `SELECT user_id, flow, current, longest, last_date FROM streaks
		WHERE user_id = ? ORDER BY flow`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing streaks: %w", err)
	}
	defer rows.Close()

	var out []*domain.Streak
	for rows.Next() {
		s, err := scanStreak(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating streaks: %w", err)
	}
	return out, nil
}

func scanStreak(row rowScanner) (*domain.Streak, error) {
	var s domain.Streak
	var flow string
	var lastDate sql.NullString
	if err := row.Scan(&s.UserID, &flow, &s.Current, &s.Longest, &lastDate); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning streak: %w", err)
	}
	s.Flow = domain.Flow(flow)
	if lastDate.Valid && lastDate.String != "" {
		d, err := parseDate(lastDate.String)
		if err != nil {
			return nil, err
		}
		s.LastDate = d
	}
	return &s, nil
}
