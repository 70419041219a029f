package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/dayframe/internal/db"
	"github.com/alexanderramin/dayframe/internal/domain"
)

// SQLiteChallengeRepo implements ChallengeRepo using a SQLite database.
type SQLiteChallengeRepo struct {
	db db.DBTX
}

// NewSQLiteChallengeRepo creates a new SQLiteChallengeRepo.
func NewSQLiteChallengeRepo(conn db.DBTX) *SQLiteChallengeRepo {
	return &SQLiteChallengeRepo{db: conn}
}

// Start records that the user began a challenge. Restarting one that was
// already started resets its start time and clears completion.
func (r *SQLiteChallengeRepo) Start(ctx context.Context, p *domain.ChallengeProgress) error {
	query := `INSERT INTO challenge_progress (user_id, challenge_number, started_at, completed_at)
		VALUES (?, ?, ?, NULL)
		ON CONFLICT(user_id, challenge_number) DO UPDATE SET
			started_at = excluded.started_at,
			completed_at = NULL`
	_, err := r.db.ExecContext(ctx, query, p.UserID, p.ChallengeNumber, formatTime(p.StartedAt))
	if err != nil {
		return fmt.Errorf("starting challenge %d: %w", p.ChallengeNumber, err)
	}
	return nil
}

// Active returns the most recently started challenge that is not completed.
func (r *SQLiteChallengeRepo) Active(ctx context.Context, userID string) (*domain.ChallengeProgress, error) {
	query := `SELECT user_id, challenge_number, started_at, completed_at
		FROM challenge_progress
		WHERE user_id = ? AND completed_at IS NULL
		ORDER BY started_at DESC LIMIT 1`
	p, err := scanChallengeProgress(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("active challenge: %w", ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (r *SQLiteChallengeRepo) Complete(ctx context.Context, userID string, number int, at time.Time) error {
	query := `UPDATE challenge_progress SET completed_at = ?
		WHERE user_id = ? AND challenge_number = ?`
	res, err := r.db.ExecContext(ctx, query, formatTime(at), userID, number)
	if err != nil {
		return fmt.Errorf("completing challenge %d: %w", number, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("completing challenge %d: %w", number, err)
	}
	if n == 0 {
		return fmt.Errorf("challenge %d: %w", number, ErrNotFound)
	}
	return nil
}

func (r *SQLiteChallengeRepo) List(ctx context.Context, userID string) ([]*domain.ChallengeProgress, error) {
	query := `SELECT user_id, challenge_number, started_at, completed_at
		FROM challenge_progress WHERE user_id = ? ORDER BY challenge_number`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing challenge progress: %w", err)
	}
	defer rows.Close()

	var out []*domain.ChallengeProgress
	for rows.Next() {
		p, err := scanChallengeProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating challenge progress: %w", err)
	}
	return out, nil
}

func scanChallengeProgress(row rowScanner) (*domain.ChallengeProgress, error) {
	var p domain.ChallengeProgress
	var startedAt string
	var completedAt sql.NullString
	if err := row.Scan(&p.UserID, &p.ChallengeNumber, &startedAt, &completedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning challenge progress: %w", err)
	}
	var err error
	if p.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
		return nil, err
	}
	p.CompletedAt = parseNullableTime(completedAt, timeLayout)
	return &p, nil
}
