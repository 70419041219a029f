package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/dayframe/internal/db"
	"github.com/alexanderramin/dayframe/internal/domain"
)

// SQLiteUserProfileRepo implements UserProfileRepo using a SQLite database.
type SQLiteUserProfileRepo struct {
	db db.DBTX
}

// NewSQLiteUserProfileRepo creates a new SQLiteUserProfileRepo.
func NewSQLiteUserProfileRepo(conn db.DBTX) *SQLiteUserProfileRepo {
	return &SQLiteUserProfileRepo{db: conn}
}

func (r *SQLiteUserProfileRepo) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	query := `SELECT user_id, name, active_projects, timezone, updated_at
		FROM user_profile WHERE user_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)

	var p domain.UserProfile
	var projects, updatedAt string
	err := row.Scan(&p.UserID, &p.Name, &projects, &p.Timezone, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user profile: %w", err)
	}
	if p.ActiveProjects, err = decodeStrings(projects); err != nil {
		return nil, fmt.Errorf("decoding active projects: %w", err)
	}
	if p.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteUserProfileRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	projects, err := encodeStrings(p.ActiveProjects)
	if err != nil {
		return fmt.Errorf("encoding active projects: %w", err)
	}
	query := `INSERT OR REPLACE INTO user_profile (user_id, name, active_projects, timezone, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.UserID,
		p.Name,
		projects,
		p.Timezone,
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting user profile: %w", err)
	}
	return nil
}
