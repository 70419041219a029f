package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/dayframe/internal/db"
	"github.com/alexanderramin/dayframe/internal/domain"
)

// SQLiteValuesRepo implements ValuesRepo using a SQLite database.
type SQLiteValuesRepo struct {
	db db.DBTX
}

// NewSQLiteValuesRepo creates a new SQLiteValuesRepo.
func NewSQLiteValuesRepo(conn db.DBTX) *SQLiteValuesRepo {
	return &SQLiteValuesRepo{db: conn}
}

func (r *SQLiteValuesRepo) Get(ctx context.Context, userID string) (*domain.ValuesData, error) {
	query := `SELECT core_values, vision, updated_at FROM user_values WHERE user_id = ?`
	var values, updatedAt string
	var v domain.ValuesData
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&values, &v.Vision, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("values: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning values: %w", err)
	}
	if v.CoreValues, err = decodeStrings(values); err != nil {
		return nil, fmt.Errorf("decoding core values: %w", err)
	}
	if v.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *SQLiteValuesRepo) Upsert(ctx context.Context, userID string, v *domain.ValuesData) error {
	values, err := encodeStrings(v.CoreValues)
	if err != nil {
		return fmt.Errorf("encoding core values: %w", err)
	}
	query := `INSERT OR REPLACE INTO user_values (user_id, core_values, vision, updated_at)
		VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, userID, values, v.Vision, formatTime(v.UpdatedAt)); err != nil {
		return fmt.Errorf("upserting values: %w", err)
	}
	return nil
}
