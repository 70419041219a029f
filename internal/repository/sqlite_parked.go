package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/dayframe/internal/db"
	"github.com/alexanderramin/dayframe/internal/domain"
)

// SQLiteParkedItemRepo implements ParkedItemRepo using a SQLite database.
type SQLiteParkedItemRepo struct {
	db db.DBTX
}

// NewSQLiteParkedItemRepo creates a new SQLiteParkedItemRepo.
func NewSQLiteParkedItemRepo(conn db.DBTX) *SQLiteParkedItemRepo {
	return &SQLiteParkedItemRepo{db: conn}
}

const parkedColumns = `id, user_id, text, reason, status, parked_at, last_reviewed_at`

func (r *SQLiteParkedItemRepo) Create(ctx context.Context, p *domain.ParkedItem) error {
	query := `INSERT INTO parked_items (` + parkedColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		p.Text,
		p.Reason,
		string(p.Status),
		formatTime(p.ParkedAt),
		nullableTimeToString(p.LastReviewedAt, timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting parked item: %w", err)
	}
	return nil
}

func (r *SQLiteParkedItemRepo) GetByID(ctx context.Context, id string) (*domain.ParkedItem, error) {
	query := `SELECT ` + parkedColumns + ` FROM parked_items WHERE id = ?`
	p, err := scanParkedItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("parked item %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

// ListByStatus returns the user's items in any of statuses, oldest first.
// With no statuses every item is returned.
func (r *SQLiteParkedItemRepo) ListByStatus(ctx context.Context, userID string, statuses ...domain.ParkedStatus) ([]*domain.ParkedItem, error) {
	query := `SELECT ` + parkedColumns + ` FROM parked_items WHERE user_id = ?`
	args := []any{userID}
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, s := range statuses {
			placeholders[i] = "?"
			args = append(args, string(s))
		}
		query += ` AND status IN (` + strings.Join(placeholders, ", ") + `)`
	}
	query += ` ORDER BY parked_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing parked items: %w", err)
	}
	defer rows.Close()

	var items []*domain.ParkedItem
	for rows.Next() {
		p, err := scanParkedItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating parked items: %w", err)
	}
	return items, nil
}

func (r *SQLiteParkedItemRepo) Update(ctx context.Context, p *domain.ParkedItem) error {
	query := `UPDATE parked_items SET text = ?, reason = ?, status = ?, last_reviewed_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Text,
		p.Reason,
		string(p.Status),
		nullableTimeToString(p.LastReviewedAt, timeLayout),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating parked item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating parked item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("parked item %s: %w", p.ID, ErrNotFound)
	}
	return nil
}

func scanParkedItem(row rowScanner) (*domain.ParkedItem, error) {
	var p domain.ParkedItem
	var status, parkedAt string
	var reviewedAt sql.NullString

	if err := row.Scan(&p.ID, &p.UserID, &p.Text, &p.Reason, &status, &parkedAt, &reviewedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning parked item: %w", err)
	}

	var err error
	p.Status = domain.ParkedStatus(status)
	if p.ParkedAt, err = parseTime(parkedAt, "parked_at"); err != nil {
		return nil, err
	}
	p.LastReviewedAt = parseNullableTime(reviewedAt, timeLayout)
	return &p, nil
}
