package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/dayframe/internal/db"
	"github.com/alexanderramin/dayframe/internal/domain"
)

// SQLiteMessageRepo implements MessageRepo using a SQLite database.
type SQLiteMessageRepo struct {
	db db.DBTX
}

// NewSQLiteMessageRepo creates a new SQLiteMessageRepo.
func NewSQLiteMessageRepo(conn db.DBTX) *SQLiteMessageRepo {
	return &SQLiteMessageRepo{db: conn}
}

// Append stores m after every message already in its session. Messages are
// immutable once written.
func (r *SQLiteMessageRepo) Append(ctx context.Context, m *domain.Message) error {
	meta := m.Metadata
	if meta == nil {
		meta = map[string]string{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding message metadata: %w", err)
	}

	query := `INSERT INTO messages (id, session_id, user_id, role, content, metadata, created_at, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE session_id = ?))`
	_, err = r.db.ExecContext(ctx, query,
		m.ID,
		m.SessionID,
		m.UserID,
		string(m.Role),
		m.Content,
		string(metaJSON),
		formatTime(m.CreatedAt),
		m.SessionID,
	)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	return nil
}

// ListBySession returns the transcript in the order it was written.
func (r *SQLiteMessageRepo) ListBySession(ctx context.Context, sessionID string) ([]*domain.Message, error) {
	query := `SELECT id, session_id, user_id, role, content, metadata, created_at
		FROM messages WHERE session_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var msgs []*domain.Message
	for rows.Next() {
		var m domain.Message
		var role, metaJSON, createdAt string
		if err := rows.Scan(&m.ID, &m.SessionID, &m.UserID, &role, &m.Content, &metaJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}
		m.Role = domain.Role(role)
		if err := json.Unmarshal([]byte(metaJSON), &m.Metadata); err != nil {
			return nil, fmt.Errorf("decoding message metadata: %w", err)
		}
		if m.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
			return nil, err
		}
		msgs = append(msgs, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}
	return msgs, nil
}
