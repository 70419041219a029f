package coaching

import (
	"context"
	"time"

	"github.com/alexanderramin/dayframe/internal/domain"
)

// ContextStore is the read side of the persistent store. Absent records are
// reported as nil with a nil error.
type ContextStore interface {
	YesterdayNote(ctx context.Context, userID string, today time.Time) (*domain.DailyNote, error)
	ParkedItems(ctx context.Context, userID string) ([]domain.ParkedItem, error)
	ActiveChallenge(ctx context.Context, userID string, today time.Time) (*domain.ActiveChallenge, error)
	CompletedValues(ctx context.Context, userID string) (*domain.ValuesData, error)
	UserProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
}

// SessionStore is the write side used while a conversation runs.
type SessionStore interface {
	SaveSession(ctx context.Context, s domain.CoachingSession) error
	AppendMessage(ctx context.Context, msg domain.Message) error
	UpsertPlan(ctx context.Context, userID string, date time.Time, plan domain.DailyNotePlan, rawDump string) error
	RecordStreak(ctx context.Context, userID string, flow domain.Flow, day time.Time) error
}

// Store is everything the engine needs from persistence.
type Store interface {
	ContextStore
	SessionStore
}
