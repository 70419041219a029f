package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/dayframe/internal/domain"
)

type CoachingSessionRepo interface {
	Upsert(ctx context.Context, s *domain.CoachingSession) error
	GetByID(ctx context.Context, id string) (*domain.CoachingSession, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.CoachingSession, error)
}

type MessageRepo interface {
	Append(ctx context.Context, m *domain.Message) error
	ListBySession(ctx context.Context, sessionID string) ([]*domain.Message, error)
}

type DailyNoteRepo interface {
	Get(ctx context.Context, userID string, date time.Time) (*domain.DailyNote, error)
	Upsert(ctx context.Context, n *domain.DailyNote) error
	ListRecent(ctx context.Context, userID string, limit int) ([]*domain.DailyNote, error)
}

type ParkedItemRepo interface {
	Create(ctx context.Context, p *domain.ParkedItem) error
	GetByID(ctx context.Context, id string) (*domain.ParkedItem, error)
	ListByStatus(ctx context.Context, userID string, statuses ...domain.ParkedStatus) ([]*domain.ParkedItem, error)
	Update(ctx context.Context, p *domain.ParkedItem) error
}

type ChallengeRepo interface {
	Start(ctx context.Context, p *domain.ChallengeProgress) error
	Active(ctx context.Context, userID string) (*domain.ChallengeProgress, error)
	Complete(ctx context.Context, userID string, number int, at time.Time) error
	List(ctx context.Context, userID string) ([]*domain.ChallengeProgress, error)
}

type ValuesRepo interface {
	Get(ctx context.Context, userID string) (*domain.ValuesData, error)
	Upsert(ctx context.Context, userID string, v *domain.ValuesData) error
}

type StreakRepo interface {
	Get(ctx context.Context, userID string, flow domain.Flow) (*domain.Streak, error)
	Upsert(ctx context.Context, s *domain.Streak) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Streak, error)
}

type UserProfileRepo interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) error
}
