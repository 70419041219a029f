package service

import (
	"context"
	"time"

	"github.com/alexanderramin/dayframe/internal/domain"
)

type ParkingService interface {
	Park(ctx context.Context, userID, text, reason string) (*domain.ParkedItem, error)
	List(ctx context.Context, userID string, statuses ...domain.ParkedStatus) ([]*domain.ParkedItem, error)
	BeginReview(ctx context.Context, id string) (*domain.ParkedItem, error)
	Reactivate(ctx context.Context, id string) (*domain.ParkedItem, error)
	Repark(ctx context.Context, id string) (*domain.ParkedItem, error)
	Delete(ctx context.Context, id string) (*domain.ParkedItem, error)
}

type PlanService interface {
	Today(ctx context.Context, userID string, today time.Time) (*domain.DailyNote, error)
	CompleteItem(ctx context.Context, userID string, today time.Time, index int) (*domain.DailyNote, error)
	Carryover(ctx context.Context, userID string, today time.Time) ([]domain.CarryoverItem, error)
}

type ChallengeService interface {
	List(ctx context.Context, userID string) ([]ChallengeStatus, error)
	Start(ctx context.Context, userID string, number int) (*domain.ActiveChallenge, error)
	Active(ctx context.Context, userID string, today time.Time) (*domain.ActiveChallenge, error)
}

type ProfileService interface {
	Profile(ctx context.Context, userID string) (*domain.UserProfile, error)
	SaveProfile(ctx context.Context, p *domain.UserProfile) error
	Values(ctx context.Context, userID string) (*domain.ValuesData, error)
	SaveValues(ctx context.Context, userID string, v *domain.ValuesData) error
	Streaks(ctx context.Context, userID string) ([]*domain.Streak, error)
}

// ChallengeStatus is a catalog entry joined with the user's progress on it.
type ChallengeStatus struct {
	Challenge   domain.Challenge
	StartedAt   *time.Time
	CompletedAt *time.Time
	Active      bool
}
