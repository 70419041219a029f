package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/alexanderramin/dayframe/internal/repository"
)

type profileService struct {
	profiles repository.UserProfileRepo
	values   repository.ValuesRepo
	streaks  repository.StreakRepo
	now      func() time.Time
}

func NewProfileService(profiles repository.UserProfileRepo, values repository.ValuesRepo, streaks repository.StreakRepo) ProfileService {
	return &profileService{profiles: profiles, values: values, streaks: streaks, now: time.Now}
}

// Profile returns nil when the user has not set one up.
func (s *profileService) Profile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return orNil(s.profiles.Get(ctx, userID))
}

func (s *profileService) SaveProfile(ctx context.Context, p *domain.UserProfile) error {
	p.Name = strings.TrimSpace(p.Name)
	p.ActiveProjects = compact(p.ActiveProjects)
	p.UpdatedAt = s.now().UTC()
	return s.profiles.Upsert(ctx, p)
}

// Values returns nil until the core values exercise has been completed.
func (s *profileService) Values(ctx context.Context, userID string) (*domain.ValuesData, error) {
	return orNil(s.values.Get(ctx, userID))
}

func (s *profileService) SaveValues(ctx context.Context, userID string, v *domain.ValuesData) error {
	v.CoreValues = compact(v.CoreValues)
	v.Vision = strings.TrimSpace(v.Vision)
	v.UpdatedAt = s.now().UTC()
	return s.values.Upsert(ctx, userID, v)
}

func (s *profileService) Streaks(ctx context.Context, userID string) ([]*domain.Streak, error) {
	return s.streaks.ListByUser(ctx, userID)
}

// compact trims entries and drops blanks and case-insensitive duplicates.
func compact(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
