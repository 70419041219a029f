package service

import (
	"context"
	"time"

	"github.com/alexanderramin/dayframe/internal/challenge"
	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/alexanderramin/dayframe/internal/repository"
)

type challengeService struct {
	progress repository.ChallengeRepo
	catalog  *challenge.Catalog
	now      func() time.Time
	observer UseCaseObserver
}

func NewChallengeService(progress repository.ChallengeRepo, catalog *challenge.Catalog, observers ...UseCaseObserver) ChallengeService {
	return &challengeService{
		progress: progress,
		catalog:  catalog,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

// List returns every catalog entry with the user's progress on it.
func (s *challengeService) List(ctx context.Context, userID string) ([]ChallengeStatus, error) {
	progress, err := s.progress.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	active, err := orNil(s.progress.Active(ctx, userID))
	if err != nil {
		return nil, err
	}

	byNumber := make(map[int]*domain.ChallengeProgress, len(progress))
	for _, p := range progress {
		byNumber[p.ChallengeNumber] = p
	}

	all := s.catalog.All()
	out := make([]ChallengeStatus, 0, len(all))
	for _, ch := range all {
		st := ChallengeStatus{Challenge: ch}
		if p, ok := byNumber[ch.Number]; ok {
			started := p.StartedAt
			st.StartedAt = &started
			st.CompletedAt = p.CompletedAt
		}
		st.Active = active != nil && active.ChallengeNumber == ch.Number
		out = append(out, st)
	}
	return out, nil
}

// Start makes number the active challenge. Only one challenge is active at
// a time; starting a new one leaves earlier ones completed.
func (s *challengeService) Start(ctx context.Context, userID string, number int) (ac *domain.ActiveChallenge, err error) {
	defer observe(ctx, s.observer, "challenge-start", time.Now(),
		map[string]any{"user_id": userID, "challenge": number}, &err)

	if _, err = s.catalog.ByNumber(number); err != nil {
		return nil, err
	}
	now := s.now().UTC()

	var current *domain.ChallengeProgress
	current, err = orNil(s.progress.Active(ctx, userID))
	if err != nil {
		return nil, err
	}
	if current != nil && current.ChallengeNumber != number {
		if err = s.progress.Complete(ctx, userID, current.ChallengeNumber, now); err != nil {
			return nil, err
		}
	}

	p := &domain.ChallengeProgress{UserID: userID, ChallengeNumber: number, StartedAt: now}
	if err = s.progress.Start(ctx, p); err != nil {
		return nil, err
	}
	return resolveChallenge(s.catalog, p, now)
}

func (s *challengeService) Active(ctx context.Context, userID string, today time.Time) (*domain.ActiveChallenge, error) {
	p, err := orNil(s.progress.Active(ctx, userID))
	if p == nil || err != nil {
		return nil, err
	}
	return resolveChallenge(s.catalog, p, today)
}
