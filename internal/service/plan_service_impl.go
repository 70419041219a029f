package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/dayframe/internal/coaching"
	"github.com/alexanderramin/dayframe/internal/db"
	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/alexanderramin/dayframe/internal/repository"
)

// ErrNoPlanToday is returned when today's note has no confirmed plan.
var ErrNoPlanToday = errors.New("no plan for today")

type planService struct {
	notes    repository.DailyNoteRepo
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

func NewPlanService(notes repository.DailyNoteRepo, uow db.UnitOfWork, observers ...UseCaseObserver) PlanService {
	return &planService{
		notes:    notes,
		uow:      uow,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Today(ctx context.Context, userID string, today time.Time) (*domain.DailyNote, error) {
	n, err := s.notes.Get(ctx, userID, today)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoPlanToday
	}
	if err != nil {
		return nil, err
	}
	if n.Plan == nil {
		return nil, ErrNoPlanToday
	}
	return n, nil
}

// CompleteItem marks the index-th Top 3 item (zero-based) of today's plan done.
func (s *planService) CompleteItem(ctx context.Context, userID string, today time.Time, index int) (note *domain.DailyNote, err error) {
	defer observe(ctx, s.observer, "plan-complete-item", time.Now(),
		map[string]any{"user_id": userID, "index": index}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		notes := repository.NewSQLiteDailyNoteRepo(tx)
		n, err := notes.Get(ctx, userID, today)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoPlanToday
		}
		if err != nil {
			return err
		}
		if n.Plan == nil {
			return ErrNoPlanToday
		}
		now := s.now().UTC()
		if err := n.Plan.CompleteItem(index, now); err != nil {
			return fmt.Errorf("item %d: %w", index+1, err)
		}
		n.UpdatedAt = now
		if err := notes.Upsert(ctx, n); err != nil {
			return err
		}
		note = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// Carryover lists yesterday's unfinished Top 3 items as they would be
// offered in today's morning check-in.
func (s *planService) Carryover(ctx context.Context, userID string, today time.Time) ([]domain.CarryoverItem, error) {
	n, err := s.notes.Get(ctx, userID, domain.TruncateDate(today).AddDate(0, 0, -1))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return coaching.CarryoverItems(coaching.CarryoverInput{YesterdayNote: n, Today: today}), nil
}
