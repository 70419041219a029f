package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/dayframe/internal/db"
	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/alexanderramin/dayframe/internal/repository"
	"github.com/google/uuid"
)

var ErrEmptyParkedText = errors.New("parked item text is required")

type parkingService struct {
	items    repository.ParkedItemRepo
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

func NewParkingService(items repository.ParkedItemRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ParkingService {
	return &parkingService{
		items:    items,
		uow:      uow,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *parkingService) Park(ctx context.Context, userID, text, reason string) (item *domain.ParkedItem, err error) {
	defer observe(ctx, s.observer, "park", time.Now(), map[string]any{"user_id": userID}, &err)

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyParkedText
	}
	item = &domain.ParkedItem{
		ID:       uuid.New().String(),
		UserID:   userID,
		Text:     text,
		Reason:   strings.TrimSpace(reason),
		Status:   domain.ParkedParked,
		ParkedAt: s.now().UTC(),
	}
	if err = s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// List returns the user's items; with no statuses it lists the ones still
// parked or under review.
func (s *parkingService) List(ctx context.Context, userID string, statuses ...domain.ParkedStatus) ([]*domain.ParkedItem, error) {
	if len(statuses) == 0 {
		statuses = []domain.ParkedStatus{domain.ParkedParked, domain.ParkedUnderReview}
	}
	return s.items.ListByStatus(ctx, userID, statuses...)
}

func (s *parkingService) BeginReview(ctx context.Context, id string) (*domain.ParkedItem, error) {
	return s.transition(ctx, "park-review", id, domain.ParkedUnderReview)
}

func (s *parkingService) Reactivate(ctx context.Context, id string) (*domain.ParkedItem, error) {
	return s.transition(ctx, "park-reactivate", id, domain.ParkedReactivated)
}

func (s *parkingService) Repark(ctx context.Context, id string) (*domain.ParkedItem, error) {
	return s.transition(ctx, "park-repark", id, domain.ParkedParked)
}

// Delete soft-deletes an item under review. The row stays for history.
func (s *parkingService) Delete(ctx context.Context, id string) (*domain.ParkedItem, error) {
	return s.transition(ctx, "park-delete", id, domain.ParkedDeleted)
}

func (s *parkingService) transition(ctx context.Context, name, id string, to domain.ParkedStatus) (item *domain.ParkedItem, err error) {
	fields := map[string]any{"parked_item_id": id, "to": string(to)}
	defer observe(ctx, s.observer, name, time.Now(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteParkedItemRepo(tx)
		p, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		fields["from"] = string(p.Status)
		if err := p.TransitionTo(to, s.now().UTC()); err != nil {
			return err
		}
		if err := repo.Update(ctx, p); err != nil {
			return err
		}
		item = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}
