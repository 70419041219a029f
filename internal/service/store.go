package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayframe/internal/challenge"
	"github.com/alexanderramin/dayframe/internal/coaching"
	"github.com/alexanderramin/dayframe/internal/db"
	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/alexanderramin/dayframe/internal/repository"
)

// Store is the SQLite-backed persistence the coaching engine reads context
// from and writes conversations to. Absent records are returned as nil.
type Store struct {
	sessions   repository.CoachingSessionRepo
	messages   repository.MessageRepo
	notes      repository.DailyNoteRepo
	parked     repository.ParkedItemRepo
	challenges repository.ChallengeRepo
	values     repository.ValuesRepo
	profiles   repository.UserProfileRepo
	catalog    *challenge.Catalog
	uow        db.UnitOfWork
	now        func() time.Time
}

var _ coaching.Store = (*Store)(nil)

func NewStore(conn db.DBTX, uow db.UnitOfWork, catalog *challenge.Catalog) *Store {
	return &Store{
		sessions:   repository.NewSQLiteCoachingSessionRepo(conn),
		messages:   repository.NewSQLiteMessageRepo(conn),
		notes:      repository.NewSQLiteDailyNoteRepo(conn),
		parked:     repository.NewSQLiteParkedItemRepo(conn),
		challenges: repository.NewSQLiteChallengeRepo(conn),
		values:     repository.NewSQLiteValuesRepo(conn),
		profiles:   repository.NewSQLiteUserProfileRepo(conn),
		catalog:    catalog,
		uow:        uow,
		now:        time.Now,
	}
}

func (s *Store) YesterdayNote(ctx context.Context, userID string, today time.Time) (*domain.DailyNote, error) {
	n, err := s.notes.Get(ctx, userID, domain.TruncateDate(today).AddDate(0, 0, -1))
	return orNil(n, err)
}

// ParkedItems returns the items still sitting in the parking lot,
// including those mid-review.
func (s *Store) ParkedItems(ctx context.Context, userID string) ([]domain.ParkedItem, error) {
	items, err := s.parked.ListByStatus(ctx, userID, domain.ParkedParked, domain.ParkedUnderReview)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ParkedItem, len(items))
	for i, p := range items {
		out[i] = *p
	}
	return out, nil
}

func (s *Store) ActiveChallenge(ctx context.Context, userID string, today time.Time) (*domain.ActiveChallenge, error) {
	p, err := s.challenges.Active(ctx, userID)
	if p, err = orNil(p, err); p == nil || err != nil {
		return nil, err
	}
	return resolveChallenge(s.catalog, p, today)
}

func (s *Store) CompletedValues(ctx context.Context, userID string) (*domain.ValuesData, error) {
	return orNil(s.values.Get(ctx, userID))
}

func (s *Store) UserProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return orNil(s.profiles.Get(ctx, userID))
}

func (s *Store) SaveSession(ctx context.Context, cs domain.CoachingSession) error {
	return s.sessions.Upsert(ctx, &cs)
}

func (s *Store) AppendMessage(ctx context.Context, msg domain.Message) error {
	return s.messages.Append(ctx, &msg)
}

// UpsertPlan replaces the plan for date. Items whose text survives the
// rewrite keep their completion state, and an empty rawDump keeps the one
// already stored.
func (s *Store) UpsertPlan(ctx context.Context, userID string, date time.Time, plan domain.DailyNotePlan, rawDump string) error {
	plan = plan.Clone()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		notes := repository.NewSQLiteDailyNoteRepo(tx)

		existing, err := orNil(notes.Get(ctx, userID, date))
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.Plan != nil {
				carryCompletion(&plan, existing.Plan)
			}
			if rawDump == "" {
				rawDump = existing.RawDump
			}
		}

		return notes.Upsert(ctx, &domain.DailyNote{
			UserID:    userID,
			Date:      domain.TruncateDate(date),
			Plan:      &plan,
			RawDump:   rawDump,
			UpdatedAt: s.now().UTC(),
		})
	})
}

// RecordStreak extends the user's streak for flow with a completion on day.
func (s *Store) RecordStreak(ctx context.Context, userID string, flow domain.Flow, day time.Time) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		streaks := repository.NewSQLiteStreakRepo(tx)

		st, err := orNil(streaks.Get(ctx, userID, flow))
		if err != nil {
			return err
		}
		if st == nil {
			st = &domain.Streak{UserID: userID, Flow: flow}
		}
		st.Extend(day)
		return streaks.Upsert(ctx, st)
	})
}

func carryCompletion(next, prev *domain.DailyNotePlan) {
	done := make(map[string]domain.Top3Item, len(prev.Top3))
	for _, item := range prev.Top3 {
		if item.Completed {
			done[normalizeItem(item.Text)] = item
		}
	}
	for i := range next.Top3 {
		if old, ok := done[normalizeItem(next.Top3[i].Text)]; ok {
			next.Top3[i].Completed = true
			next.Top3[i].CompletedAt = old.CompletedAt
		}
	}
}

func normalizeItem(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func resolveChallenge(catalog *challenge.Catalog, p *domain.ChallengeProgress, today time.Time) (*domain.ActiveChallenge, error) {
	ch, err := catalog.ByNumber(p.ChallengeNumber)
	if err != nil {
		return nil, fmt.Errorf("active challenge: %w", err)
	}
	return &domain.ActiveChallenge{
		Challenge:        ch,
		StartedAt:        p.StartedAt,
		DaysSinceStarted: domain.DaysBetween(p.StartedAt, today),
	}, nil
}

// orNil turns a not-found lookup into an absent value.
func orNil[T any](v *T, err error) (*T, error) {
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
