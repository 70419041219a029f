package coaching

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/dayframe/internal/domain"
)

// Seed is the part of the coaching context computed once when a session
// starts. Carryover does not change while the session runs.
type Seed struct {
	Carryover            []domain.CarryoverItem
	YesterdayPlanSummary string
}

// ContextLoader builds a CoachingContext from the store. Read failures on
// any slice are logged and the slice is left empty; loading never aborts a
// turn.
type ContextLoader struct {
	store ContextStore
	log   *zap.Logger
}

func NewContextLoader(store ContextStore, log *zap.Logger) *ContextLoader {
	if log == nil {
		log = zap.NewNop()
	}
	return &ContextLoader{store: store, log: log}
}

// Seed reads yesterday's note and derives carryover for today.
func (l *ContextLoader) Seed(ctx context.Context, userID string, today time.Time) Seed {
	seed := Seed{Carryover: []domain.CarryoverItem{}}
	note, err := l.store.YesterdayNote(ctx, userID, today)
	if err != nil {
		l.readFailed(userID, "yesterday_note", err)
		return seed
	}
	seed.Carryover = CarryoverItems(CarryoverInput{YesterdayNote: note, Today: today})
	if note != nil {
		seed.YesterdayPlanSummary = SummarizePlan(note.Plan)
	}
	return seed
}

// Load assembles the context for the next turn of s.
func (l *ContextLoader) Load(ctx context.Context, s domain.CoachingSession, seed Seed, now time.Time) CoachingContext {
	c := CoachingContext{
		Flow:                 s.Flow,
		TurnNumber:           s.TurnCount + 1,
		MaxTurns:             TurnLimit(s.Flow),
		Today:                domain.TruncateDate(now),
		YesterdayPlanSummary: seed.YesterdayPlanSummary,
		Carryover:            seed.Carryover,
	}

	if p, err := l.store.UserProfile(ctx, s.UserID); err != nil {
		l.readFailed(s.UserID, "user_profile", err)
	} else if p != nil {
		c.UserName = p.Name
		c.ActiveProjects = p.ActiveProjects
	}

	if items, err := l.store.ParkedItems(ctx, s.UserID); err != nil {
		l.readFailed(s.UserID, "parked_items", err)
	} else if len(items) > 0 {
		c.ParkedSummary = FormatParkedItemsForPrompt(items, now)
	}

	if ac, err := l.store.ActiveChallenge(ctx, s.UserID, now); err != nil {
		l.readFailed(s.UserID, "active_challenge", err)
	} else {
		c.ActiveChallenge = ac
	}

	if v, err := l.store.CompletedValues(ctx, s.UserID); err != nil {
		l.readFailed(s.UserID, "completed_values", err)
	} else {
		c.CompletedValuesSummary = SummarizeValues(v)
	}

	return c
}

func (l *ContextLoader) readFailed(userID, op string, err error) {
	l.log.Warn("context read failed",
		zap.String("user_id", userID),
		zap.String("operation", op),
		zap.Error(err),
	)
}
