package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/alexanderramin/dayframe/internal/repository"
	"github.com/alexanderramin/dayframe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPlans(t *testing.T) (*planService, repository.DailyNoteRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	notes := repository.NewSQLiteDailyNoteRepo(database)
	svc := NewPlanService(notes, testutil.NewTestUoW(database)).(*planService)
	return svc, notes
}

func TestPlan_TodayWithoutPlan(t *testing.T) {
	svc, notes := setupPlans(t)
	ctx := context.Background()
	day := testutil.Date(2025, time.March, 5)

	_, err := svc.Today(ctx, testutil.TestUserID, day)
	assert.ErrorIs(t, err, ErrNoPlanToday)

	require.NoError(t, notes.Upsert(ctx, testutil.NewTestDailyNote(day, nil)))
	_, err = svc.Today(ctx, testutil.TestUserID, day)
	assert.ErrorIs(t, err, ErrNoPlanToday)
}

func TestPlan_CompleteItem(t *testing.T) {
	svc, notes := setupPlans(t)
	ctx := context.Background()
	day := testutil.Date(2025, time.March, 5)
	svc.now = fixedClock(day.Add(14 * time.Hour))

	require.NoError(t, notes.Upsert(ctx, testutil.NewTestDailyNote(day, testutil.NewTestPlan([]string{"A", "B"}))))

	note, err := svc.CompleteItem(ctx, testutil.TestUserID, day, 1)
	require.NoError(t, err)
	assert.True(t, note.Plan.Top3[1].Completed)

	today, err := svc.Today(ctx, testutil.TestUserID, day)
	require.NoError(t, err)
	assert.False(t, today.Plan.Top3[0].Completed)
	require.True(t, today.Plan.Top3[1].Completed)
	assert.True(t, day.Add(14*time.Hour).Equal(*today.Plan.Top3[1].CompletedAt))
}

func TestPlan_CompleteItemOutOfRange(t *testing.T) {
	svc, notes := setupPlans(t)
	ctx := context.Background()
	day := testutil.Date(2025, time.March, 5)
	require.NoError(t, notes.Upsert(ctx, testutil.NewTestDailyNote(day, testutil.NewTestPlan([]string{"A"}))))

	_, err := svc.CompleteItem(ctx, testutil.TestUserID, day, 3)
	assert.ErrorIs(t, err, domain.ErrItemOutOfRange)

	_, err = svc.CompleteItem(ctx, testutil.TestUserID, day.AddDate(0, 0, 1), 0)
	assert.ErrorIs(t, err, ErrNoPlanToday)
}

func TestPlan_Carryover(t *testing.T) {
	svc, notes := setupPlans(t)
	ctx := context.Background()
	yesterday := testutil.Date(2025, time.March, 4)

	require.NoError(t, notes.Upsert(ctx, testutil.NewTestDailyNote(yesterday,
		testutil.NewTestPlan([]string{"A", "B", "C"}, testutil.WithCompleted(1)))))

	items, err := svc.Carryover(ctx, testutil.TestUserID, yesterday.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Text)
	assert.Equal(t, "C", items[1].Text)
	assert.Equal(t, 1, items[0].DaysSinceOriginal)

	none, err := svc.Carryover(ctx, testutil.TestUserID, yesterday.AddDate(0, 0, 10))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPlan_CarryoverInLocalZone(t *testing.T) {
	for _, name := range []string{"Europe/Berlin", "America/New_York"} {
		t.Run(name, func(t *testing.T) {
			loc, err := time.LoadLocation(name)
			require.NoError(t, err)
			svc, notes := setupPlans(t)
			ctx := context.Background()

			yesterday := time.Date(2026, time.January, 31, 0, 0, 0, 0, loc)
			require.NoError(t, notes.Upsert(ctx, testutil.NewTestDailyNote(yesterday, testutil.NewTestPlan([]string{"Deck"}))))

			for _, today := range []time.Time{
				time.Date(2026, time.February, 1, 0, 0, 0, 0, loc),
				time.Date(2026, time.February, 1, 22, 30, 0, 0, loc),
			} {
				items, err := svc.Carryover(ctx, testutil.TestUserID, today)
				require.NoError(t, err)
				require.Len(t, items, 1)
				assert.Equal(t, 1, items[0].DaysSinceOriginal, "today=%s", today)
			}
		})
	}
}
