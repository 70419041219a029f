package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/dayframe/internal/coaching"
	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/alexanderramin/dayframe/internal/repository"
	"github.com/alexanderramin/dayframe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AbsentRecordsAreNil(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	today := testutil.Date(2025, time.March, 5)

	note, err := store.YesterdayNote(ctx, testutil.TestUserID, today)
	require.NoError(t, err)
	assert.Nil(t, note)

	ac, err := store.ActiveChallenge(ctx, testutil.TestUserID, today)
	require.NoError(t, err)
	assert.Nil(t, ac)

	v, err := store.CompletedValues(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Nil(t, v)

	p, err := store.UserProfile(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Nil(t, p)

	items, err := store.ParkedItems(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStore_YesterdayNote(t *testing.T) {
	store, database := setupStore(t)
	ctx := context.Background()
	notes := repository.NewSQLiteDailyNoteRepo(database)

	yesterday := testutil.Date(2025, time.March, 4)
	require.NoError(t, notes.Upsert(ctx, testutil.NewTestDailyNote(yesterday, testutil.NewTestPlan([]string{"Ship it"}))))

	note, err := store.YesterdayNote(ctx, testutil.TestUserID, yesterday.AddDate(0, 0, 1).Add(9*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "Ship it", note.Plan.Top3[0].Text)
}

func TestStore_ParkedItemsExcludesClosed(t *testing.T) {
	store, database := setupStore(t)
	ctx := context.Background()
	repo := repository.NewSQLiteParkedItemRepo(database)

	require.NoError(t, repo.Create(ctx, testutil.NewTestParkedItem("open")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestParkedItem("reviewing", testutil.WithParkedStatus(domain.ParkedUnderReview))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestParkedItem("done", testutil.WithParkedStatus(domain.ParkedReactivated))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestParkedItem("gone", testutil.WithParkedStatus(domain.ParkedDeleted))))

	items, err := store.ParkedItems(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestStore_ActiveChallengeResolvesCatalog(t *testing.T) {
	store, database := setupStore(t)
	ctx := context.Background()

	started := testutil.Date(2025, time.March, 1)
	require.NoError(t, repository.NewSQLiteChallengeRepo(database).Start(ctx, &domain.ChallengeProgress{
		UserID: testutil.TestUserID, ChallengeNumber: 1, StartedAt: started,
	}))

	ac, err := store.ActiveChallenge(ctx, testutil.TestUserID, started.AddDate(0, 0, 3))
	require.NoError(t, err)
	require.NotNil(t, ac)
	assert.Equal(t, "The Daily Brain Dump", ac.Challenge.Title)
	assert.Equal(t, 3, ac.DaysSinceStarted)
}

func TestStore_ActiveChallengeUnknownNumber(t *testing.T) {
	store, database := setupStore(t)
	ctx := context.Background()

	require.NoError(t, repository.NewSQLiteChallengeRepo(database).Start(ctx, &domain.ChallengeProgress{
		UserID: testutil.TestUserID, ChallengeNumber: 17, StartedAt: time.Now(),
	}))

	_, err := store.ActiveChallenge(ctx, testutil.TestUserID, time.Now())
	assert.Error(t, err)
}

func TestStore_UpsertPlanPreservesCompletion(t *testing.T) {
	store, database := setupStore(t)
	ctx := context.Background()
	day := testutil.Date(2025, time.March, 5)

	first := testutil.NewTestPlan([]string{"Write proposal", "Review PR"})
	require.NoError(t, store.UpsertPlan(ctx, testutil.TestUserID, day, *first, "proposal, PR"))

	// Mark "Review PR" done, then re-confirm a reworded plan.
	_, err := NewPlanService(repository.NewSQLiteDailyNoteRepo(database), testutil.NewTestUoW(database)).
		CompleteItem(ctx, testutil.TestUserID, day, 1)
	require.NoError(t, err)

	second := testutil.NewTestPlan([]string{"review  pr", "Draft budget"})
	require.NoError(t, store.UpsertPlan(ctx, testutil.TestUserID, day, *second, ""))

	note, err := repository.NewSQLiteDailyNoteRepo(database).Get(ctx, testutil.TestUserID, day)
	require.NoError(t, err)
	require.Len(t, note.Plan.Top3, 2)
	assert.True(t, note.Plan.Top3[0].Completed, "unchanged item keeps its completion")
	assert.NotNil(t, note.Plan.Top3[0].CompletedAt)
	assert.False(t, note.Plan.Top3[1].Completed)
	assert.Equal(t, "proposal, PR", note.RawDump, "empty dump keeps the stored one")
}

func TestStore_YesterdayNoteInLocalZone(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	yesterday := time.Date(2026, time.January, 29, 0, 0, 0, 0, berlin)
	require.NoError(t, store.UpsertPlan(ctx, testutil.TestUserID, yesterday, *testutil.NewTestPlan([]string{"Deck", "Call"}), ""))

	today := time.Date(2026, time.January, 30, 7, 0, 0, 0, berlin)
	note, err := store.YesterdayNote(ctx, testutil.TestUserID, today)
	require.NoError(t, err)
	require.NotNil(t, note)

	items := coaching.CarryoverItems(coaching.CarryoverInput{YesterdayNote: note, Today: today})
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].DaysSinceOriginal)
	assert.Equal(t, yesterday, items[0].OriginalDate)
}

func TestStore_UpsertPlanLeavesCallerPlanAlone(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	day := testutil.Date(2025, time.March, 5)

	require.NoError(t, store.UpsertPlan(ctx, testutil.TestUserID, day,
		*testutil.NewTestPlan([]string{"Deck"}, testutil.WithCompleted(0)), ""))

	plan := *testutil.NewTestPlan([]string{"Deck", "Call"})
	require.NoError(t, store.UpsertPlan(ctx, testutil.TestUserID, day, plan, ""))

	assert.False(t, plan.Top3[0].Completed, "completion is carried into the stored copy only")
	assert.Nil(t, plan.Top3[0].CompletedAt)

	note, err := store.YesterdayNote(ctx, testutil.TestUserID, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.True(t, note.Plan.Top3[0].Completed)
}

func TestStore_UpsertPlanUsesClock(t *testing.T) {
	store, database := setupStore(t)
	ctx := context.Background()
	day := testutil.Date(2025, time.March, 5)
	at := day.Add(7 * time.Hour)
	store.now = fixedClock(at)

	require.NoError(t, store.UpsertPlan(ctx, testutil.TestUserID, day, *testutil.NewTestPlan([]string{"A"}), ""))

	note, err := repository.NewSQLiteDailyNoteRepo(database).Get(ctx, testutil.TestUserID, day)
	require.NoError(t, err)
	assert.True(t, at.Equal(note.UpdatedAt))
}

func TestStore_UpsertPlanRollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	boom := assert.AnError
	store := NewStore(database, &testutil.FailingWriteUoW{DB: database, FailOn: 1, Err: boom}, testCatalog(t))

	err := store.UpsertPlan(ctx, testutil.TestUserID, testutil.Date(2025, time.March, 5),
		*testutil.NewTestPlan([]string{"A"}), "a")
	assert.ErrorIs(t, err, boom)

	_, err = repository.NewSQLiteDailyNoteRepo(database).Get(ctx, testutil.TestUserID, testutil.Date(2025, time.March, 5))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_RecordStreak(t *testing.T) {
	store, database := setupStore(t)
	ctx := context.Background()
	day := testutil.Date(2025, time.March, 5)

	require.NoError(t, store.RecordStreak(ctx, testutil.TestUserID, domain.FlowMorning, day))
	require.NoError(t, store.RecordStreak(ctx, testutil.TestUserID, domain.FlowMorning, day))
	require.NoError(t, store.RecordStreak(ctx, testutil.TestUserID, domain.FlowMorning, day.AddDate(0, 0, 1)))
	require.NoError(t, store.RecordStreak(ctx, testutil.TestUserID, domain.FlowMorning, day.AddDate(0, 0, 5)))

	st, err := repository.NewSQLiteStreakRepo(database).Get(ctx, testutil.TestUserID, domain.FlowMorning)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Current)
	assert.Equal(t, 2, st.Longest)
}

func TestStore_SessionAndMessages(t *testing.T) {
	store, database := setupStore(t)
	ctx := context.Background()

	s := testutil.NewTestCoachingSession(domain.FlowMorning)
	require.NoError(t, store.SaveSession(ctx, *s))
	require.NoError(t, store.AppendMessage(ctx, *testutil.NewTestMessage(s.ID, domain.RoleUser, "hi")))

	s.State = domain.SessionInProgress
	s.TurnCount = 1
	require.NoError(t, store.SaveSession(ctx, *s))

	saved, err := repository.NewSQLiteCoachingSessionRepo(database).GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionInProgress, saved.State)

	msgs, err := repository.NewSQLiteMessageRepo(database).ListBySession(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}
