package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/alexanderramin/dayframe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyNoteRepo_UpsertAndGet(t *testing.T) {
	repo := NewSQLiteDailyNoteRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	day := testutil.Date(2025, time.March, 4)

	plan := testutil.NewTestPlan([]string{"Write proposal", "Review PR"},
		testutil.WithAdminBatch("email Sam"),
		testutil.WithFocusBlock("09:00", "11:00"),
		testutil.WithCompleted(1),
	)
	note := testutil.NewTestDailyNote(day, plan)
	note.RawDump = "proposal, PR, email"
	require.NoError(t, repo.Upsert(ctx, note))

	fetched, err := repo.Get(ctx, testutil.TestUserID, day)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-04", fetched.Date.Format(domain.DateLayout))
	assert.Equal(t, "proposal, PR, email", fetched.RawDump)
	require.NotNil(t, fetched.Plan)
	assert.Equal(t, *plan, *fetched.Plan)
}

func TestDailyNoteRepo_UpsertReplacesPlan(t *testing.T) {
	repo := NewSQLiteDailyNoteRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	day := testutil.Date(2025, time.March, 4)

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestDailyNote(day, testutil.NewTestPlan([]string{"A"}))))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestDailyNote(day, testutil.NewTestPlan([]string{"B", "C"}))))

	fetched, err := repo.Get(ctx, testutil.TestUserID, day)
	require.NoError(t, err)
	require.Len(t, fetched.Plan.Top3, 2)
	assert.Equal(t, "B", fetched.Plan.Top3[0].Text)
}

func TestDailyNoteRepo_NilPlan(t *testing.T) {
	repo := NewSQLiteDailyNoteRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	day := testutil.Date(2025, time.March, 4)

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestDailyNote(day, nil)))

	fetched, err := repo.Get(ctx, testutil.TestUserID, day)
	require.NoError(t, err)
	assert.Nil(t, fetched.Plan)
}

func TestDailyNoteRepo_Get_NotFound(t *testing.T) {
	repo := NewSQLiteDailyNoteRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), testutil.TestUserID, testutil.Date(2025, time.March, 4))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDailyNoteRepo_ListRecent(t *testing.T) {
	repo := NewSQLiteDailyNoteRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for d := 1; d <= 3; d++ {
		require.NoError(t, repo.Upsert(ctx, testutil.NewTestDailyNote(testutil.Date(2025, time.March, d), nil)))
	}

	notes, err := repo.ListRecent(ctx, testutil.TestUserID, 2)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, 3, notes[0].Date.Day())
	assert.Equal(t, 2, notes[1].Date.Day())
}
