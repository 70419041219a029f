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

func TestUserProfileRepo_UpsertAndGet(t *testing.T) {
	repo := NewSQLiteUserProfileRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := &domain.UserProfile{
		UserID:         testutil.TestUserID,
		Name:           "Ada",
		ActiveProjects: []string{"thesis", "garden"},
		Timezone:       "Europe/Lisbon",
		UpdatedAt:      time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, repo.Upsert(ctx, p))

	fetched, err := repo.Get(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", fetched.Name)
	assert.Equal(t, []string{"thesis", "garden"}, fetched.ActiveProjects)
	assert.Equal(t, "Europe/Lisbon", fetched.Timezone)
}

func TestUserProfileRepo_NilProjectsStoredEmpty(t *testing.T) {
	repo := NewSQLiteUserProfileRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.UserProfile{UserID: testutil.TestUserID, UpdatedAt: time.Now()}))

	fetched, err := repo.Get(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.NotNil(t, fetched.ActiveProjects)
	assert.Empty(t, fetched.ActiveProjects)
}

func TestUserProfileRepo_Get_NotFound(t *testing.T) {
	repo := NewSQLiteUserProfileRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValuesRepo_UpsertAndGet(t *testing.T) {
	repo := NewSQLiteValuesRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	v := &domain.ValuesData{
		CoreValues: []string{"craft", "family", "health"},
		Vision:     "calm, deliberate work",
		UpdatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, repo.Upsert(ctx, testutil.TestUserID, v))

	fetched, err := repo.Get(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Equal(t, v.CoreValues, fetched.CoreValues)
	assert.Equal(t, v.Vision, fetched.Vision)
}

func TestValuesRepo_Get_NotFound(t *testing.T) {
	repo := NewSQLiteValuesRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), testutil.TestUserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStreakRepo_UpsertGetList(t *testing.T) {
	repo := NewSQLiteStreakRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	s := &domain.Streak{UserID: testutil.TestUserID, Flow: domain.FlowMorning}
	s.Extend(testutil.Date(2025, time.March, 1))
	s.Extend(testutil.Date(2025, time.March, 2))
	require.NoError(t, repo.Upsert(ctx, s))
	require.NoError(t, repo.Upsert(ctx, &domain.Streak{UserID: testutil.TestUserID, Flow: domain.FlowEvening}))

	fetched, err := repo.Get(ctx, testutil.TestUserID, domain.FlowMorning)
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.Current)
	assert.Equal(t, 2, fetched.Longest)
	assert.True(t, testutil.Date(2025, time.March, 2).Equal(fetched.LastDate))

	all, err := repo.ListByUser(ctx, testutil.TestUserID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, domain.FlowEvening, all[0].Flow)
	assert.True(t, all[0].LastDate.IsZero())
}

func TestStreakRepo_Get_NotFound(t *testing.T) {
	repo := NewSQLiteStreakRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), testutil.TestUserID, domain.FlowEvening)
	assert.ErrorIs(t, err, ErrNotFound)
}
