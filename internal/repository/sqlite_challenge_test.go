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

func TestChallengeRepo_ActiveIsLatestUncompleted(t *testing.T) {
	repo := NewSQLiteChallengeRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	base := testutil.Date(2025, time.January, 10)

	require.NoError(t, repo.Start(ctx, &domain.ChallengeProgress{UserID: testutil.TestUserID, ChallengeNumber: 1, StartedAt: base}))
	require.NoError(t, repo.Start(ctx, &domain.ChallengeProgress{UserID: testutil.TestUserID, ChallengeNumber: 2, StartedAt: base.AddDate(0, 0, 3)}))

	active, err := repo.Active(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Equal(t, 2, active.ChallengeNumber)

	require.NoError(t, repo.Complete(ctx, testutil.TestUserID, 2, base.AddDate(0, 0, 5)))

	active, err = repo.Active(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Equal(t, 1, active.ChallengeNumber)
}

func TestChallengeRepo_Active_NotFound(t *testing.T) {
	repo := NewSQLiteChallengeRepo(testutil.NewTestDB(t))

	_, err := repo.Active(context.Background(), testutil.TestUserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChallengeRepo_RestartClearsCompletion(t *testing.T) {
	repo := NewSQLiteChallengeRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	base := testutil.Date(2025, time.January, 10)

	p := &domain.ChallengeProgress{UserID: testutil.TestUserID, ChallengeNumber: 3, StartedAt: base}
	require.NoError(t, repo.Start(ctx, p))
	require.NoError(t, repo.Complete(ctx, testutil.TestUserID, 3, base.AddDate(0, 0, 1)))

	p.StartedAt = base.AddDate(0, 0, 7)
	require.NoError(t, repo.Start(ctx, p))

	list, err := repo.List(ctx, testutil.TestUserID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].CompletedAt)
	assert.True(t, p.StartedAt.Equal(list[0].StartedAt))
}

func TestChallengeRepo_Complete_NotStarted(t *testing.T) {
	repo := NewSQLiteChallengeRepo(testutil.NewTestDB(t))

	err := repo.Complete(context.Background(), testutil.TestUserID, 9, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}
