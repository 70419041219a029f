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

func TestParkedItemRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteParkedItemRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := testutil.NewTestParkedItem("learn Rust", testutil.WithReason("not this quarter"))
	require.NoError(t, repo.Create(ctx, p))

	fetched, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "learn Rust", fetched.Text)
	assert.Equal(t, "not this quarter", fetched.Reason)
	assert.Equal(t, domain.ParkedParked, fetched.Status)
	assert.Nil(t, fetched.LastReviewedAt)
}

func TestParkedItemRepo_ListByStatus(t *testing.T) {
	repo := NewSQLiteParkedItemRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	base := testutil.Date(2025, time.February, 1)

	require.NoError(t, repo.Create(ctx, testutil.NewTestParkedItem("old", testutil.WithParkedAt(base))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestParkedItem("newer", testutil.WithParkedAt(base.AddDate(0, 0, 5)))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestParkedItem("reviewing",
		testutil.WithParkedStatus(domain.ParkedUnderReview))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestParkedItem("gone",
		testutil.WithParkedStatus(domain.ParkedDeleted))))

	parked, err := repo.ListByStatus(ctx, testutil.TestUserID, domain.ParkedParked)
	require.NoError(t, err)
	require.Len(t, parked, 2)
	assert.Equal(t, "old", parked[0].Text)

	open, err := repo.ListByStatus(ctx, testutil.TestUserID, domain.ParkedParked, domain.ParkedUnderReview)
	require.NoError(t, err)
	assert.Len(t, open, 3)

	all, err := repo.ListByStatus(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestParkedItemRepo_Update(t *testing.T) {
	repo := NewSQLiteParkedItemRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := testutil.NewTestParkedItem("side project", testutil.WithParkedStatus(domain.ParkedUnderReview))
	require.NoError(t, repo.Create(ctx, p))

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, p.TransitionTo(domain.ParkedReactivated, now))
	require.NoError(t, repo.Update(ctx, p))

	fetched, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ParkedReactivated, fetched.Status)
	require.NotNil(t, fetched.LastReviewedAt)
	assert.True(t, now.Equal(*fetched.LastReviewedAt))
}

func TestParkedItemRepo_Update_NotFound(t *testing.T) {
	repo := NewSQLiteParkedItemRepo(testutil.NewTestDB(t))

	err := repo.Update(context.Background(), testutil.NewTestParkedItem("ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParkedItemRepo_RejectsUnknownStatus(t *testing.T) {
	repo := NewSQLiteParkedItemRepo(testutil.NewTestDB(t))

	p := testutil.NewTestParkedItem("x", testutil.WithParkedStatus("archived"))
	assert.Error(t, repo.Create(context.Background(), p))
}
