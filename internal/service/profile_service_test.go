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

func setupProfiles(t *testing.T) ProfileService {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewProfileService(
		repository.NewSQLiteUserProfileRepo(database),
		repository.NewSQLiteValuesRepo(database),
		repository.NewSQLiteStreakRepo(database),
	)
}

func TestProfile_SaveNormalizes(t *testing.T) {
	svc := setupProfiles(t)
	ctx := context.Background()

	none, err := svc.Profile(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Nil(t, none)

	require.NoError(t, svc.SaveProfile(ctx, &domain.UserProfile{
		UserID:         testutil.TestUserID,
		Name:           " Ada ",
		ActiveProjects: []string{"thesis", " ", "Thesis", "garden"},
	}))

	p, err := svc.Profile(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, []string{"thesis", "garden"}, p.ActiveProjects)
	assert.False(t, p.UpdatedAt.IsZero())
}

func TestProfile_Values(t *testing.T) {
	svc := setupProfiles(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveValues(ctx, testutil.TestUserID, &domain.ValuesData{
		CoreValues: []string{"craft", "", "family"},
		Vision:     "  calm work  ",
	}))

	v, err := svc.Values(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Equal(t, []string{"craft", "family"}, v.CoreValues)
	assert.Equal(t, "calm work", v.Vision)
}

func TestProfile_Streaks(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := NewStore(database, testutil.NewTestUoW(database), testCatalog(t))
	svc := NewProfileService(
		repository.NewSQLiteUserProfileRepo(database),
		repository.NewSQLiteValuesRepo(database),
		repository.NewSQLiteStreakRepo(database),
	)
	ctx := context.Background()

	require.NoError(t, store.RecordStreak(ctx, testutil.TestUserID, domain.FlowEvening, testutil.Date(2025, time.March, 1)))

	streaks, err := svc.Streaks(ctx, testutil.TestUserID)
	require.NoError(t, err)
	require.Len(t, streaks, 1)
	assert.Equal(t, domain.FlowEvening, streaks[0].Flow)
	assert.Equal(t, 1, streaks[0].Current)
}
