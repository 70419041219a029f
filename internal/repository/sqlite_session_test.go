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

func TestCoachingSessionRepo_UpsertAndGetByID(t *testing.T) {
	repo := NewSQLiteCoachingSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	s := testutil.NewTestCoachingSession(domain.FlowMorning)
	require.NoError(t, repo.Upsert(ctx, s))

	fetched, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FlowMorning, fetched.Flow)
	assert.Equal(t, domain.SessionCreated, fetched.State)
	assert.True(t, s.StartedAt.Equal(fetched.StartedAt))
	assert.Nil(t, fetched.CompletedAt)
}

func TestCoachingSessionRepo_UpsertUpdatesState(t *testing.T) {
	repo := NewSQLiteCoachingSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	s := testutil.NewTestCoachingSession(domain.FlowEvening)
	require.NoError(t, repo.Upsert(ctx, s))

	done := s.StartedAt.Add(10 * time.Minute)
	s.State = domain.SessionCompleted
	s.TurnCount = 4
	s.LastActivityAt = done
	s.CompletedAt = &done
	require.NoError(t, repo.Upsert(ctx, s))

	fetched, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, fetched.State)
	assert.Equal(t, 4, fetched.TurnCount)
	require.NotNil(t, fetched.CompletedAt)
	assert.True(t, done.Equal(*fetched.CompletedAt))
}

func TestCoachingSessionRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteCoachingSessionRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCoachingSessionRepo_ListByUser_NewestFirst(t *testing.T) {
	repo := NewSQLiteCoachingSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	base := testutil.Date(2025, time.March, 3).Add(8 * time.Hour)
	for i := 0; i < 3; i++ {
		s := testutil.NewTestCoachingSession(domain.FlowMorning, testutil.WithStartedAt(base.AddDate(0, 0, i)))
		require.NoError(t, repo.Upsert(ctx, s))
	}
	other := testutil.NewTestCoachingSession(domain.FlowAdhoc, testutil.WithSessionUser("someone-else"))
	require.NoError(t, repo.Upsert(ctx, other))

	all, err := repo.ListByUser(ctx, testutil.TestUserID, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].StartedAt.After(all[1].StartedAt))

	limited, err := repo.ListByUser(ctx, testutil.TestUserID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestMessageRepo_AppendKeepsOrder(t *testing.T) {
	conn := testutil.NewTestDB(t)
	ctx := context.Background()
	sessions := NewSQLiteCoachingSessionRepo(conn)
	repo := NewSQLiteMessageRepo(conn)

	s := testutil.NewTestCoachingSession(domain.FlowMorning)
	require.NoError(t, sessions.Upsert(ctx, s))

	first := testutil.NewTestMessage(s.ID, domain.RoleUser, "morning")
	second := testutil.NewTestMessage(s.ID, domain.RoleAssistant, "what's on your mind?")
	second.Metadata["fallback"] = "greeting"
	// Same timestamp on both: ordering must come from insertion, not the clock.
	second.CreatedAt = first.CreatedAt
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	msgs, err := repo.ListBySession(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "morning", msgs[0].Content)
	assert.Equal(t, domain.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "greeting", msgs[1].Metadata["fallback"])
}

func TestMessageRepo_RequiresSession(t *testing.T) {
	repo := NewSQLiteMessageRepo(testutil.NewTestDB(t))

	m := testutil.NewTestMessage("missing-session", domain.RoleUser, "hi")
	assert.Error(t, repo.Append(context.Background(), m))
}

func TestMessageRepo_CascadeOnSessionDelete(t *testing.T) {
	conn := testutil.NewTestDB(t)
	ctx := context.Background()
	sessions := NewSQLiteCoachingSessionRepo(conn)
	repo := NewSQLiteMessageRepo(conn)

	s := testutil.NewTestCoachingSession(domain.FlowAdhoc)
	require.NoError(t, sessions.Upsert(ctx, s))
	require.NoError(t, repo.Append(ctx, testutil.NewTestMessage(s.ID, domain.RoleUser, "hi")))

	_, err := conn.ExecContext(ctx, `DELETE FROM coaching_sessions WHERE id = ?`, s.ID)
	require.NoError(t, err)

	msgs, err := repo.ListBySession(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
