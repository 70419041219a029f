package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/dayframe/internal/repository"
	"github.com/alexanderramin/dayframe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogUseCaseObserver_SuccessAndFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	database := testutil.NewTestDB(t)
	svc := NewParkingService(repository.NewSQLiteParkedItemRepo(database), testutil.NewTestUoW(database),
		NewLogUseCaseObserver(zap.New(core)))
	ctx := context.Background()

	_, err := svc.Park(ctx, testutil.TestUserID, "write a book", "")
	require.NoError(t, err)
	_, err = svc.BeginReview(ctx, "missing")
	require.Error(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "park", entries[0].ContextMap()["use_case"])
	assert.Equal(t, true, entries[0].ContextMap()["success"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "park-review", entries[1].ContextMap()["use_case"])
	assert.Equal(t, "missing", entries[1].ContextMap()["parked_item_id"])
	assert.Contains(t, entries[1].ContextMap()["error"], "not found")
}

func TestNewLogUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
