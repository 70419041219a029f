package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/dayframe/internal/challenge"
	"github.com/alexanderramin/dayframe/internal/testutil"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewStore(database, testutil.NewTestUoW(database), testCatalog(t)), database
}

func testCatalog(t *testing.T) *challenge.Catalog {
	t.Helper()
	c, err := challenge.Parse([]byte(`
- number: 1
  title: The Daily Brain Dump
  morning_nudge: dump it all
  evening_nudge: anything stuck?
- number: 2
  title: Only Three That Matter
- number: 3
  title: One Protected Focus Block
`))
	require.NoError(t, err)
	return c
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
