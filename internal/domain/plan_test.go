package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyNotePlan_CompleteItem(t *testing.T) {
	plan := &DailyNotePlan{Top3: []Top3Item{{Text: "Deck"}, {Text: "Call"}}}

	require.NoError(t, plan.CompleteItem(1, testNow))
	assert.True(t, plan.Top3[1].Completed)
	require.NotNil(t, plan.Top3[1].CompletedAt)

	later := testNow.Add(time.Hour)
	require.NoError(t, plan.CompleteItem(1, later))
	assert.Equal(t, testNow, *plan.Top3[1].CompletedAt, "second completion keeps the first timestamp")

	assert.ErrorIs(t, plan.CompleteItem(2, testNow), ErrItemOutOfRange)
	assert.ErrorIs(t, plan.CompleteItem(-1, testNow), ErrItemOutOfRange)
}

func TestDailyNotePlan_CloneSharesNothing(t *testing.T) {
	at := testNow
	orig := DailyNotePlan{
		Top3:       []Top3Item{{Text: "Deck", Completed: true, CompletedAt: &at}, {Text: "Call"}},
		AdminBatch: []string{"Reply to Sam"},
		FocusBlock: &FocusBlock{Start: "09:00", End: "11:00"},
	}

	c := orig.Clone()
	assert.Equal(t, orig, c)

	c.Top3[1].Completed = true
	*c.Top3[0].CompletedAt = testNow.Add(time.Hour)
	c.AdminBatch[0] = "changed"
	c.FocusBlock.Start = "10:00"

	assert.False(t, orig.Top3[1].Completed)
	assert.Equal(t, testNow, *orig.Top3[0].CompletedAt)
	assert.Equal(t, "Reply to Sam", orig.AdminBatch[0])
	assert.Equal(t, "09:00", orig.FocusBlock.Start)
}

func TestDateIn_KeepsCalendarDate(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	got := DateIn(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), berlin)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, berlin), got)
	assert.Equal(t, 1, DaysBetween(got, time.Date(2026, 2, 1, 0, 0, 0, 0, berlin)))
}

func TestStreak_Extend(t *testing.T) {
	s := &Streak{}
	day1 := time.Date(2026, 1, 29, 8, 0, 0, 0, time.UTC)

	s.Extend(day1)
	assert.Equal(t, 1, s.Current)

	s.Extend(day1.Add(4 * time.Hour))
	assert.Equal(t, 1, s.Current, "same day is ignored")

	s.Extend(day1.AddDate(0, 0, 1))
	s.Extend(day1.AddDate(0, 0, 2))
	assert.Equal(t, 3, s.Current)
	assert.Equal(t, 3, s.Longest)

	s.Extend(day1.AddDate(0, 0, 5))
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, 3, s.Longest)
}

func TestParseFlow(t *testing.T) {
	f, ok := ParseFlow("evening")
	assert.True(t, ok)
	assert.Equal(t, FlowEvening, f)

	_, ok = ParseFlow("midnight")
	assert.False(t, ok)
}
