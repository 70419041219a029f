package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/alexanderramin/dayframe/internal/service"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"future", now.Add(48 * time.Hour), "Today"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestHumanDate(t *testing.T) {
	today := time.Date(2026, 2, 7, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", HumanDate(today, today))
	assert.Equal(t, "Yesterday", HumanDate(today.AddDate(0, 0, -1), today))
	assert.Equal(t, "Mon Feb 2", HumanDate(time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), today))
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{
		{StyleGreen.Render("x"), "1"},
		{"longer", "2"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, lipgloss.Width(lines[2]), lipgloss.Width(lines[3]))
	assert.Empty(t, RenderTable(nil, nil))
}

func TestFormatPlan(t *testing.T) {
	today := time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)
	note := &domain.DailyNote{
		Date: today,
		Plan: &domain.DailyNotePlan{
			Top3: []domain.Top3Item{
				{Text: "Write proposal", WorkType: domain.WorkDeepFocus, Completed: true},
				{Text: "Email Sam", WorkType: domain.WorkAdmin},
			},
			AdminBatch: []string{"expenses"},
			FocusBlock: &domain.FocusBlock{Start: "09:00", End: "11:00"},
		},
	}

	out := FormatPlan(note, today)
	assert.Contains(t, out, "Write proposal")
	assert.Contains(t, out, "1 of 2 done")
	assert.Contains(t, out, "09:00–11:00")
	assert.Contains(t, out, "expenses")
}

func TestFormatPlan_Empty(t *testing.T) {
	today := time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)
	out := FormatPlan(&domain.DailyNote{Date: today}, today)
	assert.Contains(t, out, "No Top 3 yet")
}

func TestFormatCarryover(t *testing.T) {
	assert.Contains(t, FormatCarryover(nil), "Nothing carried over")

	out := FormatCarryover([]domain.CarryoverItem{{Text: "Deck", DaysSinceOriginal: 1}})
	assert.Contains(t, out, "Deck")
	assert.Contains(t, out, "1 day")
}

func TestFormatParkedList_FlagsStaleItems(t *testing.T) {
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)
	items := []*domain.ParkedItem{
		{ID: "aaaaaaaa-1", Text: "learn Rust", Status: domain.ParkedParked, ParkedAt: now.AddDate(0, 0, -10)},
		{ID: "bbbbbbbb-2", Text: "blog", Reason: "later", Status: domain.ParkedParked, ParkedAt: now.AddDate(0, 0, -2)},
	}

	out := FormatParkedList(items, now)
	assert.Contains(t, out, "learn Rust")
	assert.Contains(t, out, "later")
	assert.Equal(t, 1, strings.Count(out, "⚑"))
	assert.Contains(t, FormatParkedList(nil, now), "empty")
}

func TestFormatChallengeList(t *testing.T) {
	started := time.Now()
	out := FormatChallengeList([]service.ChallengeStatus{
		{Challenge: domain.Challenge{Number: 1, Title: "Brain Dump"}, StartedAt: &started, CompletedAt: &started},
		{Challenge: domain.Challenge{Number: 2, Title: "Top Three"}, StartedAt: &started, Active: true},
		{Challenge: domain.Challenge{Number: 3, Title: "Focus Block"}},
	})
	assert.Contains(t, out, "Brain Dump")
	assert.Contains(t, out, "Active")
	assert.Contains(t, out, "Done")
}

func TestChatLines(t *testing.T) {
	assert.Contains(t, CoachLine("hello", true), "(offline)")
	assert.NotContains(t, CoachLine("hello", false), "(offline)")
	assert.Contains(t, ChatWelcome(domain.FlowMorning, "Ada"), "Morning check-in with Ada")
	assert.Contains(t, FormatStreaks([]*domain.Streak{{Flow: domain.FlowMorning, Current: 3, Longest: 5}}), "3 days")
}
