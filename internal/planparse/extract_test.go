package planparse

import (
	"testing"

	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func user(content string) domain.Message {
	return domain.Message{Role: domain.RoleUser, Content: content}
}

func assistant(content string) domain.Message {
	return domain.Message{Role: domain.RoleAssistant, Content: content}
}

func TestExtract_Empty(t *testing.T) {
	res := Extract(nil)
	assert.Equal(t, []domain.Top3Item{}, res.Top3)
	assert.Equal(t, []string{}, res.AdminBatch)
	assert.Equal(t, "", res.RawDump)
	assert.True(t, res.Empty())
}

func TestExtract_Top3WorkTypesAndCap(t *testing.T) {
	msg := "**Top 3:**\n" +
		"1. Write technical spec (deep focus - needs 2 hours)\n" +
		"2. Team standup at 10am (meeting)\n" +
		"3. Clear email inbox (admin - 15 min batch)\n" +
		"4. Plan the offsite"

	res := Extract([]domain.Message{user("lots on my plate"), assistant(msg)})

	want := []domain.Top3Item{
		{Text: "Write technical spec", WorkType: domain.WorkDeepFocus},
		{Text: "Team standup at 10am", WorkType: domain.WorkMeeting},
		{Text: "Clear email inbox", WorkType: domain.WorkAdmin},
	}
	if diff := cmp.Diff(want, res.Top3); diff != "" {
		t.Errorf("top3 mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_RawDumpKeepsUserOrder(t *testing.T) {
	res := Extract([]domain.Message{
		user("first"),
		assistant("ok"),
		{Role: domain.RoleSystem, Content: "ignored"},
		user("second"),
	})
	assert.Equal(t, "first\n\nsecond", res.RawDump)
}

func TestExtract_MostRecentSectionWins(t *testing.T) {
	res := Extract([]domain.Message{
		assistant("**Top 3:**\n1. Old deck\n2. Old call"),
		user("swap the call for the report"),
		assistant("**Top 3:**\n1. Deck\n2. Report\n\n**Admin Batch:**\n- Expenses\n- Reply to Ana (urgent)"),
	})

	require.Len(t, res.Top3, 2)
	assert.Equal(t, "Deck", res.Top3[0].Text)
	assert.Equal(t, "Report", res.Top3[1].Text)
	assert.Equal(t, []string{"Expenses", "Reply to Ana (urgent)"}, res.AdminBatch, "bullets are verbatim")
}

func TestExtract_SectionsFromDifferentMessages(t *testing.T) {
	res := Extract([]domain.Message{
		assistant("**Admin Batch:**\n- Invoices"),
		user("and the priorities?"),
		assistant("Your Top 3:\n1. Deck\n2. Hiring sync"),
	})

	require.Len(t, res.Top3, 2)
	assert.Equal(t, domain.WorkMeeting, res.Top3[1].WorkType)
	assert.Equal(t, []string{"Invoices"}, res.AdminBatch)
}

func TestExtract_HeaderWithoutItemsKeepsScanning(t *testing.T) {
	res := Extract([]domain.Message{
		assistant("**Top 3:**\n1. Deck"),
		assistant("Before we set your Top 3:\nwhat's really weighing on you?"),
	})
	require.Len(t, res.Top3, 1)
	assert.Equal(t, "Deck", res.Top3[0].Text)
}

func TestExtract_NoHeadersNeverFails(t *testing.T) {
	res := Extract([]domain.Message{
		assistant("1. numbered but no header"),
		user("yes"),
	})
	assert.Empty(t, res.Top3)
	assert.Empty(t, res.AdminBatch)
	assert.Equal(t, "yes", res.RawDump)
}

func TestExtract_FocusBlock(t *testing.T) {
	res := Extract([]domain.Message{
		assistant("**Top 3:**\n1. Deck\n\nFocus block: 9-11am for the deck."),
	})
	require.NotNil(t, res.FocusBlock)
	assert.Equal(t, domain.FocusBlock{Start: "09:00", End: "11:00"}, *res.FocusBlock)

	res = Extract([]domain.Message{assistant("Protect a focus block from 1:30 to 3pm.")})
	require.NotNil(t, res.FocusBlock)
	assert.Equal(t, domain.FocusBlock{Start: "13:30", End: "15:00"}, *res.FocusBlock)
}

func TestStripAnnotation(t *testing.T) {
	assert.Equal(t, "Write spec", StripAnnotation("Write spec (deep focus)"))
	assert.Equal(t, "Call (mom) today", StripAnnotation("Call (mom) today"))
	assert.Equal(t, "A (b)", StripAnnotation("A (b) (c)"))
	assert.Equal(t, "(only)", StripAnnotation("(only)"))
}
