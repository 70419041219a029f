package planparse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestLex_TagsLines(t *testing.T) {
	text := "**Top 3:**\n1. Write spec\n2) Call Sam\n\n- reply to Ana\nsome prose"
	got := Lex(text)

	kinds := make([]LineKind, len(got))
	for i, l := range got {
		kinds[i] = l.Kind
	}
	want := []LineKind{LineHeader, LineNumbered, LineNumbered, LineBlank, LineBullet, LineText}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("line kinds mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, HeaderTop3, got[0].Header)
	assert.Equal(t, "Write spec", got[1].Text)
	assert.Equal(t, "Call Sam", got[2].Text)
	assert.Equal(t, "reply to Ana", got[4].Text)
}

func TestHeaderKind_AcceptedSpellings(t *testing.T) {
	cases := map[string]HeaderKind{
		"**Top 3:**":                   HeaderTop3,
		"Top 3":                        HeaderTop3,
		"## Your Top Three":            HeaderTop3,
		"TODAY'S TOP 3:":               HeaderTop3,
		"Today’s Top 3:":               HeaderTop3,
		"Here's your Top 3 for today:": HeaderTop3,
		"**Admin Batch:**":             HeaderAdmin,
		"### Admin tasks":              HeaderAdmin,
		"**Schedule:**":                HeaderOther,
		"# Notes":                      HeaderOther,
		"Your top 3 look solid today.": HeaderNone,
		"1. Top 3 review":              HeaderNone,
		"- admin batch stuff":          HeaderNone,
	}
	for line, want := range cases {
		assert.Equal(t, want, headerKind(line), "line %q", line)
	}
}

func TestParse_SectionsEndAtProseOrNextHeader(t *testing.T) {
	text := `Great, here's the plan.

**Top 3:**

1. Deck
2. Review PR
Nice mix today.
3. Not part of the list

**Admin Batch:**
- Expenses
- Reply to Ana
**Schedule:**
- 9am standup`

	doc := Parse(text)

	top, ok := doc.First(HeaderTop3)
	assert.True(t, ok)
	assert.Equal(t, []string{"Deck", "Review PR"}, top.ItemsOf(LineNumbered))

	admin, ok := doc.First(HeaderAdmin)
	assert.True(t, ok)
	assert.Equal(t, []string{"Expenses", "Reply to Ana"}, admin.ItemsOf(LineBullet))

	assert.Len(t, doc.Sections, 3)
	assert.Equal(t, HeaderOther, doc.Sections[2].Header)
}

func TestParse_NoHeaders(t *testing.T) {
	doc := Parse("1. one\n2. two")
	assert.Empty(t, doc.Sections)
	_, ok := doc.First(HeaderTop3)
	assert.False(t, ok)
}
