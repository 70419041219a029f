package coaching

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsConfirmation(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"yes", true},
		{"Yes!", true},
		{"  ok.  ", true},
		{"sounds good", true},
		{"That’s perfect", true},
		{"let's do it", true},
		{"Lock it in", true},
		{"yes, that looks great", true},
		{"yeah, that order is right", true},
		{"yes but swap 2 and 3", false},
		{"Actually, change #2", false},
		{"no", false},
		{"maybe", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConfirmation(tt.in))
		})
	}
}

func TestIsConfirmation_LongRepliesNeverConfirm(t *testing.T) {
	long := "yes, " + strings.Repeat("that is great ", 6)
	assert.GreaterOrEqual(t, len([]rune(long)), 80)
	assert.False(t, IsConfirmation(long))

	assert.False(t, IsConfirmation(strings.Repeat("y", 80)))
	assert.False(t, IsConfirmation("yes"+strings.Repeat(" ", 80)))
}

func TestIsAskingForConfirmation(t *testing.T) {
	assert.True(t, IsAskingForConfirmation("Does this priority order feel right?"))
	assert.True(t, IsAskingForConfirmation("Here’s what I’d suggest for today."))
	assert.True(t, IsAskingForConfirmation("SOUND GOOD?"))
	assert.False(t, IsAskingForConfirmation("What else is on your mind?"))
}

func TestShouldSavePlan(t *testing.T) {
	assert.True(t, ShouldSavePlan("yes",
		"So your Top 3 are: 1. Deck 2. Meeting 3. Review. Sound right?"))
	assert.False(t, ShouldSavePlan("Actually, change #2",
		"Does this priority order feel right?"))
	assert.False(t, ShouldSavePlan("yes", "What did you get done today?"))
	assert.False(t, ShouldSavePlan("yes", ""))
}
