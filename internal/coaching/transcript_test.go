package coaching

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/alexanderramin/dayframe/internal/llm"
)

// wordWindow counts one token per whitespace-separated word.
func wordWindow(budget int) *TranscriptWindow {
	return &TranscriptWindow{budget: budget, count: func(s string) int { return len(strings.Fields(s)) }}
}

func msg(role domain.Role, content string) domain.Message {
	return domain.Message{Role: role, Content: content}
}

func TestTranscriptWindow_KeepsEverythingWithinBudget(t *testing.T) {
	w := wordWindow(1000)
	got := w.Fit("system", []domain.Message{
		msg(domain.RoleUser, "a"),
		msg(domain.RoleAssistant, "b"),
		msg(domain.RoleSystem, "ignored"),
		msg(domain.RoleUser, "c"),
	})
	assert.Equal(t, []llm.ChatMessage{
		{Role: llm.RoleUser, Content: "a"},
		{Role: llm.RoleAssistant, Content: "b"},
		{Role: llm.RoleUser, Content: "c"},
	}, got)
}

func TestTranscriptWindow_DropsOldestAndStartsOnUser(t *testing.T) {
	// Each message costs 1 word + 4 overhead = 5; system prompt costs 2.
	w := wordWindow(2 + 5*2)
	got := w.Fit("two words", []domain.Message{
		msg(domain.RoleUser, "u1"),
		msg(domain.RoleAssistant, "a1"),
		msg(domain.RoleUser, "u2"),
		msg(domain.RoleAssistant, "a2"),
		msg(domain.RoleUser, "u3"),
	})
	// a2 and u3 fit, but a window may not open on an assistant reply.
	assert.Equal(t, []llm.ChatMessage{{Role: llm.RoleUser, Content: "u3"}}, got)
}

func TestTranscriptWindow_AlwaysKeepsNewest(t *testing.T) {
	w := wordWindow(3)
	got := w.Fit("a long system prompt", []domain.Message{
		msg(domain.RoleUser, "old"),
		msg(domain.RoleUser, "this one is far over the budget"),
	})
	require.Len(t, got, 1)
	assert.Equal(t, "this one is far over the budget", got[0].Content)
}

func TestNewTranscriptWindow_CountsWithTokenizer(t *testing.T) {
	w, err := NewTranscriptWindow(50)
	require.NoError(t, err)

	assert.Positive(t, w.count("Good morning, what is on your mind?"))
	got := w.Fit("", []domain.Message{
		msg(domain.RoleUser, strings.Repeat("deck review ", 200)),
		msg(domain.RoleAssistant, "ok"),
		msg(domain.RoleUser, "short"),
	})
	assert.Equal(t, []llm.ChatMessage{
		{Role: llm.RoleUser, Content: "short"},
	}, got)
}
