package coaching

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"

	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/alexanderramin/dayframe/internal/llm"
)

// messageOverhead approximates the per-message framing tokens.
const messageOverhead = 4

// TranscriptWindow trims a transcript to the model's context budget,
// dropping the oldest messages first.
type TranscriptWindow struct {
	budget int
	count  func(string) int
}

// NewTranscriptWindow returns a window that keeps system prompt plus
// history under budget tokens, counted with the GPT-4 encoding.
func NewTranscriptWindow(budget int) (*TranscriptWindow, error) {
	codec, err := tokenizer.ForModel(tokenizer.GPT4)
	if err != nil {
		return nil, fmt.Errorf("creating tokenizer codec: %w", err)
	}
	return &TranscriptWindow{
		budget: budget,
		count: func(s string) int {
			n, err := codec.Count(s)
			if err != nil {
				return len(s) / 4
			}
			return n
		},
	}, nil
}

// Fit converts the newest messages that fit into chat messages. The most
// recent message is always kept, and the window never opens on an
// assistant reply. System-role messages are not sent.
func (w *TranscriptWindow) Fit(systemPrompt string, msgs []domain.Message) []llm.ChatMessage {
	remaining := w.budget - w.count(systemPrompt)

	start := len(msgs)
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == domain.RoleSystem {
			continue
		}
		cost := w.count(msgs[i].Content) + messageOverhead
		if cost > remaining && start < len(msgs) {
			break
		}
		remaining -= cost
		start = i
	}
	for start < len(msgs) && msgs[start].Role != domain.RoleUser && start < len(msgs)-1 {
		start++
	}

	out := make([]llm.ChatMessage, 0, len(msgs)-start)
	for _, m := range msgs[start:] {
		switch m.Role {
		case domain.RoleUser:
			out = append(out, llm.ChatMessage{Role: llm.RoleUser, Content: m.Content})
		case domain.RoleAssistant:
			out = append(out, llm.ChatMessage{Role: llm.RoleAssistant, Content: m.Content})
		}
	}
	return out
}
