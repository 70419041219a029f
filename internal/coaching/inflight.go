package coaching

import (
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/dayframe/internal/domain"
)

// InFlightReply is the assistant message being streamed for the current
// turn. A session holds at most one; it is replaced by the finalized
// Message when the stream ends.
type InFlightReply struct {
	mu        sync.Mutex
	sessionID string
	userID    string
	startedAt time.Time
	text      strings.Builder
	chunks    int
}

func newInFlightReply(s domain.CoachingSession, now time.Time) *InFlightReply {
	return &InFlightReply{sessionID: s.ID, userID: s.UserID, startedAt: now}
}

// Append adds a streamed fragment.
func (r *InFlightReply) Append(chunk string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text.WriteString(chunk)
	r.chunks++
}

// Text returns the reply received so far.
func (r *InFlightReply) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text.String()
}

// Replace discards anything streamed and sets the full reply text.
func (r *InFlightReply) Replace(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text.Reset()
	r.text.WriteString(text)
}

// Finalize freezes the reply into an immutable Message.
func (r *InFlightReply) Finalize(id string, metadata map[string]string, now time.Time) domain.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.Message{
		ID:        id,
		SessionID: r.sessionID,
		UserID:    r.userID,
		Role:      domain.RoleAssistant,
		Content:   r.text.String(),
		Metadata:  metadata,
		CreatedAt: now,
	}
}
