package domain

import "time"

// CoachingSession is one conversation between a user and the coach.
type CoachingSession struct {
	ID             string
	UserID         string
	Flow           Flow
	State          SessionState
	TurnCount      int
	StartedAt      time.Time
	LastActivityAt time.Time
	CompletedAt    *time.Time
}

// IsOpen reports whether the session can still accept transitions.
func (s *CoachingSession) IsOpen() bool {
	return s.State != SessionCompleted && s.State != SessionAbandoned
}

// Message is a single transcript entry. Metadata is free-form and only
// stored, never interpreted.
type Message struct {
	ID        string
	SessionID string
	UserID    string
	Role      Role
	Content   string
	Metadata  map[string]string
	CreatedAt time.Time
}
