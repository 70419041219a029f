package testutil

import (
	"time"

	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/google/uuid"
)

// TestUserID is the user every fixture belongs to unless overridden.
const TestUserID = "user-1"

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Session options
type SessionOption func(*domain.CoachingSession)

func WithSessionState(s domain.SessionState) SessionOption {
	return func(cs *domain.CoachingSession) {
		cs.State = s
	}
}

func WithSessionUser(userID string) SessionOption {
	return func(cs *domain.CoachingSession) {
		cs.UserID = userID
	}
}

func WithStartedAt(t time.Time) SessionOption {
	return func(cs *domain.CoachingSession) {
		cs.StartedAt = t
		cs.LastActivityAt = t
	}
}

func NewTestCoachingSession(flow domain.Flow, opts ...SessionOption) *domain.CoachingSession {
	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.CoachingSession{
		ID:             uuid.New().String(),
		UserID:         TestUserID,
		Flow:           flow,
		State:          domain.SessionCreated,
		StartedAt:      now,
		LastActivityAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewTestMessage(sessionID string, role domain.Role, content string) *domain.Message {
	return &domain.Message{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		UserID:    TestUserID,
		Role:      role,
		Content:   content,
		Metadata:  map[string]string{},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// Plan options
type PlanOption func(*domain.DailyNotePlan)

// WithCompleted marks the Top 3 items at the given indexes done.
func WithCompleted(idx ...int) PlanOption {
	return func(p *domain.DailyNotePlan) {
		for _, i := range idx {
			if i < len(p.Top3) {
				p.Top3[i].Completed = true
			}
		}
	}
}

func WithAdminBatch(items ...string) PlanOption {
	return func(p *domain.DailyNotePlan) {
		p.AdminBatch = items
	}
}

func WithFocusBlock(start, end string) PlanOption {
	return func(p *domain.DailyNotePlan) {
		p.FocusBlock = &domain.FocusBlock{Start: start, End: end}
	}
}

// NewTestPlan builds a plan whose Top 3 items are all deep focus work.
func NewTestPlan(top3 []string, opts ...PlanOption) *domain.DailyNotePlan {
	p := &domain.DailyNotePlan{AdminBatch: []string{}}
	for _, text := range top3 {
		p.Top3 = append(p.Top3, domain.Top3Item{Text: text, WorkType: domain.WorkDeepFocus})
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestDailyNote(date time.Time, plan *domain.DailyNotePlan) *domain.DailyNote {
	return &domain.DailyNote{
		UserID:    TestUserID,
		Date:      date,
		Plan:      plan,
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// ParkedItem options
type ParkedOption func(*domain.ParkedItem)

func WithParkedStatus(s domain.ParkedStatus) ParkedOption {
	return func(p *domain.ParkedItem) {
		p.Status = s
	}
}

func WithParkedAt(t time.Time) ParkedOption {
	return func(p *domain.ParkedItem) {
		p.ParkedAt = t
	}
}

func WithReason(reason string) ParkedOption {
	return func(p *domain.ParkedItem) {
		p.Reason = reason
	}
}

func NewTestParkedItem(text string, opts ...ParkedOption) *domain.ParkedItem {
	p := &domain.ParkedItem{
		ID:       uuid.New().String(),
		UserID:   TestUserID,
		Text:     text,
		Status:   domain.ParkedParked,
		ParkedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
