package domain

import (
	"fmt"
	"math"
	"time"
)

// ParkedTransitions is the lifecycle of a parked item. Reactivated and
// deleted items are terminal.
var ParkedTransitions = NewTransitionTable(map[ParkedStatus][]ParkedStatus{
	ParkedParked:      {ParkedUnderReview},
	ParkedUnderReview: {ParkedReactivated, ParkedParked, ParkedDeleted},
})

// StaleParkedDays is the age at which a parked item is flagged in prompts.
const StaleParkedDays = 7

type ParkedItem struct {
	ID             string
	UserID         string
	Text           string
	Reason         string
	Status         ParkedStatus
	ParkedAt       time.Time
	LastReviewedAt *time.Time
}

// TransitionTo moves the item to next if the lifecycle allows it.
// Entering or leaving review stamps LastReviewedAt.
func (p *ParkedItem) TransitionTo(next ParkedStatus, now time.Time) error {
	if !ParkedTransitions.Allows(p.Status, next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalParkedTransition, p.Status, next)
	}
	if p.Status == ParkedUnderReview {
		p.LastReviewedAt = &now
	}
	p.Status = next
	return nil
}

// DaysParked returns whole days elapsed since the item was parked.
func (p *ParkedItem) DaysParked(now time.Time) int {
	return DaysBetween(p.ParkedAt, now)
}

// DaysBetween counts calendar days from a to b, never negative.
func DaysBetween(a, b time.Time) int {
	a = TruncateDate(a.In(b.Location()))
	b = TruncateDate(b)
	days := int(math.Round(b.Sub(a).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
