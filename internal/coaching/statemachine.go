package coaching

import (
	"time"

	"github.com/alexanderramin/dayframe/internal/domain"
)

// SessionTransitions is the session lifecycle. Completed and abandoned are
// terminal.
var SessionTransitions = domain.NewTransitionTable(map[domain.SessionState][]domain.SessionState{
	domain.SessionCreated:       {domain.SessionInProgress},
	domain.SessionInProgress:    {domain.SessionInProgress, domain.SessionPlanConfirmed, domain.SessionAbandoned},
	domain.SessionPlanConfirmed: {domain.SessionCompleted},
})

// TurnLimits caps the in_progress self-loop per flow.
var TurnLimits = map[domain.Flow]int{
	domain.FlowMorning:        15,
	domain.FlowEvening:        10,
	domain.FlowAdhoc:          10,
	domain.FlowChallengeIntro: 15,
}

const defaultTurnLimit = 10

// IdleTimeout is how long an in-progress session may sit without a turn
// before the sweeper requests abandonment.
const IdleTimeout = 30 * time.Minute

// TurnLimit returns the turn budget for flow.
func TurnLimit(flow domain.Flow) int {
	if n, ok := TurnLimits[flow]; ok {
		return n
	}
	return defaultTurnLimit
}

// CanTransition reports whether from -> to appears in the session table.
func CanTransition(from, to domain.SessionState) bool {
	return SessionTransitions.Allows(from, to)
}

// Validate checks that session may move to the requested state. Only the
// in_progress self-loop is turn limited, so a plan can still be confirmed
// or the session abandoned once the budget is spent. The machine is purely
// reactive; timeouts arrive as ordinary abandon requests.
func Validate(s *domain.CoachingSession, to domain.SessionState) error {
	if !CanTransition(s.State, to) {
		return &StateError{From: s.State, To: to, Flow: s.Flow, TurnCount: s.TurnCount, Err: ErrInvalidTransition}
	}
	if s.State == domain.SessionInProgress && to == domain.SessionInProgress {
		limit := TurnLimit(s.Flow)
		if s.TurnCount >= limit {
			return &StateError{
				From: s.State, To: to, Flow: s.Flow,
				TurnCount: s.TurnCount, Limit: limit,
				Err: ErrTurnLimitExceeded,
			}
		}
	}
	return nil
}

// Transition validates and applies a state change.
func Transition(s *domain.CoachingSession, to domain.SessionState) error {
	if err := Validate(s, to); err != nil {
		return err
	}
	s.State = to
	return nil
}
