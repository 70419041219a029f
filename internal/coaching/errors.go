package coaching

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/dayframe/internal/domain"
)

var (
	// ErrInvalidTransition indicates a state change outside the session table.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrTurnLimitExceeded indicates the flow's turn budget is spent and the
	// plan must be confirmed or the session abandoned.
	ErrTurnLimitExceeded = errors.New("session turn limit reached")

	// ErrTurnInFlight indicates a turn was submitted while the previous
	// reply was still streaming.
	ErrTurnInFlight = errors.New("a reply is still streaming for this session")

	// ErrSessionNotFound indicates the engine has no record of the session.
	ErrSessionNotFound = errors.New("coaching session not found")
)

// StateError describes a rejected transition. Callers must not send the
// turn when Validate returns one.
type StateError struct {
	From      domain.SessionState
	To        domain.SessionState
	Flow      domain.Flow
	TurnCount int
	Limit     int
	Err       error
}

func (e *StateError) Error() string {
	if errors.Is(e.Err, ErrTurnLimitExceeded) {
		return fmt.Sprintf("%v: %s session used %d of %d turns", e.Err, e.Flow, e.TurnCount, e.Limit)
	}
	return fmt.Sprintf("%v: %s -> %s", e.Err, e.From, e.To)
}

func (e *StateError) Unwrap() error { return e.Err }

// FallbackError pairs the static reply shown to the user with the model
// failure that caused it, so both can be logged.
type FallbackError struct {
	Fallback string
	Flow     domain.Flow
	Phase    domain.Phase
	Cause    error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("model reply unavailable for %s/%s, used fallback: %v", e.Flow, e.Phase, e.Cause)
}

func (e *FallbackError) Unwrap() error { return e.Cause }
