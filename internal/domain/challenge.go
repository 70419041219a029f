package domain

import "time"

// Challenge is one of the numbered foundation exercises.
type Challenge struct {
	Number       int    `yaml:"number"`
	Slug         string `yaml:"slug"`
	Title        string `yaml:"title"`
	Summary      string `yaml:"summary"`
	MorningNudge string `yaml:"morning_nudge"`
	EveningNudge string `yaml:"evening_nudge"`
}

type ActiveChallenge struct {
	Challenge        Challenge
	StartedAt        time.Time
	DaysSinceStarted int
}

// ChallengeProgress is the stored record of a user working a challenge.
type ChallengeProgress struct {
	UserID          string
	ChallengeNumber int
	StartedAt       time.Time
	CompletedAt     *time.Time
}

// ValuesData is the result of the core values exercise.
type ValuesData struct {
	CoreValues []string
	Vision     string
	UpdatedAt  time.Time
}

// Streak counts consecutive days with a completed session of one flow.
type Streak struct {
	UserID   string
	Flow     Flow
	Current  int
	Longest  int
	LastDate time.Time
}

// Extend records a completion on day. Same-day completions are ignored, the
// next calendar day extends the streak and any gap restarts it.
func (s *Streak) Extend(day time.Time) {
	day = TruncateDate(day)
	if !s.LastDate.IsZero() {
		gap := DaysBetween(s.LastDate, day)
		switch {
		case gap == 0:
			return
		case gap == 1:
			s.Current++
		default:
			s.Current = 1
		}
	} else {
		s.Current = 1
	}
	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	s.LastDate = day
}
