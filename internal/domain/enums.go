package domain

// Flow identifies the kind of coaching session.
type Flow string

const (
	FlowMorning        Flow = "morning"
	FlowEvening        Flow = "evening"
	FlowAdhoc          Flow = "adhoc"
	FlowChallengeIntro Flow = "challenge_intro"
)

// ValidFlows is the canonical set of accepted flow strings.
var ValidFlows = map[Flow]bool{
	FlowMorning: true, FlowEvening: true, FlowAdhoc: true, FlowChallengeIntro: true,
}

type SessionState string

const (
	SessionCreated       SessionState = "created"
	SessionInProgress    SessionState = "in_progress"
	SessionPlanConfirmed SessionState = "plan_confirmed"
	SessionCompleted     SessionState = "completed"
	SessionAbandoned     SessionState = "abandoned"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

type WorkType string

const (
	WorkDeepFocus WorkType = "deep_focus"
	WorkAdmin     WorkType = "admin"
	WorkMeeting   WorkType = "meeting"
)

type ParkedStatus string

const (
	ParkedParked      ParkedStatus = "parked"
	ParkedUnderReview ParkedStatus = "under_review"
	ParkedReactivated ParkedStatus = "reactivated"
	ParkedDeleted     ParkedStatus = "deleted"
)

// Phase is the coarse position of a conversation, used to pick static
// replies when the model is unavailable.
type Phase string

const (
	PhaseGreeting Phase = "greeting"
	PhaseDump     Phase = "dump"
	PhasePriority Phase = "priority"
	PhaseReflect  Phase = "reflect"
	PhaseDefault  Phase = "default"
)

// ParseFlow converts s into a Flow, reporting whether it is known.
func ParseFlow(s string) (Flow, bool) {
	f := Flow(s)
	return f, ValidFlows[f]
}
