package coaching

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayframe/internal/domain"
)

// CoachingContext is the read model a prompt is assembled from. It is
// rebuilt for every turn and owned by nothing.
type CoachingContext struct {
	UserName   string
	Flow       domain.Flow
	TurnNumber int
	MaxTurns   int

	// Today is rendered into the prompt when set. Callers that want
	// identical prompts across calls must pass the same value.
	Today time.Time

	YesterdayPlanSummary   string
	Carryover              []domain.CarryoverItem
	ParkedSummary          string
	ActiveProjects         []string
	ActiveChallenge        *domain.ActiveChallenge
	CompletedValuesSummary string
}

// BuildPrompt assembles the system instruction for the model. It performs
// no I/O and the same context always yields the same string.
func BuildPrompt(c CoachingContext) string {
	var b strings.Builder

	b.WriteString(personaSection)
	b.WriteString("\n\n")
	b.WriteString(responseStyleSection)
	b.WriteString("\n\n")

	writeCurrentContext(&b, c)

	writeSection(&b, "YESTERDAY'S PLAN", orNone(c.YesterdayPlanSummary))
	writeSection(&b, "CARRYOVER ITEMS", FormatCarryoverForPrompt(c.Carryover))
	writeSection(&b, "PARKING LOT", orNone(c.ParkedSummary))
	writeSection(&b, "ACTIVE PROJECTS", formatProjects(c.ActiveProjects))

	if c.CompletedValuesSummary != "" {
		writeSection(&b, "USER'S CORE VALUES", c.CompletedValuesSummary+"\n"+valuesGuidance)
	}
	if c.ActiveChallenge != nil {
		writeSection(&b, "ACTIVE FOUNDATION", challengeSection(c.Flow, *c.ActiveChallenge))
	}

	writeSection(&b, "GUARDRAILS", guardrailSection)
	writeSection(&b, flowTitle(c.Flow), flowInstructions(c.Flow))
	b.WriteString("## CALIBRATION EXAMPLES\n")
	b.WriteString(calibrationExamples)
	b.WriteString("\n")

	return b.String()
}

func writeCurrentContext(b *strings.Builder, c CoachingContext) {
	b.WriteString("## CURRENT CONTEXT\n")
	fmt.Fprintf(b, "User: %s\n", orDefault(c.UserName, "there"))
	fmt.Fprintf(b, "Flow: %s\n", c.Flow)
	fmt.Fprintf(b, "Turn: %d/%d\n", c.TurnNumber, c.MaxTurns)
	if !c.Today.IsZero() {
		fmt.Fprintf(b, "Today: %s\n", c.Today.Format("Monday, January 2, 2006"))
	}
	if c.MaxTurns > 0 && c.TurnNumber >= c.MaxTurns-2 {
		b.WriteString("You are close to the turn limit. Move toward a confirmed plan and a clean close.\n")
	}
	b.WriteString("\n")
}

func writeSection(b *strings.Builder, title, body string) {
	b.WriteString("## ")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n\n")
}

func challengeSection(flow domain.Flow, ac domain.ActiveChallenge) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Foundation #%d: %s (day %d)\n", ac.Challenge.Number, ac.Challenge.Title, ac.DaysSinceStarted+1)
	if ac.Challenge.Summary != "" {
		b.WriteString(ac.Challenge.Summary)
		b.WriteString("\n")
	}
	switch flow {
	case domain.FlowMorning:
		b.WriteString("Morning guidance: when the plan takes shape, connect one Top 3 item to this foundation ")
		b.WriteString("and suggest one small way to practice it today.")
		if ac.Challenge.MorningNudge != "" {
			b.WriteString(" Suggested nudge: ")
			b.WriteString(ac.Challenge.MorningNudge)
		}
	case domain.FlowEvening:
		b.WriteString("Evening guidance: ask once whether they practiced this foundation today and what they noticed. ")
		b.WriteString("Treat a miss as information, not failure.")
		if ac.Challenge.EveningNudge != "" {
			b.WriteString(" Suggested question: ")
			b.WriteString(ac.Challenge.EveningNudge)
		}
	default:
		b.WriteString("Guidance: reference this foundation only when it is directly relevant to what the user raises.")
	}
	b.WriteString("\nDo not force it: mention the foundation at most 1-2 times per session.")
	return b.String()
}

func flowTitle(flow domain.Flow) string {
	switch flow {
	case domain.FlowMorning:
		return "MORNING CHECK-IN FLOW"
	case domain.FlowEvening:
		return "EVENING REFLECTION FLOW"
	case domain.FlowChallengeIntro:
		return "FOUNDATION INTRODUCTION FLOW"
	default:
		return "AD-HOC CHAT FLOW"
	}
}

func flowInstructions(flow domain.Flow) string {
	switch flow {
	case domain.FlowMorning:
		return morningFlow
	case domain.FlowEvening:
		return eveningFlow
	case domain.FlowChallengeIntro:
		return challengeIntroFlow
	default:
		return adhocFlow
	}
}

func formatProjects(projects []string) string {
	if len(projects) == 0 {
		return "None"
	}
	lines := make([]string, len(projects))
	for i, p := range projects {
		lines[i] = "- " + p
	}
	return strings.Join(lines, "\n")
}

func orNone(s string) string {
	return orDefault(s, "None")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
