package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dayframe/internal/domain"
)

const coachName = "coach"

// UserLine renders one user turn in a transcript.
func UserLine(text string) string {
	return StyleBlue.Render("you") + Dim("> ") + text
}

// CoachPrefix is printed before a streaming coach reply.
func CoachPrefix() string {
	return StylePurple.Render(coachName) + Dim("> ")
}

// CoachLine renders a finished coach reply. Static fallback copy is marked
// so the user knows the model was not reached.
func CoachLine(text string, fallback bool) string {
	line := CoachPrefix() + text
	if fallback {
		line += " " + Dim("(offline)")
	}
	return line
}

// SystemLine renders a notice from the app itself rather than the coach.
func SystemLine(text string) string {
	return Dim("· " + text)
}

// ChatWelcome is shown above a fresh conversation.
func ChatWelcome(flow domain.Flow, userName string) string {
	greeting := FlowLabel(flow)
	if userName != "" {
		greeting += " with " + userName
	}
	return StyleHeader.Render(greeting) + "\n" +
		Dim("Type to chat. /done to finish once your plan is saved, /quit to leave.")
}

// FormatPlanSaved confirms a saved plan in the transcript.
func FormatPlanSaved(plan *domain.DailyNotePlan) string {
	var b strings.Builder
	b.WriteString(StyleGreen.Render("✔ Plan saved"))
	for i, item := range plan.Top3 {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, item.Text)
	}
	return b.String()
}

// FormatStreaks renders the user's check-in streaks.
func FormatStreaks(streaks []*domain.Streak) string {
	if len(streaks) == 0 {
		return ""
	}
	parts := make([]string, 0, len(streaks))
	for _, s := range streaks {
		parts = append(parts, fmt.Sprintf("%s %s %s",
			FlowLabel(s.Flow), StyleGreen.Render(Plural(s.Current, "day")), Dim(fmt.Sprintf("(best %d)", s.Longest))))
	}
	return strings.Join(parts, Dim("  ·  "))
}
