package coaching

import "github.com/alexanderramin/dayframe/internal/domain"

// fallbackResponses are the static replies used when the model cannot be
// reached. Every row has a default entry.
var fallbackResponses = map[domain.Flow]map[domain.Phase]string{
	domain.FlowMorning: {
		domain.PhaseGreeting: "Good morning! I'm having trouble thinking clearly right now, but let's still start. What's on your mind today? List everything, big or small.",
		domain.PhaseDump:     "Got it. Keep going if there's more. When you're done, pick the three things that would make today feel like a win.",
		domain.PhasePriority: "Looking at your list, which one item would make the biggest difference if it were done by tonight? Start with that as #1.",
		domain.PhaseDefault:  "I'm having a connection hiccup. Your notes are safe. Try your last message again in a moment, or write down your top 3 so you can get moving.",
	},
	domain.FlowEvening: {
		domain.PhaseGreeting: "Hey, welcome back. I'm a bit slow right now, but let's wrap up the day. What did you get done today?",
		domain.PhaseReflect:  "Thanks for sharing that. What's one win from today, even a small one?",
		domain.PhaseDefault:  "I'm having a connection hiccup. Whatever didn't get done can wait for tomorrow. You can log off with a clear conscience.",
	},
	domain.FlowAdhoc: {
		domain.PhaseGreeting: "Hi! I'm running slow at the moment, but I'm here. What do you need help with?",
		domain.PhaseDefault:  "I'm having trouble responding right now. Try again in a moment. If it's urgent, write down the one next step you can take.",
	},
	domain.FlowChallengeIntro: {
		domain.PhaseGreeting: "Welcome to your next foundation! I'm having trouble loading the details, but the idea is simple: practice one small habit each day. Ready to give it a try?",
		domain.PhaseDefault:  "I'm having a connection hiccup. Your foundation progress is saved. Come back in a moment and we'll pick up where we left off.",
	},
}

// FallbackResponse returns the static reply for a flow and phase. Missing
// phases use the flow's default entry and unknown flows use the morning
// row. It never fails.
func FallbackResponse(flow domain.Flow, phase domain.Phase) string {
	row, ok := fallbackResponses[flow]
	if !ok {
		row = fallbackResponses[domain.FlowMorning]
	}
	if msg, ok := row[phase]; ok {
		return msg
	}
	return row[domain.PhaseDefault]
}

// PhaseFor maps the number of completed turns to a conversation phase.
func PhaseFor(flow domain.Flow, turnCount int) domain.Phase {
	if turnCount <= 0 {
		return domain.PhaseGreeting
	}
	switch flow {
	case domain.FlowMorning:
		switch {
		case turnCount == 1:
			return domain.PhaseDump
		case turnCount <= 3:
			return domain.PhasePriority
		}
	case domain.FlowEvening:
		if turnCount <= 2 {
			return domain.PhaseReflect
		}
	}
	return domain.PhaseDefault
}
