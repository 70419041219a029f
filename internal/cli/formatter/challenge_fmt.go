package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/alexanderramin/dayframe/internal/service"
)

func FormatChallengeList(list []service.ChallengeStatus) string {
	rows := make([][]string, 0, len(list))
	for _, st := range list {
		state := Dim("—")
		switch {
		case st.Active:
			state = StyleGreen.Render("● Active")
		case st.CompletedAt != nil:
			state = Dim("✔ Done")
		case st.StartedAt != nil:
			state = StyleYellow.Render("○ Started")
		}
		rows = append(rows, []string{fmt.Sprintf("%2d", st.Challenge.Number), st.Challenge.Title, state})
	}
	return RenderTable([]string{"#", "FOUNDATION", "STATE"}, rows)
}

func FormatActiveChallenge(ac *domain.ActiveChallenge) string {
	if ac == nil {
		return Dim("No foundation in progress. Start one with `dayframe challenge start <n>`.") + "\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StylePurple.Render(fmt.Sprintf("#%d", ac.Challenge.Number)), Bold(ac.Challenge.Title))
	if ac.Challenge.Summary != "" {
		fmt.Fprintf(&b, "%s\n", ac.Challenge.Summary)
	}
	fmt.Fprintf(&b, "%s\n", Dim("Day "+fmt.Sprint(ac.DaysSinceStarted+1)))
	return b.String()
}
