package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// WorkTypeBadge returns a short colored label for a plan item's work type.
func WorkTypeBadge(wt domain.WorkType) string {
	switch wt {
	case domain.WorkDeepFocus:
		return StylePurple.Render("focus")
	case domain.WorkAdmin:
		return StyleBlue.Render("admin")
	case domain.WorkMeeting:
		return StyleYellow.Render("meeting")
	default:
		return StyleDim.Render(string(wt))
	}
}

// ParkedStatusPill returns a colored indicator for a parked item's status.
func ParkedStatusPill(status domain.ParkedStatus) string {
	switch status {
	case domain.ParkedParked:
		return StyleBlue.Render("○ Parked")
	case domain.ParkedUnderReview:
		return StyleYellow.Render("◐ Reviewing")
	case domain.ParkedReactivated:
		return StyleGreen.Render("● Reactivated")
	case domain.ParkedDeleted:
		return StyleDim.Render("✖ Deleted")
	default:
		return StyleDim.Render(string(status))
	}
}

// FlowLabel names a flow the way the user sees it.
func FlowLabel(flow domain.Flow) string {
	switch flow {
	case domain.FlowMorning:
		return "Morning check-in"
	case domain.FlowEvening:
		return "Evening reflection"
	case domain.FlowChallengeIntro:
		return "Foundation intro"
	default:
		return "Chat"
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
