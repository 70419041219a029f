package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayframe/internal/domain"
)

// FormatPlan renders a day's plan with completion marks.
func FormatPlan(note *domain.DailyNote, today time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Plan · " + HumanDate(note.Date, today)))
	b.WriteString("\n\n")

	if note.Plan == nil || len(note.Plan.Top3) == 0 {
		b.WriteString(Dim("No Top 3 yet."))
		b.WriteString("\n")
		return b.String()
	}
	p := note.Plan

	done := 0
	for i, item := range p.Top3 {
		mark := StyleBlue.Render("○")
		text := StyleFg.Render(item.Text)
		if item.Completed {
			done++
			mark = StyleGreen.Render("✔")
			text = Dim(item.Text)
		}
		fmt.Fprintf(&b, "  %s %d. %s  %s\n", mark, i+1, text, WorkTypeBadge(item.WorkType))
	}
	fmt.Fprintf(&b, "\n  %s\n", Dim(fmt.Sprintf("%d of %d done", done, len(p.Top3))))

	if p.FocusBlock != nil {
		fmt.Fprintf(&b, "\n  %s %s–%s\n", Bold("Focus block"), p.FocusBlock.Start, p.FocusBlock.End)
	}
	if len(p.AdminBatch) > 0 {
		fmt.Fprintf(&b, "\n  %s\n", Bold("Admin batch"))
		for _, a := range p.AdminBatch {
			fmt.Fprintf(&b, "    • %s\n", a)
		}
	}
	return b.String()
}

// FormatCarryover lists unfinished items from the previous day.
func FormatCarryover(items []domain.CarryoverItem) string {
	if len(items) == 0 {
		return Dim("Nothing carried over.") + "\n"
	}
	var b strings.Builder
	b.WriteString(Bold("Carried over"))
	b.WriteString("\n")
	for _, item := range items {
		fmt.Fprintf(&b, "  → %s %s\n", item.Text, Dim("("+Plural(item.DaysSinceOriginal, "day")+")"))
	}
	return b.String()
}
