package coaching

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayframe/internal/domain"
)

// CarryoverInput is what the carryover calculation needs at session start.
type CarryoverInput struct {
	YesterdayNote *domain.DailyNote
	Today         time.Time
}

// CarryoverItems returns yesterday's unfinished Top 3 items in plan order.
func CarryoverItems(in CarryoverInput) []domain.CarryoverItem {
	note := in.YesterdayNote
	if note == nil || note.Plan == nil {
		return []domain.CarryoverItem{}
	}

	original := domain.DateIn(note.Date, in.Today.Location())
	days := domain.DaysBetween(original, in.Today)

	items := []domain.CarryoverItem{}
	for _, item := range note.Plan.Top3 {
		if item.Completed {
			continue
		}
		items = append(items, domain.CarryoverItem{
			Text:              item.Text,
			WorkType:          item.WorkType,
			OriginalDate:      original,
			DaysSinceOriginal: days,
		})
	}
	return items
}

// FormatCarryoverForPrompt renders carryover items as prompt bullets.
func FormatCarryoverForPrompt(items []domain.CarryoverItem) string {
	if len(items) == 0 {
		return "None"
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- %s (%s) - carrying over for %s",
			item.Text, item.WorkType, pluralDays(item.DaysSinceOriginal)))
	}
	return strings.Join(lines, "\n")
}

// FormatParkedItemsForPrompt renders the parking lot with age labels and a
// warning on items that have sat for a week or more.
func FormatParkedItemsForPrompt(items []domain.ParkedItem, now time.Time) string {
	if len(items) == 0 {
		return "None"
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		days := item.DaysParked(now)

		var b strings.Builder
		b.WriteString("- ")
		b.WriteString(item.Text)
		b.WriteString(" (")
		b.WriteString(parkedLabel(days))
		b.WriteString(")")
		if item.Reason != "" {
			fmt.Fprintf(&b, " - reason: %q", item.Reason)
		}
		if days >= domain.StaleParkedDays {
			b.WriteString(" [STALE: parked over a week, suggest reactivating or letting it go]")
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func parkedLabel(days int) string {
	if days == 0 {
		return "parked today"
	}
	return "parked " + pluralDays(days) + " ago"
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// SummarizePlan renders a stored plan as a short prompt block.
func SummarizePlan(plan *domain.DailyNotePlan) string {
	if plan == nil || (len(plan.Top3) == 0 && len(plan.AdminBatch) == 0) {
		return ""
	}
	var b strings.Builder
	b.WriteString("Top 3:")
	for i, item := range plan.Top3 {
		mark := " "
		if item.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "\n%d. [%s] %s (%s)", i+1, mark, item.Text, item.WorkType)
	}
	if len(plan.AdminBatch) > 0 {
		b.WriteString("\nAdmin batch: ")
		b.WriteString(strings.Join(plan.AdminBatch, "; "))
	}
	if plan.FocusBlock != nil {
		fmt.Fprintf(&b, "\nFocus block: %s-%s", plan.FocusBlock.Start, plan.FocusBlock.End)
	}
	return b.String()
}

// SummarizeValues renders the values exercise result for the prompt.
func SummarizeValues(v *domain.ValuesData) string {
	if v == nil || len(v.CoreValues) == 0 {
		return ""
	}
	s := "Core values: " + strings.Join(v.CoreValues, ", ")
	if v.Vision != "" {
		s += "\nVision: " + v.Vision
	}
	return s
}
