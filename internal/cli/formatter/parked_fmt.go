package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/dayframe/internal/domain"
)

// FormatParkedList renders the parking lot as a table. Items parked long
// enough to deserve a review are flagged.
func FormatParkedList(items []*domain.ParkedItem, now time.Time) string {
	if len(items) == 0 {
		return Dim("The parking lot is empty.") + "\n"
	}
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		age := RelativeDateFrom(p.ParkedAt, now)
		if p.Status == domain.ParkedParked && p.DaysParked(now) >= domain.StaleParkedDays {
			age = StyleYellow.Render(age + " ⚑")
		}
		text := p.Text
		if p.Reason != "" {
			text += Dim(" · " + p.Reason)
		}
		rows = append(rows, []string{TruncID(p.ID), text, ParkedStatusPill(p.Status), age})
	}
	return RenderTable([]string{"ID", "ITEM", "STATUS", "PARKED"}, rows)
}

// FormatParkedOption is the one-line label used in review pickers.
func FormatParkedOption(p *domain.ParkedItem, now time.Time) string {
	return fmt.Sprintf("%s (%s)", p.Text, RelativeDateFrom(p.ParkedAt, now))
}
