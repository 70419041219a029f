package domain

import "time"

// MaxTop3 caps the number of prioritized items in a day's plan.
const MaxTop3 = 3

// DateLayout is the storage and display format for plan dates.
const DateLayout = "2006-01-02"

type Top3Item struct {
	Text        string     `json:"text"`
	WorkType    WorkType   `json:"work_type"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// FocusBlock is a protected stretch of the day in HH:MM form.
type FocusBlock struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type DailyNotePlan struct {
	Top3       []Top3Item  `json:"top3"`
	AdminBatch []string    `json:"admin_batch"`
	FocusBlock *FocusBlock `json:"focus_block,omitempty"`
}

// DailyNote is the per-user, per-day record that holds the confirmed plan.
type DailyNote struct {
	UserID    string
	Date      time.Time
	Plan      *DailyNotePlan
	RawDump   string
	UpdatedAt time.Time
}

// CarryoverItem is an unfinished item from a previous day's plan. It is
// derived on demand and never stored on its own.
type CarryoverItem struct {
	Text              string
	WorkType          WorkType
	OriginalDate      time.Time
	DaysSinceOriginal int
}

// CompleteItem marks the i-th Top 3 item done. Completing an already
// completed item is a no-op.
func (p *DailyNotePlan) CompleteItem(i int, now time.Time) error {
	if i < 0 || i >= len(p.Top3) {
		return ErrItemOutOfRange
	}
	item := &p.Top3[i]
	if item.Completed {
		return nil
	}
	item.Completed = true
	item.CompletedAt = &now
	return nil
}

// TruncateDate drops the clock portion of t in t's location.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateIn reads t's calendar date as midnight in loc. Stored dates carry no
// zone, so they are re-anchored before comparing with a local day.
func DateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Clone returns a copy of p that shares no slices or pointers with it.
func (p DailyNotePlan) Clone() DailyNotePlan {
	out := DailyNotePlan{}
	if p.Top3 != nil {
		out.Top3 = make([]Top3Item, len(p.Top3))
		for i, item := range p.Top3 {
			if item.CompletedAt != nil {
				at := *item.CompletedAt
				item.CompletedAt = &at
			}
			out.Top3[i] = item
		}
	}
	if p.AdminBatch != nil {
		out.AdminBatch = append([]string(nil), p.AdminBatch...)
	}
	if p.FocusBlock != nil {
		fb := *p.FocusBlock
		out.FocusBlock = &fb
	}
	return out
}
