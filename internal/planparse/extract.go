package planparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/dayframe/internal/domain"
)

// Result is the plan recovered from a transcript.
type Result struct {
	Top3       []domain.Top3Item
	AdminBatch []string
	RawDump    string
	FocusBlock *domain.FocusBlock
}

// Plan converts the result into the stored plan shape.
func (r Result) Plan() domain.DailyNotePlan {
	return domain.DailyNotePlan{
		Top3:       r.Top3,
		AdminBatch: r.AdminBatch,
		FocusBlock: r.FocusBlock,
	}
}

// Empty reports whether nothing plan-like was found.
func (r Result) Empty() bool {
	return len(r.Top3) == 0 && len(r.AdminBatch) == 0
}

var trailingParenthetical = regexp.MustCompile(`\s*\([^()]*\)\s*$`)

// Extract builds a plan from a transcript. The raw dump is every user
// message in order. Assistant messages are scanned newest first; the first
// one with a non-empty Top 3 section supplies the priorities and the first
// one with a non-empty Admin Batch section supplies the batch. Extract never
// fails: anything it cannot recognize is simply left empty.
func Extract(messages []domain.Message) Result {
	res := Result{
		Top3:       []domain.Top3Item{},
		AdminBatch: []string{},
		RawDump:    rawDump(messages),
	}

	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		if msg.Role != domain.RoleAssistant {
			continue
		}
		doc := Parse(msg.Content)

		if len(res.Top3) == 0 {
			if s, ok := doc.First(HeaderTop3); ok {
				res.Top3 = top3Items(s)
			}
		}
		if len(res.AdminBatch) == 0 {
			if s, ok := doc.First(HeaderAdmin); ok {
				if items := s.ItemsOf(LineBullet); len(items) > 0 {
					res.AdminBatch = items
				}
			}
		}
		if res.FocusBlock == nil {
			res.FocusBlock = findFocusBlock(doc)
		}

		if len(res.Top3) > 0 && len(res.AdminBatch) > 0 {
			break
		}
	}
	return res
}

func rawDump(messages []domain.Message) string {
	var parts []string
	for _, m := range messages {
		if m.Role == domain.RoleUser {
			parts = append(parts, m.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

func top3Items(s Section) []domain.Top3Item {
	items := []domain.Top3Item{}
	for _, line := range s.ItemsOf(LineNumbered) {
		if len(items) == domain.MaxTop3 {
			break
		}
		items = append(items, domain.Top3Item{
			Text:     StripAnnotation(line),
			WorkType: ClassifyWorkType(line),
		})
	}
	return items
}

// StripAnnotation removes one trailing parenthetical, so
// "Write spec (deep focus)" becomes "Write spec".
func StripAnnotation(line string) string {
	stripped := strings.TrimSpace(trailingParenthetical.ReplaceAllString(line, ""))
	if stripped == "" {
		return strings.TrimSpace(line)
	}
	return stripped
}

var focusBlockPattern = regexp.MustCompile(
	`(?i)focus block\b[^0-9\n]*(\d{1,2}(?::\d{2})?\s*(?:am|pm)?)\s*(?:-|–|to)\s*(\d{1,2}(?::\d{2})?\s*(?:am|pm)?)`)

func findFocusBlock(doc Document) *domain.FocusBlock {
	for _, line := range doc.Lines {
		m := focusBlockPattern.FindStringSubmatch(line.Raw)
		if m == nil {
			continue
		}
		inherit := ""
		if leadingHour(m[1]) <= leadingHour(m[2]) {
			inherit = meridiem(m[2])
		}
		start, ok1 := clockTime(m[1], inherit)
		end, ok2 := clockTime(m[2], "")
		if ok1 && ok2 {
			return &domain.FocusBlock{Start: start, End: end}
		}
	}
	return nil
}

func leadingHour(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}

func meridiem(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasSuffix(s, "am"):
		return "am"
	case strings.HasSuffix(s, "pm"):
		return "pm"
	}
	return ""
}

// clockTime normalizes "9", "9:30", "2pm" into HH:MM. A bare start time
// borrows the end time's am/pm suffix.
func clockTime(s, inherit string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	suffix := meridiem(s)
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(s, "am"), "pm"))
	if suffix == "" {
		suffix = inherit
	}

	hourStr, minStr, found := strings.Cut(s, ":")
	if !found {
		minStr = "0"
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return "", false
	}
	minute, err := strconv.Atoi(minStr)
	if err != nil || minute > 59 {
		return "", false
	}
	switch suffix {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}
