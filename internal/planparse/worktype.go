package planparse

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/dayframe/internal/domain"
)

// WorkTypeRule maps keyword hits or a shape pattern to a work type.
type WorkTypeRule struct {
	Type     domain.WorkType
	Keywords []string
	Pattern  *regexp.Regexp
}

// WorkTypeRules are evaluated in order; the first match wins.
var WorkTypeRules = []WorkTypeRule{
	{
		Type:     domain.WorkMeeting,
		Keywords: []string{"meeting", "standup", "call", "sync"},
		Pattern:  regexp.MustCompile(`\b\d{1,2}(:\d{2})?\s*(am|pm)\b`),
	},
	{
		Type:     domain.WorkAdmin,
		Keywords: []string{"admin", "email", "inbox", "quick", "batch", "slack"},
		Pattern:  regexp.MustCompile(`\b\d+\s*min`),
	},
	{
		Type:     domain.WorkDeepFocus,
		Keywords: []string{"deep focus", "focus", "write", "spec", "deck", "document"},
		Pattern:  regexp.MustCompile(`\b\d+\s*hours?\b`),
	},
}

// DefaultWorkType applies when no rule matches. Top 3 items are the day's
// highest priority work, so unclassified items are treated as focus work.
const DefaultWorkType = domain.WorkDeepFocus

// ClassifyWorkType picks a work type for a plan line.
func ClassifyWorkType(text string) domain.WorkType {
	lower := strings.ToLower(text)
	for _, rule := range WorkTypeRules {
		if rule.matches(lower) {
			return rule.Type
		}
	}
	return DefaultWorkType
}

func (r WorkTypeRule) matches(lower string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return r.Pattern != nil && r.Pattern.MatchString(lower)
}
