package coaching

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxConfirmationLen bounds what counts as a bare confirmation. Longer
// replies such as "Yes, but I also need X" usually carry corrections.
const maxConfirmationLen = 80

// affirmationPatterns is an explicit allow-list. Affirmative phrasing that
// is not listed is deliberately treated as not confirming.
var affirmationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(yes|yep|yeah|sure|ok|okay)[.!\s]*$`),
	regexp.MustCompile(`(?i)^(sounds|looks) good[.!\s]*$`),
	regexp.MustCompile(`(?i)^that('s| is) (good|great|perfect|right|correct)[.!\s]*$`),
	regexp.MustCompile(`(?i)^let'?s do it[.!\s]*$`),
	regexp.MustCompile(`(?i)^that'?s the plan[.!\s]*$`),
	regexp.MustCompile(`(?i)^confirmed[.!\s]*$`),
	regexp.MustCompile(`(?i)^(sounds|looks) right[.!\s]*$`),
	regexp.MustCompile(`(?i)^all good[.!\s]*$`),
	regexp.MustCompile(`(?i)^perfect[.!\s]*$`),
	regexp.MustCompile(`(?i)^works for me[.!\s]*$`),
	regexp.MustCompile(`(?i)^lock it in[.!\s]*$`),
	regexp.MustCompile(`(?i)^yes,.{0,40}\b(good|great|perfect|right|correct)\b`),
	regexp.MustCompile(`(?i)^yeah,.{0,40}\b(good|great|perfect|right|correct)\b`),
}

// askingPhrases mark an assistant turn that is soliciting sign-off.
var askingPhrases = []string{
	"sound right",
	"sounds right",
	"look right",
	"looks right",
	"does this",
	"does that",
	"sound good",
	"sounds good",
	"look good",
	"looks good",
	"priority order feel right",
	"your top 3",
	"can you block",
	"ready to lock",
	"confirm your",
	"here's what i'd suggest",
	"what i suggest",
}

// IsConfirmation reports whether a short user reply affirms the proposal.
func IsConfirmation(text string) bool {
	if utf8.RuneCountInString(text) >= maxConfirmationLen {
		return false
	}
	trimmed := normalizeQuotes(strings.TrimSpace(text))
	for _, p := range affirmationPatterns {
		if p.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// IsAskingForConfirmation reports whether an assistant reply asks the user
// to sign off on a plan.
func IsAskingForConfirmation(text string) bool {
	lower := normalizeQuotes(strings.ToLower(text))
	for _, phrase := range askingPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// ShouldSavePlan is true when the user affirms a reply that asked for it.
func ShouldSavePlan(lastUser, lastAssistant string) bool {
	return IsConfirmation(lastUser) && IsAskingForConfirmation(lastAssistant)
}

func normalizeQuotes(s string) string {
	return strings.NewReplacer("’", "'", "‘", "'").Replace(s)
}
