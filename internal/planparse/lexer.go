// Package planparse turns coach replies into a structured daily plan.
//
// The grammar is line oriented. Lex tags every line of a reply, Parse groups
// tagged lines into sections under recognized headers, and Extract walks a
// transcript to pull the most recent Top 3 and Admin Batch sections out of it.
package planparse

import (
	"regexp"
	"strings"
)

// LineKind tags a single line of assistant text.
type LineKind int

const (
	LineText LineKind = iota
	LineBlank
	LineHeader
	LineNumbered
	LineBullet
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineHeader:
		return "header"
	case LineNumbered:
		return "numbered"
	case LineBullet:
		return "bullet"
	default:
		return "text"
	}
}

// HeaderKind identifies which section a header opens.
type HeaderKind string

const (
	HeaderNone  HeaderKind = ""
	HeaderTop3  HeaderKind = "top3"
	HeaderAdmin HeaderKind = "admin_batch"
	HeaderOther HeaderKind = "other"
)

// HeaderSpellingsVersion changes whenever HeaderSpellings changes, so stored
// extraction results can be traced back to the vocabulary that produced them.
const HeaderSpellingsVersion = 2

// HeaderSpellings is the closed set of accepted section titles, compared
// after markdown decoration and a trailing colon are removed.
var HeaderSpellings = map[HeaderKind][]string{
	HeaderTop3: {
		"top 3",
		"top three",
		"your top 3",
		"your top three",
		"today's top 3",
		"top 3 priorities",
		"top 3 for today",
		"top priorities",
	},
	HeaderAdmin: {
		"admin batch",
		"admin tasks",
		"batched admin",
		"admin block",
		"quick admin batch",
	},
}

// Line is one tagged line. Text holds the item payload for numbered and
// bullet lines and the trimmed line otherwise.
type Line struct {
	Kind   LineKind
	Header HeaderKind
	Text   string
	Raw    string
}

var (
	numberedPattern = regexp.MustCompile(`^\d+[.)]\s*(.+)`)
	bulletPattern   = regexp.MustCompile(`^[-*]\s*(.+)`)
	mdHeadingPrefix = regexp.MustCompile(`^#{1,6}\s+`)
	boldLine        = regexp.MustCompile(`^(\*\*|__).+(\*\*|__):?$`)
)

// Lex splits text into tagged lines. Headers are recognized before list
// items because bold markdown ("**Top 3:**") would otherwise read as a bullet.
func Lex(text string) []Line {
	rawLines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]Line, 0, len(rawLines))
	for _, raw := range rawLines {
		lines = append(lines, lexLine(raw))
	}
	return lines
}

func lexLine(raw string) Line {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Line{Kind: LineBlank, Raw: raw}
	}
	if kind := headerKind(trimmed); kind != HeaderNone {
		return Line{Kind: LineHeader, Header: kind, Text: trimmed, Raw: raw}
	}
	if m := numberedPattern.FindStringSubmatch(trimmed); m != nil {
		return Line{Kind: LineNumbered, Text: strings.TrimSpace(m[1]), Raw: raw}
	}
	if m := bulletPattern.FindStringSubmatch(trimmed); m != nil {
		return Line{Kind: LineBullet, Text: strings.TrimSpace(m[1]), Raw: raw}
	}
	return Line{Kind: LineText, Text: trimmed, Raw: raw}
}

// headerKind classifies a trimmed line as a section header. A line is a
// header when its cleaned text equals an accepted spelling, or when it ends
// in a colon and contains one ("Here's your Top 3:"). Other markdown
// headings and bold-only lines are HeaderOther: they close a section
// without opening a known one.
func headerKind(trimmed string) HeaderKind {
	if numberedPattern.MatchString(trimmed) && !boldLine.MatchString(trimmed) {
		return HeaderNone
	}
	cleaned, colon := cleanHeader(trimmed)
	for _, kind := range []HeaderKind{HeaderTop3, HeaderAdmin} {
		for _, spelling := range HeaderSpellings[kind] {
			if cleaned == spelling || (colon && strings.Contains(cleaned, spelling)) {
				return kind
			}
		}
	}
	if mdHeadingPrefix.MatchString(trimmed) || boldLine.MatchString(trimmed) {
		return HeaderOther
	}
	return HeaderNone
}

// cleanHeader lowercases s, strips heading markers, emphasis and a trailing
// colon. It reports whether a colon terminated the title.
func cleanHeader(s string) (string, bool) {
	s = mdHeadingPrefix.ReplaceAllString(s, "")
	s = strings.Trim(s, "*_ ")
	colon := strings.HasSuffix(s, ":")
	s = strings.TrimSuffix(s, ":")
	s = strings.Trim(s, "*_ ")
	s = strings.ReplaceAll(s, "’", "'")
	return strings.ToLower(s), colon
}
