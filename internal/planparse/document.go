package planparse

// Section is a header together with the list items that follow it.
type Section struct {
	Header HeaderKind
	Title  string
	Items  []Line
}

// Document is the parsed form of one assistant message.
type Document struct {
	Sections []Section
	Lines    []Line
}

// Parse groups lexed lines into sections. A section collects the list items
// after its header, skipping blank lines, and ends at the next header or at
// the first prose line once an item has been seen.
func Parse(text string) Document {
	lines := Lex(text)
	doc := Document{Lines: lines}

	var current *Section
	closeSection := func() {
		if current != nil {
			doc.Sections = append(doc.Sections, *current)
			current = nil
		}
	}

	for _, line := range lines {
		switch line.Kind {
		case LineHeader:
			closeSection()
			current = &Section{Header: line.Header, Title: line.Text}
		case LineNumbered, LineBullet:
			if current != nil {
				current.Items = append(current.Items, line)
			}
		case LineText:
			if current != nil && len(current.Items) > 0 {
				closeSection()
			}
		}
	}
	closeSection()
	return doc
}

// First returns the first section with the given header kind.
func (d Document) First(kind HeaderKind) (Section, bool) {
	for _, s := range d.Sections {
		if s.Header == kind {
			return s, true
		}
	}
	return Section{}, false
}

// ItemsOf returns the payloads of items of the given kind, in order.
func (s Section) ItemsOf(kind LineKind) []string {
	var out []string
	for _, item := range s.Items {
		if item.Kind == kind {
			out = append(out, item.Text)
		}
	}
	return out
}
