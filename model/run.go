package model

import "strings"

// Style is one exact combination of character formatting attributes.
// Runs with equal styles are mergeable.
type Style struct {
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	URL       string // hyperlink target; empty when the run is not a link
}

// IsLink reports whether the style carries a hyperlink target.
func (s Style) IsLink() bool {
	return s.URL != ""
}

// IsZero reports whether the style carries no formatting at all.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Run is the maximal contiguous text fragment of a paragraph sharing one
// exact style combination.
type Run struct {
	Text  string
	Style Style
}

// Paragraph is an ordered sequence of runs corresponding to one line of
// the original message or one block paragraph of the document. A
// paragraph may be empty.
type Paragraph struct {
	Runs []Run
}

// Text returns the concatenated text of the paragraph's runs.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}
