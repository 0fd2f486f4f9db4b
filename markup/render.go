// Package markup renders messages to the chat platform's HTML subset and
// parses that subset back into text plus formatting spans. The subset
// covers exactly the supported span kinds: <b>, <i>, <u>, <s> and
// <a href>.
package markup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/avolkov/docmsg/model"
)

// Render produces the HTML markup for the given paragraphs, joined with
// line breaks. Tag nesting per run is fixed: the link is innermost, then
// bold, italic, underline, strike.
func Render(paras []model.Paragraph) string {
	var b strings.Builder
	for i, p := range paras {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, r := range p.Runs {
			b.WriteString(wrapRun(r))
		}
	}
	return b.String()
}

// wrapRun escapes a run's text and wraps it in the tags for its active
// attributes.
func wrapRun(r model.Run) string {
	if r.Text == "" {
		return ""
	}
	out := html.EscapeString(r.Text)
	if r.Style.URL != "" {
		out = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(r.Style.URL), out)
	}
	if r.Style.Bold {
		out = "<b>" + out + "</b>"
	}
	if r.Style.Italic {
		out = "<i>" + out + "</i>"
	}
	if r.Style.Underline {
		out = "<u>" + out + "</u>"
	}
	if r.Style.Strike {
		out = "<s>" + out + "</s>"
	}
	return out
}
