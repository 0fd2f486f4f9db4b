package segment

import (
	"strings"

	"github.com/avolkov/docmsg/model"
)

// Flatten is the inverse of Paragraphs: it concatenates paragraph texts
// joined by line breaks and emits one span per active style attribute
// over each merged run. Offsets in the returned spans are UTF-16 code
// units into the returned text. Adjacent runs with identical styles are
// merged first, so the span set is minimal within each paragraph. A span
// never covers the joining line break: the break character carries no
// visible formatting.
func Flatten(paras []model.Paragraph) (string, []model.Span) {
	var b strings.Builder
	var spans []model.Span
	cursor := 0

	for i, p := range paras {
		if i > 0 {
			b.WriteByte('\n')
			cursor++
		}
		for _, r := range mergeRuns(p.Runs) {
			n := model.UTF16Length(r.Text)
			spans = append(spans, runSpans(r.Style, cursor, n)...)
			b.WriteString(r.Text)
			cursor += n
		}
	}
	return b.String(), spans
}

// runSpans emits one span per attribute active on a run.
func runSpans(st model.Style, start, length int) []model.Span {
	var spans []model.Span
	if st.Bold {
		spans = append(spans, model.Span{Start: start, Length: length, Kind: model.SpanBold})
	}
	if st.Italic {
		spans = append(spans, model.Span{Start: start, Length: length, Kind: model.SpanItalic})
	}
	if st.Underline {
		spans = append(spans, model.Span{Start: start, Length: length, Kind: model.SpanUnderline})
	}
	if st.Strike {
		spans = append(spans, model.Span{Start: start, Length: length, Kind: model.SpanStrike})
	}
	if st.URL != "" {
		spans = append(spans, model.Span{Start: start, Length: length, Kind: model.SpanLink, URL: st.URL})
	}
	return spans
}
