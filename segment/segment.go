// Package segment maps between the two formatting representations: chat
// formatting spans keyed by offsets into the message text, and ordered
// paragraphs of styled runs as a word processor stores them.
package segment

import (
	"sort"
	"strings"

	"github.com/avolkov/docmsg/model"
)

// byteSpan is a span with its offsets resolved to byte indexes of the
// message text. Declaration order is preserved: when overlapping link
// spans cover the same range, the first-declared target wins.
type byteSpan struct {
	start int
	end   int
	kind  model.SpanKind
	url   string
}

// Paragraphs splits the message text on line breaks and converts its
// formatting spans into ordered paragraphs of styled runs. Span offsets
// are interpreted in UTF-16 code units relative to the original unsplit
// text. Empty text yields a single empty paragraph.
func Paragraphs(text string, spans []model.Span) ([]model.Paragraph, error) {
	if err := model.ValidateSpans(text, spans); err != nil {
		return nil, err
	}

	ranges := make([]byteSpan, len(spans))
	for i, s := range spans {
		ranges[i] = byteSpan{
			start: model.ByteIndex(text, s.Start),
			end:   model.ByteIndex(text, s.End()),
			kind:  s.Kind,
			url:   s.URL,
		}
	}

	var paras []model.Paragraph
	start := 0
	for {
		rel := strings.IndexByte(text[start:], '\n')
		end := len(text)
		if rel >= 0 {
			end = start + rel
		}
		paras = append(paras, buildParagraph(text, start, end, ranges))
		if rel < 0 {
			break
		}
		start = end + 1
	}
	return paras, nil
}

// buildParagraph forms the runs covering text[start:end). The sub-range
// boundaries are the span edges falling inside the paragraph; each
// sub-range between adjacent boundaries has a single style, determined
// by sampling which spans cover it.
func buildParagraph(text string, start, end int, ranges []byteSpan) model.Paragraph {
	if start == end {
		return model.Paragraph{}
	}

	bounds := []int{start, end}
	for _, r := range ranges {
		if r.start > start && r.start < end {
			bounds = append(bounds, r.start)
		}
		if r.end > start && r.end < end {
			bounds = append(bounds, r.end)
		}
	}
	sort.Ints(bounds)
	uniq := bounds[:1]
	for _, v := range bounds[1:] {
		if v != uniq[len(uniq)-1] {
			uniq = append(uniq, v)
		}
	}

	var runs []model.Run
	for i := 0; i < len(uniq)-1; i++ {
		a, b := uniq[i], uniq[i+1]
		runs = append(runs, model.Run{Text: text[a:b], Style: styleAt(a, b, ranges)})
	}
	return model.Paragraph{Runs: mergeRuns(runs)}
}

// styleAt determines the active style of the sub-range [a,b). Because
// every span edge is a boundary, a span either covers the whole
// sub-range or none of it.
func styleAt(a, b int, ranges []byteSpan) model.Style {
	var st model.Style
	for _, r := range ranges {
		if r.start > a || r.end < b {
			continue
		}
		switch r.kind {
		case model.SpanBold:
			st.Bold = true
		case model.SpanItalic:
			st.Italic = true
		case model.SpanUnderline:
			st.Underline = true
		case model.SpanStrike:
			st.Strike = true
		case model.SpanLink:
			if st.URL == "" {
				st.URL = r.url
			}
		}
	}
	return st
}

// mergeRuns coalesces adjacent runs with identical styles and drops
// empty runs, producing the minimal run sequence.
func mergeRuns(runs []model.Run) []model.Run {
	var merged []model.Run
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		if n := len(merged); n > 0 && merged[n-1].Style == r.Style {
			merged[n-1].Text += r.Text
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
