package markup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/avolkov/docmsg/model"
)

// Parse converts the platform's HTML subset back into plain text and
// formatting spans. Span offsets are UTF-16 code units into the returned
// text. Unknown tags are transparent: their text content survives
// without formatting. Nested tags produce nested spans.
func Parse(fragment string) (string, []model.Span, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return "", nil, fmt.Errorf("parsing markup: %w", err)
	}

	p := &fragmentParser{}
	for _, n := range nodes {
		p.walk(n)
	}
	return p.text.String(), p.spans, nil
}

// fragmentParser accumulates text and spans while walking the parsed
// tree. The cursor tracks the output position in UTF-16 code units.
type fragmentParser struct {
	text   strings.Builder
	cursor int
	spans  []model.Span
}

func (p *fragmentParser) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		p.text.WriteString(n.Data)
		p.cursor += model.UTF16Length(n.Data)
		return
	case html.ElementNode:
		if n.DataAtom == atom.Br {
			p.text.WriteByte('\n')
			p.cursor++
			return
		}
		if kind, url, ok := spanTag(n); ok {
			start := p.cursor
			p.walkChildren(n)
			if length := p.cursor - start; length > 0 {
				p.spans = append(p.spans, model.Span{
					Start:  start,
					Length: length,
					Kind:   kind,
					URL:    url,
				})
			}
			return
		}
	}
	p.walkChildren(n)
}

func (p *fragmentParser) walkChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

// spanTag maps an element to a span kind. Links without an href are not
// spans; their content stays plain.
func spanTag(n *html.Node) (model.SpanKind, string, bool) {
	switch n.DataAtom {
	case atom.B, atom.Strong:
		return model.SpanBold, "", true
	case atom.I, atom.Em:
		return model.SpanItalic, "", true
	case atom.U, atom.Ins:
		return model.SpanUnderline, "", true
	case atom.S, atom.Strike, atom.Del:
		return model.SpanStrike, "", true
	case atom.A:
		for _, attr := range n.Attr {
			if attr.Key == "href" && attr.Val != "" {
				return model.SpanLink, attr.Val, true
			}
		}
	}
	return "", "", false
}
