package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"

	"github.com/avolkov/docmsg/model"
)

// Writer serializes paragraphs of styled runs into a complete DOCX
// package, applying one style profile uniformly to every paragraph.
type Writer struct {
	profile model.StyleProfile
}

// NewWriter returns a Writer that applies the given style profile.
func NewWriter(profile model.StyleProfile) *Writer {
	return &Writer{profile: profile}
}

// Bytes serializes the paragraphs and returns the document as a byte
// buffer.
func (w *Writer) Bytes(paras []model.Paragraph) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.Write(&buf, paras); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serializes the paragraphs as a DOCX package to out. The produced
// document is complete and independently openable. Failures from the
// destination or the container writer surface as write errors.
func (w *Writer) Write(out io.Writer, paras []model.Paragraph) error {
	doc, rels := w.buildDocument(paras)

	docData, err := xml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}
	relsData, err := xml.Marshal(rels)
	if err != nil {
		return fmt.Errorf("marshaling relationships: %w", err)
	}

	zw := zip.NewWriter(out)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/document.xml", withHeader(docData)},
		{"word/_rels/document.xml.rels", withHeader(relsData)},
		{"word/styles.xml", []byte(w.stylesXML())},
	}
	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			zw.Close()
			return fmt.Errorf("writing %s: %w", part.name, err)
		}
		if _, err := f.Write(part.data); err != nil {
			zw.Close()
			return fmt.Errorf("writing %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing container: %w", err)
	}
	return nil
}

// buildDocument converts the paragraphs into the document tree and the
// hyperlink relationships it references.
func (w *Writer) buildDocument(paras []model.Paragraph) (wDocument, wRelationships) {
	rels := wRelationships{XMLNS: nsRelationships}
	nextRel := 1

	doc := wDocument{
		XMLNSW: "http://schemas.openxmlformats.org/wordprocessingml/2006/main",
		XMLNSR: "http://schemas.openxmlformats.org/officeDocument/2006/relationships",
	}

	// A document must contain at least one paragraph.
	if len(paras) == 0 {
		paras = []model.Paragraph{{}}
	}

	for _, p := range paras {
		wp := wParagraph{Props: w.paragraphProps()}
		for _, run := range p.Runs {
			if run.Text == "" {
				continue
			}
			if run.Style.IsLink() {
				id := fmt.Sprintf("rId%d", nextRel)
				nextRel++
				rels.Relationships = append(rels.Relationships, wRelationship{
					ID:         id,
					Type:       relTypeHyperlink,
					Target:     run.Style.URL,
					TargetMode: "External",
				})
				wp.Content = append(wp.Content, wHyperlink{
					ID:   id,
					Runs: []wRun{w.buildRun(run, true)},
				})
			} else {
				wp.Content = append(wp.Content, w.buildRun(run, false))
			}
		}
		doc.Body.Paragraphs = append(doc.Body.Paragraphs, wp)
	}
	return doc, rels
}

// paragraphProps returns the fixed paragraph properties from the profile.
func (w *Writer) paragraphProps() wParaProps {
	p := w.profile
	props := wParaProps{
		Spacing: &wSpacing{
			Before:   formatTwips(ptToTwips(p.SpaceBeforePt)),
			After:    formatTwips(ptToTwips(p.SpaceAfterPt)),
			Line:     formatTwips(ptToTwips(p.LineSpacingPt)),
			LineRule: "exact",
		},
	}
	if p.FirstLineIndentCm != 0 {
		props.Indent = &wIndent{FirstLine: formatTwips(cmToTwips(p.FirstLineIndentCm))}
	}
	if p.Justified {
		props.Justification = &wVal{Val: "both"}
	}
	return props
}

// buildRun converts one styled run. Link runs reference the Hyperlink
// character style, which renders them underlined by convention; the
// direct underline flag is only written when the source span carried it.
func (w *Writer) buildRun(run model.Run, link bool) wRun {
	size := fmt.Sprintf("%d", int(math.Round(w.profile.FontSizePt*2)))
	props := &wRunProps{
		Fonts: &wFonts{
			ASCII:    w.profile.FontName,
			HAnsi:    w.profile.FontName,
			EastAsia: w.profile.FontName,
			CS:       w.profile.FontName,
		},
		Size:   &wVal{Val: size},
		SizeCS: &wVal{Val: size},
	}
	if link {
		props.Style = &wVal{Val: "Hyperlink"}
	}
	if run.Style.Bold {
		props.Bold = &wToggle{}
	}
	if run.Style.Italic {
		props.Italic = &wToggle{}
	}
	if run.Style.Strike {
		props.Strike = &wToggle{}
	}
	if run.Style.Underline {
		props.Underline = &wVal{Val: "single"}
	}
	return wRun{
		Props: props,
		Text:  wText{Space: "preserve", Value: run.Text},
	}
}

// stylesXML renders the styles part: document defaults from the profile
// plus the Hyperlink character style used for link runs.
func (w *Writer) stylesXML() string {
	size := int(math.Round(w.profile.FontSizePt * 2))
	return fmt.Sprintf(stylesTemplate, w.profile.FontName, w.profile.FontName,
		w.profile.FontName, w.profile.FontName, size, size)
}

// ptToTwips converts points to twentieths of a point.
func ptToTwips(pt float64) int {
	return int(math.Round(pt * 20))
}

// cmToTwips converts centimetres to twips (1 inch = 2.54 cm = 1440 twips).
func cmToTwips(cm float64) int {
	return int(math.Round(cm * 1440 / 2.54))
}

func formatTwips(v int) string {
	return fmt.Sprintf("%d", v)
}

// withHeader prepends the XML declaration to a marshaled part.
func withHeader(data []byte) []byte {
	return append([]byte(xml.Header), data...)
}

// Write-side XML structures. Element and attribute names carry their
// OOXML prefixes literally; the namespaces are declared on the root
// element.

type wDocument struct {
	XMLName xml.Name `xml:"w:document"`
	XMLNSW  string   `xml:"xmlns:w,attr"`
	XMLNSR  string   `xml:"xmlns:r,attr"`
	Body    wBody    `xml:"w:body"`
}

type wBody struct {
	Paragraphs []wParagraph `xml:"w:p"`
}

type wParagraph struct {
	Props   wParaProps `xml:"w:pPr"`
	Content []any
}

type wParaProps struct {
	Spacing       *wSpacing `xml:"w:spacing,omitempty"`
	Indent        *wIndent  `xml:"w:ind,omitempty"`
	Justification *wVal     `xml:"w:jc,omitempty"`
}

type wSpacing struct {
	Before   string `xml:"w:before,attr"`
	After    string `xml:"w:after,attr"`
	Line     string `xml:"w:line,attr"`
	LineRule string `xml:"w:lineRule,attr"`
}

type wIndent struct {
	FirstLine string `xml:"w:firstLine,attr"`
}

type wVal struct {
	Val string `xml:"w:val,attr"`
}

type wRun struct {
	XMLName xml.Name   `xml:"w:r"`
	Props   *wRunProps `xml:"w:rPr,omitempty"`
	Text    wText      `xml:"w:t"`
}

type wRunProps struct {
	Style     *wVal    `xml:"w:rStyle,omitempty"`
	Fonts     *wFonts  `xml:"w:rFonts,omitempty"`
	Bold      *wToggle `xml:"w:b,omitempty"`
	Italic    *wToggle `xml:"w:i,omitempty"`
	Strike    *wToggle `xml:"w:strike,omitempty"`
	Size      *wVal    `xml:"w:sz,omitempty"`
	SizeCS    *wVal    `xml:"w:szCs,omitempty"`
	Underline *wVal    `xml:"w:u,omitempty"`
}

type wToggle struct{}

type wFonts struct {
	ASCII    string `xml:"w:ascii,attr"`
	HAnsi    string `xml:"w:hAnsi,attr"`
	EastAsia string `xml:"w:eastAsia,attr"`
	CS       string `xml:"w:cs,attr"`
}

type wText struct {
	Space string `xml:"xml:space,attr"`
	Value string `xml:",chardata"`
}

type wHyperlink struct {
	XMLName xml.Name `xml:"w:hyperlink"`
	ID      string   `xml:"r:id,attr"`
	Runs    []wRun   `xml:"w:r"`
}

type wRelationships struct {
	XMLName       xml.Name        `xml:"Relationships"`
	XMLNS         string          `xml:"xmlns,attr"`
	Relationships []wRelationship `xml:"Relationship"`
}

type wRelationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
  <Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const stylesTemplate = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:docDefaults>
    <w:rPrDefault>
      <w:rPr>
        <w:rFonts w:ascii="%s" w:hAnsi="%s" w:eastAsia="%s" w:cs="%s"/>
        <w:sz w:val="%d"/>
        <w:szCs w:val="%d"/>
      </w:rPr>
    </w:rPrDefault>
  </w:docDefaults>
  <w:style w:type="character" w:styleId="Hyperlink">
    <w:name w:val="Hyperlink"/>
    <w:rPr>
      <w:color w:val="0563C1"/>
      <w:u w:val="single"/>
    </w:rPr>
  </w:style>
</w:styles>`
