package docx

import (
	"encoding/xml"
	"strings"
)

// XML namespaces used in DOCX packages.
const (
	nsRelationships  = "http://schemas.openxmlformats.org/package/2006/relationships"
	relTypeHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
)

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML represents the document body.
type bodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

// paragraphItem is one ordered child of a paragraph: either a plain run
// or a hyperlink wrapping one or more runs. Document order matters for
// reconstructing the message, so paragraphs are decoded manually rather
// than letting xml.Unmarshal collect runs and hyperlinks separately.
type paragraphItem struct {
	Run       *runXML
	Hyperlink *hyperlinkXML
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	Items []paragraphItem
}

// UnmarshalXML decodes a paragraph, preserving the order of runs and
// hyperlinks. Other children (properties, bookmarks, proofing marks)
// are skipped.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "r":
				var run runXML
				if err := d.DecodeElement(&run, &t); err != nil {
					return err
				}
				p.Items = append(p.Items, paragraphItem{Run: &run})
			case "hyperlink":
				var h hyperlinkXML
				if err := d.DecodeElement(&h, &t); err != nil {
					return err
				}
				p.Items = append(p.Items, paragraphItem{Hyperlink: &h})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// runXML represents a text run (<w:r>). Text content is assembled in
// document order from <w:t>, <w:tab> (four spaces) and <w:br> (line
// break) children.
type runXML struct {
	Props runPropsXML
	Text  string
}

// UnmarshalXML decodes a run, concatenating its text content in order.
func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var text strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				if err := d.DecodeElement(&r.Props, &t); err != nil {
					return err
				}
			case "t":
				var tx textXML
				if err := d.DecodeElement(&tx, &t); err != nil {
					return err
				}
				text.WriteString(tx.Value)
			case "tab":
				text.WriteString("    ")
				if err := d.Skip(); err != nil {
					return err
				}
			case "br":
				text.WriteString("\n")
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			r.Text = text.String()
			return nil
		}
	}
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Bold      toggleXML `xml:"b"`
	Italic    toggleXML `xml:"i"`
	Underline toggleXML `xml:"u"`
	Strike    toggleXML `xml:"strike"`
	DStrike   toggleXML `xml:"dstrike"`
}

// toggleXML represents an on/off run property. A present element with no
// val attribute means "on"; val of "false", "0" or "none" means "off".
type toggleXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// on reports whether the property is present and enabled.
func (t toggleXML) on() bool {
	if t.XMLName.Local == "" {
		return false
	}
	switch strings.ToLower(t.Val) {
	case "false", "0", "none":
		return false
	}
	return true
}

// textXML represents text content (<w:t>).
type textXML struct {
	XMLName xml.Name `xml:"t"`
	Space   string   `xml:"space,attr"`
	Value   string   `xml:",chardata"`
}

// hyperlinkXML represents a hyperlink (<w:hyperlink>). The relationship
// ID resolves to the target URL via word/_rels/document.xml.rels.
type hyperlinkXML struct {
	ID     string   `xml:"id,attr"`
	Anchor string   `xml:"anchor,attr"`
	Runs   []runXML `xml:"r"`
}

// relationshipsXML represents a package relationships part.
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipXML `xml:"Relationship"`
}

// relationshipXML represents a single relationship entry.
type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}
