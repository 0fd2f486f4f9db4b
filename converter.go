package docmsg

import (
	"io"

	"github.com/avolkov/docmsg/docx"
	"github.com/avolkov/docmsg/markup"
	"github.com/avolkov/docmsg/model"
	"github.com/avolkov/docmsg/segment"
)

// Converter runs the conversion pipeline in either direction. Configure
// it fluently, then call a terminal method. The zero value is not usable;
// create converters with New.
//
// Example:
//
//	data, err := docmsg.New().Profile(profile).ToDocx(msg)
type Converter struct {
	profile model.StyleProfile
}

// New returns a Converter with the default typographic profile.
func New() *Converter {
	return &Converter{profile: model.DefaultProfile()}
}

// Profile sets the typographic profile applied when writing documents.
// It returns the converter for chaining.
func (c *Converter) Profile(p model.StyleProfile) *Converter {
	c.profile = p
	return c
}

// ToDocx converts a message into a .docx document.
func (c *Converter) ToDocx(msg model.Message) ([]byte, error) {
	paras, err := segment.Paragraphs(msg.Text, msg.Spans)
	if err != nil {
		return nil, err
	}
	return docx.NewWriter(c.profile).Bytes(paras)
}

// WriteDocx converts a message and writes the .docx document to out.
func (c *Converter) WriteDocx(out io.Writer, msg model.Message) error {
	paras, err := segment.Paragraphs(msg.Text, msg.Spans)
	if err != nil {
		return err
	}
	return docx.NewWriter(c.profile).Write(out, paras)
}

// FromDocx parses a .docx document into a message.
func (c *Converter) FromDocx(data []byte) (model.Message, error) {
	r, err := docx.NewReader(data)
	if err != nil {
		return model.Message{}, err
	}
	text, spans := segment.Flatten(r.Paragraphs())
	return model.Message{Text: text, Spans: spans}, nil
}

// FromDocxHTML parses a .docx document and renders its content as chat
// markup.
func (c *Converter) FromDocxHTML(data []byte) (string, error) {
	r, err := docx.NewReader(data)
	if err != nil {
		return "", err
	}
	return markup.Render(r.Paragraphs()), nil
}

// FromHTMLToDocx parses chat markup and converts the result into a .docx
// document.
func (c *Converter) FromHTMLToDocx(fragment string) ([]byte, error) {
	text, spans, err := markup.Parse(fragment)
	if err != nil {
		return nil, err
	}
	return c.ToDocx(model.Message{Text: text, Spans: spans})
}
