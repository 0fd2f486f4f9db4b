// Package docx reads and writes DOCX (Office Open XML) documents at the
// paragraph/run level used for chat message conversion.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/avolkov/docmsg/model"
)

// ErrParse indicates the input is not a well-formed DOCX package.
var ErrParse = errors.New("malformed docx document")

// Reader provides access to the paragraphs and styled runs of a DOCX
// document held in memory.
type Reader struct {
	zr         *zip.Reader
	document   *documentXML
	rels       map[string]string // relationship ID -> target URL
	paragraphs []model.Paragraph
}

// NewReader parses a complete DOCX byte buffer. A malformed container or
// document part yields an error wrapping ErrParse.
func NewReader(data []byte) (*Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening ZIP archive: %v", ErrParse, err)
	}

	r := &Reader{
		zr:   zr,
		rels: make(map[string]string),
	}

	if err := r.validate(); err != nil {
		return nil, err
	}

	// Relationships first: hyperlink targets live there.
	if err := r.parseRelationships(); err != nil {
		return nil, fmt.Errorf("%w: parsing relationships: %v", ErrParse, err)
	}

	if err := r.parseDocument(); err != nil {
		return nil, fmt.Errorf("%w: parsing document: %v", ErrParse, err)
	}

	return r, nil
}

// validate checks that required DOCX package parts exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zr.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("%w: missing required file: %s", ErrParse, name)
		}
	}

	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parseRelationships parses the document relationships part, keeping the
// targets of external hyperlink relationships.
func (r *Reader) parseRelationships() error {
	data, err := r.getFileContent("word/_rels/document.xml.rels")
	if err != nil {
		// The relationships part is optional; documents without
		// hyperlinks may omit it.
		return nil
	}

	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return err
	}
	for _, rel := range rels.Relationships {
		if rel.Type == relTypeHyperlink {
			r.rels[rel.ID] = rel.Target
		}
	}
	return nil
}

// parseDocument parses word/document.xml and converts its paragraphs.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return err
	}

	r.document = &documentXML{}
	if err := xml.Unmarshal(data, r.document); err != nil {
		return err
	}

	r.processParagraphs()
	return nil
}

// processParagraphs converts every parsed paragraph into the run model.
func (r *Reader) processParagraphs() {
	if r.document == nil || r.document.Body == nil {
		return
	}

	r.paragraphs = make([]model.Paragraph, 0, len(r.document.Body.Paragraphs))
	for _, p := range r.document.Body.Paragraphs {
		r.paragraphs = append(r.paragraphs, r.processParagraph(p))
	}
}

// processParagraph converts a single paragraph, preserving run order and
// text exactly. Runs inside a hyperlink carry the resolved target URL.
func (r *Reader) processParagraph(p paragraphXML) model.Paragraph {
	var para model.Paragraph
	for _, item := range p.Items {
		switch {
		case item.Run != nil:
			if run, ok := r.convertRun(*item.Run, ""); ok {
				para.Runs = append(para.Runs, run)
			}
		case item.Hyperlink != nil:
			url := r.rels[item.Hyperlink.ID]
			for _, hr := range item.Hyperlink.Runs {
				if run, ok := r.convertRun(hr, url); ok {
					para.Runs = append(para.Runs, run)
				}
			}
		}
	}
	return para
}

// convertRun maps a parsed run to a styled run. Runs with no text are
// dropped.
func (r *Reader) convertRun(run runXML, url string) (model.Run, bool) {
	if run.Text == "" {
		return model.Run{}, false
	}
	return model.Run{
		Text: run.Text,
		Style: model.Style{
			Bold:      run.Props.Bold.on(),
			Italic:    run.Props.Italic.on(),
			Underline: run.Props.Underline.on(),
			Strike:    run.Props.Strike.on() || run.Props.DStrike.on(),
			URL:       url,
		},
	}, true
}

// Paragraphs returns the document's paragraphs in order. A document with
// no paragraphs yields an empty slice.
func (r *Reader) Paragraphs() []model.Paragraph {
	return r.paragraphs
}

// Text returns the document's plain text, paragraphs joined with line
// breaks.
func (r *Reader) Text() string {
	var b strings.Builder
	for i, p := range r.paragraphs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p.Text())
	}
	return b.String()
}
