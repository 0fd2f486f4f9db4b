// Package docmsg converts between chat messages with formatting entities
// and .docx documents. Messages carry plain text plus spans (bold,
// italic, underline, strikethrough, links) with UTF-16 offsets; documents
// are written with a fixed typographic profile and read back into the
// same message shape.
//
// Basic usage:
//
//	data, err := docmsg.MessageToDocx("Hello world", []model.Span{
//	    {Start: 0, Length: 5, Kind: model.SpanBold},
//	})
//	if err != nil {
//	    // handle error
//	}
//
// And back:
//
//	msg, err := docmsg.DocxToMessage(data)
//
// With a custom profile:
//
//	data, err := docmsg.New().Profile(profile).ToDocx(msg)
//
// The lower-level segment, docx and markup packages are also available
// for finer control over the pipeline stages.
package docmsg

import (
	"github.com/avolkov/docmsg/docname"
	"github.com/avolkov/docmsg/model"
)

// MessageToDocx converts message text and its formatting spans into a
// .docx document using the default typographic profile.
func MessageToDocx(text string, spans []model.Span) ([]byte, error) {
	return New().ToDocx(model.Message{Text: text, Spans: spans})
}

// DocxToMessage parses a .docx document into message text and formatting
// spans.
func DocxToMessage(data []byte) (model.Message, error) {
	return New().FromDocx(data)
}

// DocxToHTML parses a .docx document and renders its content as chat
// markup.
func DocxToHTML(data []byte) (string, error) {
	return New().FromDocxHTML(data)
}

// HTMLToDocx parses chat markup and converts it into a .docx document
// using the default typographic profile.
func HTMLToDocx(fragment string) ([]byte, error) {
	return New().FromHTMLToDocx(fragment)
}

// FilenameFor derives a document file name from message text, falling
// back to the default name when nothing usable can be derived.
func FilenameFor(text string) string {
	name := docname.Derive(text, docname.DefaultMaxLen)
	if name == "" {
		return docname.DefaultName
	}
	return docname.WithExtension(name)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	data := docmsg.Must(docmsg.MessageToDocx(text, spans))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
