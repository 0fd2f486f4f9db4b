// Package model defines the data model shared by the conversion pipelines:
// formatting spans as chat platforms express them, styled runs and
// paragraphs as word processors store them, and the fixed typographic
// profile applied to generated documents.
package model

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrInvalidSpan indicates a formatting span with a non-positive length or
// offsets outside the bounds of the message text.
var ErrInvalidSpan = errors.New("invalid formatting span")

// SpanKind identifies the formatting a span applies.
type SpanKind string

// Supported span kinds.
const (
	SpanBold      SpanKind = "bold"
	SpanItalic    SpanKind = "italic"
	SpanUnderline SpanKind = "underline"
	SpanStrike    SpanKind = "strike"
	SpanLink      SpanKind = "link"
)

// Span is a formatting annotation over a contiguous range of the message
// text. Offsets and lengths are expressed in UTF-16 code units, the
// indexing scheme chat platforms use for message entities. Spans may
// overlap or nest freely.
type Span struct {
	Start  int      `json:"start"`
	Length int      `json:"length"`
	Kind   SpanKind `json:"kind"`
	URL    string   `json:"url,omitempty"` // set iff Kind is SpanLink
}

// End returns the exclusive end offset of the span in UTF-16 code units.
func (s Span) End() int {
	return s.Start + s.Length
}

// Validate checks the span's fields in isolation. Bounds against a
// concrete message text are checked by ValidateSpans.
func (s Span) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Start, validation.Min(0)),
		validation.Field(&s.Length, validation.Required, validation.Min(1)),
		validation.Field(&s.Kind, validation.Required, validation.In(
			SpanBold, SpanItalic, SpanUnderline, SpanStrike, SpanLink,
		)),
		validation.Field(&s.URL,
			validation.Required.When(s.Kind == SpanLink),
			validation.Empty.When(s.Kind != SpanLink),
		),
	)
}

// ValidateSpans validates every span against the given message text.
// A failure aborts the conversion; no partial output is produced.
func ValidateSpans(text string, spans []Span) error {
	limit := UTF16Length(text)
	for i, s := range spans {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%w: span %d: %v", ErrInvalidSpan, i, err)
		}
		if s.End() > limit {
			return fmt.Errorf("%w: span %d: range [%d,%d) exceeds text length %d",
				ErrInvalidSpan, i, s.Start, s.End(), limit)
		}
	}
	return nil
}

// Message is a chat message together with its formatting spans. This is
// the shape exchanged with the transport layer.
type Message struct {
	Text  string `json:"text"`
	Spans []Span `json:"spans,omitempty"`
}

// Validate checks the message's spans against its text.
func (m Message) Validate() error {
	return ValidateSpans(m.Text, m.Spans)
}
