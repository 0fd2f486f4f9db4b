package model

// StyleProfile is the typographic configuration applied uniformly to
// every generated paragraph. It is an immutable value passed to the
// document writer, never process-wide state.
type StyleProfile struct {
	FontName          string
	FontSizePt        float64
	Justified         bool
	FirstLineIndentCm float64
	LineSpacingPt     float64 // exact line spacing
	SpaceBeforePt     float64
	SpaceAfterPt      float64
}

// DefaultProfile returns the fixed profile used for generated documents:
// Times New Roman 14pt, justified, 1.25 cm first-line indent, exact 18pt
// line spacing, no spacing before or after paragraphs.
func DefaultProfile() StyleProfile {
	return StyleProfile{
		FontName:          "Times New Roman",
		FontSizePt:        14,
		Justified:         true,
		FirstLineIndentCm: 1.25,
		LineSpacingPt:     18,
		SpaceBeforePt:     0,
		SpaceAfterPt:      0,
	}
}
