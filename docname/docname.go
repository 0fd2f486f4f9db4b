// Package docname derives document file names from message text. The
// first sentence or line of the message becomes the name, reduced to
// characters that are safe across file systems.
package docname

import (
	"strings"
	"unicode"
)

const (
	// DefaultName is used when no usable name can be derived.
	DefaultName = "message.docx"

	// DefaultMaxLen bounds derived names, in characters, before the
	// extension is added.
	DefaultMaxLen = 60

	// Extension is the file extension for generated documents.
	Extension = ".docx"
)

// Derive builds a file name stem from message text. The text is cut at
// the first line break or period, sanitized, and truncated to maxLen
// characters. It returns "" when nothing usable remains; callers fall
// back to a configured default. A non-positive maxLen disables
// truncation.
func Derive(text string, maxLen int) string {
	if text == "" {
		return ""
	}
	cutoff := len(text)
	if idx := strings.IndexByte(text, '\n'); idx != -1 {
		cutoff = idx
	}
	if idx := strings.IndexByte(text, '.'); idx != -1 && idx < cutoff {
		cutoff = idx
	}
	snippet := strings.TrimSpace(text[:cutoff])
	if snippet == "" {
		return ""
	}
	cleaned := Sanitize(snippet)
	if cleaned == "" {
		return ""
	}
	if maxLen > 0 {
		runes := []rune(cleaned)
		if len(runes) > maxLen {
			cleaned = string(runes[:maxLen])
		}
		cleaned = strings.TrimRight(cleaned, " ._-")
	}
	return cleaned
}

// Sanitize keeps letters, digits, spaces, hyphens and underscores,
// collapses whitespace runs to single spaces and trims leading and
// trailing separators.
func Sanitize(value string) string {
	var b strings.Builder
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Join(strings.Fields(b.String()), " ")
	return strings.Trim(cleaned, " ._-")
}

// WithExtension appends the document extension unless the name already
// carries it, case-insensitively.
func WithExtension(name string) string {
	if strings.HasSuffix(strings.ToLower(name), Extension) {
		return name
	}
	return name + Extension
}
