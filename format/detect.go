// Package format provides input format detection for inbound documents.
// The conversion pipeline only accepts DOCX packages; detection lets the
// transport layer reject other uploads with a precise message instead of
// a parse failure.
package format

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a detected input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Microsoft Word (.docx) package.
	DOCX
	// ZIP indicates a ZIP archive that is not a DOCX package.
	ZIP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case ZIP:
		return "ZIP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case ZIP:
		return ".zip"
	default:
		return ""
	}
}

// Detect determines the format from a filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return DOCX
	case ".zip":
		return ZIP
	default:
		return Unknown
	}
}

// DetectBytes inspects the content of a byte buffer. A buffer is a DOCX
// package when it is a ZIP archive containing word/document.xml.
func DetectBytes(data []byte) Format {
	// ZIP magic: PK\x03\x04
	if len(data) < 4 || data[0] != 0x50 || data[1] != 0x4B || data[2] != 0x03 || data[3] != 0x04 {
		return Unknown
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Unknown
	}

	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			return DOCX
		}
	}
	return ZIP
}
