// Package format identifies which extraction pipeline handles a file.
package format

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format represents a supported extraction path.
type Format int

const (
	// Unknown indicates an unrecognized file.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// Text indicates any text/* file, read as is.
	Text
	// Image indicates any image/* file, recognized with OCR.
	Image
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case DOCX:
		return "DOCX"
	case Text:
		return "Text"
	case Image:
		return "Image"
	default:
		return "Unknown"
	}
}

// Label returns the status line shown while the format is being processed.
func (f Format) Label() string {
	switch f {
	case PDF:
		return "Extracting text from PDF..."
	case DOCX:
		return "Extracting text from DOCX..."
	case Text:
		return "Reading text file..."
	case Image:
		return "Recognizing text in image..."
	default:
		return "Processing..."
	}
}

// UnsupportedTypeError is returned when neither the extension nor the MIME
// type of a file maps to an extraction path.
type UnsupportedTypeError struct {
	Name string
	MIME string
}

func (e *UnsupportedTypeError) Error() string {
	if e.MIME == "" {
		return fmt.Sprintf("unsupported file type: %s", e.Name)
	}
	return fmt.Sprintf("unsupported file type: %s (%s)", e.Name, e.MIME)
}

// Detect determines the format from the filename extension alone.
// Only PDF and DOCX are identified this way.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDF
	case ".docx":
		return DOCX
	default:
		return Unknown
	}
}

// DetectMIME determines the format from a MIME type. Parameters such as
// "; charset=utf-8" are ignored and the comparison is case-insensitive.
func DetectMIME(mimeType string) Format {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.HasPrefix(mt, "text/"):
		return Text
	case strings.HasPrefix(mt, "image/"):
		return Image
	default:
		return Unknown
	}
}

// Route picks the extraction path for a file. The first match wins:
// a .pdf or .docx extension, then a text/ or image/ MIME type.
// Anything else fails with *UnsupportedTypeError.
func Route(name, mimeType string) (Format, error) {
	if f := Detect(name); f != Unknown {
		return f, nil
	}
	if f := DetectMIME(mimeType); f != Unknown {
		return f, nil
	}
	return Unknown, &UnsupportedTypeError{Name: name, MIME: mimeType}
}
