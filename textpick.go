// Package textpick extracts plain text from a user-selected file: PDF, DOCX,
// plain text, or an image (via OCR).
//
// Basic usage:
//
//	text, err := textpick.Open("report.pdf").Text(ctx)
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	res, err := textpick.Open("scan.png").
//	    Language("eng+deu").
//	    WithLogger(logger).
//	    Extract(ctx)
//
// The file is routed by extension (.pdf, .docx) and then by MIME type
// (text/*, image/*). Anything else fails with *format.UnsupportedTypeError.
//
// Interactive front ends use a Session, which runs one extraction at a time
// and keeps a single status slot up to date.
package textpick

import (
	"github.com/tsawler/textpick/source"
)

// Open returns an Extractor for the file at path. Errors from opening the
// file are reported by the terminal operation.
//
// Example:
//
//	text, err := textpick.Open("document.docx").Text(ctx)
func Open(path string) *Extractor {
	f, err := source.Open(path)
	return &Extractor{
		file:    f,
		options: defaultOptions(),
		err:     err,
	}
}

// FromFile returns an Extractor for an already-selected file.
func FromFile(f *source.File) *Extractor {
	return &Extractor{
		file:    f,
		options: defaultOptions(),
	}
}

// FromBytes returns an Extractor for in-memory content. An empty mimeType
// is guessed from the name and the content.
func FromBytes(name, mimeType string, data []byte) *Extractor {
	return FromFile(source.FromBytes(name, mimeType, data))
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	text := textpick.Must(textpick.Open("notes.txt").Text(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
