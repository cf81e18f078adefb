package textpick

import (
	"log/slog"

	"github.com/tsawler/textpick/layout"
	"github.com/tsawler/textpick/ocr"
	"github.com/tsawler/textpick/pdf"
	"github.com/tsawler/textpick/status"
)

// ExtractOptions holds configuration for text extraction.
type ExtractOptions struct {
	// PDF page selection (1-indexed ranges)
	pages []pdf.Range

	// PDF line reconstruction
	thresholds  layout.Thresholds
	validatePDF bool

	// OCR
	language     string
	maxDimension int
	ocrFactory   ocr.Factory

	// Post-processing
	normalize bool // Unicode NFC normalization of the result

	// Plumbing
	logger   *slog.Logger
	progress *status.Stream
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:        nil, // nil means all pages
		thresholds:   layout.DefaultThresholds(),
		language:     ocr.DefaultLanguage,
		maxDimension: ocr.DefaultMaxDimension,
		ocrFactory:   ocr.NewEngine,
		logger:       slog.Default(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]pdf.Range, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}
