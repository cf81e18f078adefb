package textpick

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/textpick/docx"
	"github.com/tsawler/textpick/format"
	"github.com/tsawler/textpick/layout"
	"github.com/tsawler/textpick/ocr"
	"github.com/tsawler/textpick/pdf"
	"github.com/tsawler/textpick/source"
	"github.com/tsawler/textpick/status"
)

// Result is the outcome of one extraction.
type Result struct {
	// Text is the extracted plain text.
	Text string

	// Format is the pipeline that produced the text.
	Format format.Format

	// Pages is the number of PDF pages extracted; PageCount is the number of
	// pages in the document. Both are zero for other formats.
	Pages     int
	PageCount int

	// Title and Author come from DOCX document properties when present.
	Title  string
	Author string

	// RunID identifies the extraction in logs.
	RunID uuid.UUID

	Duration time.Duration
}

// Extractor provides a fluent interface for extracting text from one file.
// Each configuration method returns a new Extractor instance, so a
// configured Extractor can be reused as a template.
type Extractor struct {
	// Source
	file *source.File

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		file:    e.file,
		options: e.options.clone(),
		err:     e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which PDF pages to extract (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	text, err := textpick.Open("doc.pdf").Pages(1, 3, 5).Text(ctx)
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	for _, p := range pages {
		newExt.options.pages = append(newExt.options.pages, pdf.Range{First: p, Last: p})
	}
	return newExt
}

// PageRange specifies a range of PDF pages to extract (1-indexed, inclusive).
// The range is checked against the page count when the PDF is opened.
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pdf.Range{First: start, Last: end})
	return newExt
}

// Thresholds overrides the PDF line and word break distances.
// Both must be positive.
func (e *Extractor) Thresholds(line, word float64) *Extractor {
	newExt := e.clone()
	if line <= 0 || word <= 0 {
		newExt.err = fmt.Errorf("invalid thresholds: line=%v word=%v", line, word)
		return newExt
	}
	newExt.options.thresholds = layout.Thresholds{Line: line, Word: word}
	return newExt
}

// ValidatePDF runs a structural pdfcpu validation before PDF extraction.
func (e *Extractor) ValidatePDF() *Extractor {
	newExt := e.clone()
	newExt.options.validatePDF = true
	return newExt
}

// Language sets the OCR language list, e.g. "eng" or "eng+fra".
func (e *Extractor) Language(lang string) *Extractor {
	newExt := e.clone()
	newExt.options.language = lang
	return newExt
}

// MaxImageDimension bounds the longest image side passed to OCR.
// A negative value disables downscaling.
func (e *Extractor) MaxImageDimension(n int) *Extractor {
	newExt := e.clone()
	newExt.options.maxDimension = n
	return newExt
}

// WithOCR replaces the OCR engine factory.
func (e *Extractor) WithOCR(factory ocr.Factory) *Extractor {
	newExt := e.clone()
	newExt.options.ocrFactory = factory
	return newExt
}

// Normalize applies Unicode NFC normalization to the extracted text.
func (e *Extractor) Normalize() *Extractor {
	newExt := e.clone()
	newExt.options.normalize = true
	return newExt
}

// WithLogger sets the structured logger. A nil logger means slog.Default().
func (e *Extractor) WithLogger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	if logger == nil {
		logger = slog.Default()
	}
	newExt.options.logger = logger
	return newExt
}

// WithProgress sends progress notifications to s.
func (e *Extractor) WithProgress(s *status.Stream) *Extractor {
	newExt := e.clone()
	newExt.options.progress = s
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Format reports which pipeline the file routes to.
func (e *Extractor) Format() (format.Format, error) {
	if err := e.check(); err != nil {
		return format.Unknown, err
	}
	return format.Route(e.file.Name, e.file.MIME)
}

// Text extracts and returns the file's text.
func (e *Extractor) Text(ctx context.Context) (string, error) {
	res, err := e.Extract(ctx)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Extract routes the file to its pipeline and returns the result.
// The first error ends the extraction; no partial text is returned.
func (e *Extractor) Extract(ctx context.Context) (*Result, error) {
	if err := e.check(); err != nil {
		return nil, err
	}

	res := &Result{RunID: uuid.New()}
	log := e.options.logger.With("run_id", res.RunID.String(), "file", e.file.Name)

	kind, err := format.Route(e.file.Name, e.file.MIME)
	if err != nil {
		log.Warn("unsupported file", "mime", e.file.MIME)
		return nil, err
	}
	res.Format = kind

	log.Info("extracting", "format", kind.String(), "mime", e.file.MIME, "size", e.file.Size)
	start := time.Now()

	switch kind {
	case format.Text:
		err = e.extractText(res)
	case format.PDF:
		err = e.extractPDF(ctx, res)
	case format.DOCX:
		err = e.extractDOCX(res)
	case format.Image:
		err = e.extractImage(ctx, res)
	default:
		err = &format.UnsupportedTypeError{Name: e.file.Name, MIME: e.file.MIME}
	}
	if err != nil {
		log.Error("extraction failed", "format", kind.String(), "error", err)
		return nil, err
	}

	if e.options.normalize {
		res.Text = norm.NFC.String(res.Text)
	}
	res.Duration = time.Since(start)

	log.Info("extracted",
		"format", kind.String(),
		"chars", len(res.Text),
		"pages", res.Pages,
		"duration", res.Duration,
	)
	return res, nil
}

// check reports configuration or open errors.
func (e *Extractor) check() error {
	if e.err != nil {
		return e.err
	}
	if e.file == nil {
		return errors.New("no file specified")
	}
	return nil
}

func (e *Extractor) extractText(res *Result) error {
	text, err := e.file.ReadAsText()
	if err != nil {
		return err
	}
	res.Text = text
	return nil
}

func (e *Extractor) extractPDF(ctx context.Context, res *Result) error {
	data, err := e.file.ReadAsBytes()
	if err != nil {
		return err
	}

	pr, err := pdf.Extract(ctx, data, pdf.Options{
		Pages:      e.options.pages,
		Thresholds: e.options.thresholds,
		Validate:   e.options.validatePDF,
	}, e.options.progress)
	if err != nil {
		return fmt.Errorf("failed to extract PDF: %w", err)
	}

	res.Text = pr.Text
	res.Pages = pr.Pages
	res.PageCount = pr.PageCount
	return nil
}

func (e *Extractor) extractDOCX(res *Result) error {
	data, err := e.file.ReadAsBytes()
	if err != nil {
		return err
	}

	r, err := docx.OpenBytes(data)
	if err != nil {
		return fmt.Errorf("failed to open DOCX: %w", err)
	}

	meta := r.Metadata()
	res.Text = r.Text()
	res.Title = meta.Title
	res.Author = meta.Author
	return nil
}

func (e *Extractor) extractImage(ctx context.Context, res *Result) error {
	data, err := e.file.ReadAsBytes()
	if err != nil {
		return err
	}

	text, err := ocr.Recognize(ctx, e.options.ocrFactory, data, ocr.Options{
		Language:     e.options.language,
		MaxDimension: e.options.maxDimension,
	}, e.options.progress)
	if err != nil {
		return fmt.Errorf("failed to recognize text: %w", err)
	}

	res.Text = text
	return nil
}
