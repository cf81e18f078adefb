// Package pdf turns PDF bytes into reading-order text.
//
// Parsing and content-stream decoding are done by github.com/ledongthuc/pdf.
// This package converts each page's positioned text runs into
// layout.Fragment values and hands them to layout.Reconstruct. An optional
// structural preflight with pdfcpu reports broken files before extraction.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/tsawler/textpick/layout"
	"github.com/tsawler/textpick/status"
)

// ErrEmpty is returned for zero-length input.
var ErrEmpty = errors.New("empty PDF")

// Document is an opened PDF.
type Document struct {
	r *lpdf.Reader
}

// Open parses the PDF cross-reference table and trailer from data.
// Malformed input that makes the parser panic is reported as an error.
func Open(data []byte) (doc *Document, err error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = fmt.Errorf("malformed PDF: %v", rec)
		}
	}()

	r, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	return &Document{r: r}, nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.r.NumPage()
}

// Fragments returns the positioned text runs of page n (1-indexed), in
// content-stream order. A page without content yields no fragments.
func (d *Document) Fragments(n int) (frags []layout.Fragment, err error) {
	if count := d.PageCount(); n < 1 || n > count {
		return nil, fmt.Errorf("page %d out of range (1-%d)", n, count)
	}

	defer func() {
		if rec := recover(); rec != nil {
			frags = nil
			err = fmt.Errorf("malformed page content: %v", rec)
		}
	}()

	page := d.r.Page(n)
	if page.V.IsNull() {
		return nil, nil
	}
	return FromText(page.Content().Text), nil
}

// FromText converts the parser's text runs to layout fragments.
func FromText(texts []lpdf.Text) []layout.Fragment {
	frags := make([]layout.Fragment, 0, len(texts))
	for _, t := range texts {
		frags = append(frags, layout.Fragment{
			Text:  t.S,
			X:     t.X,
			Y:     t.Y,
			Width: t.W,
		})
	}
	return frags
}

// Range is an inclusive 1-indexed page range. A single page has First equal
// to Last.
type Range struct {
	First, Last int
}

// ResolvePages converts a page selection into a sorted list without
// duplicates. An empty selection means every page. Ranges are checked
// against pageCount before they are expanded.
func ResolvePages(requested []Range, pageCount int) ([]int, error) {
	if len(requested) == 0 {
		pages := make([]int, pageCount)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages, nil
	}

	seen := make(map[int]bool)
	var pages []int
	for _, r := range requested {
		if r.First > r.Last {
			return nil, fmt.Errorf("invalid page range %d-%d", r.First, r.Last)
		}
		if r.First < 1 || r.Last > pageCount {
			if r.First == r.Last {
				return nil, fmt.Errorf("page %d out of range (1-%d)", r.First, pageCount)
			}
			return nil, fmt.Errorf("pages %d-%d out of range (1-%d)", r.First, r.Last, pageCount)
		}
		for p := r.First; p <= r.Last; p++ {
			if !seen[p] {
				seen[p] = true
				pages = append(pages, p)
			}
		}
	}

	sort.Ints(pages)
	return pages, nil
}

var disableConfigDir sync.Once

// configuration returns pdfcpu's built-in defaults. pdfcpu's config
// directory is disabled first so nothing is written under the user's home.
func configuration() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	return model.NewDefaultConfiguration()
}

// Validate runs a relaxed pdfcpu structural validation over data and
// returns the page count pdfcpu sees.
func Validate(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, ErrEmpty
	}

	conf := configuration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.Validate(bytes.NewReader(data), conf); err != nil {
		return 0, fmt.Errorf("validating PDF: %w", err)
	}

	n, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("counting PDF pages: %w", err)
	}
	return n, nil
}

// Options configure Extract.
type Options struct {
	// Pages selects 1-indexed page ranges. Empty means all pages.
	Pages []Range

	// Thresholds are passed to layout.Reconstruct. The zero value means
	// layout.DefaultThresholds.
	Thresholds layout.Thresholds

	// Validate runs the pdfcpu preflight before extraction.
	Validate bool
}

// Result is the outcome of Extract.
type Result struct {
	Text string

	// Pages is the number of pages extracted.
	Pages int

	// PageCount is the number of pages in the document.
	PageCount int
}

// Extract reconstructs the text of the selected pages and concatenates them
// in page order. Each page ends with layout.PageBreak. One progress
// notification is sent per page. The context is checked between pages.
func Extract(ctx context.Context, data []byte, opts Options, progress *status.Stream) (*Result, error) {
	if opts.Validate {
		if _, err := Validate(data); err != nil {
			return nil, err
		}
	}

	if opts.Thresholds == (layout.Thresholds{}) {
		opts.Thresholds = layout.DefaultThresholds()
	}

	doc, err := Open(data)
	if err != nil {
		return nil, err
	}

	total := doc.PageCount()
	pages, err := ResolvePages(opts.Pages, total)
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	for i, n := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		progress.Report(i*100/len(pages), fmt.Sprintf("Reading page %d of %d...", i+1, len(pages)))

		frags, err := doc.Fragments(n)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", n, err)
		}
		text.WriteString(layout.Reconstruct(frags, opts.Thresholds))
	}
	progress.Report(100, "PDF text extracted")

	return &Result{
		Text:      text.String(),
		Pages:     len(pages),
		PageCount: total,
	}, nil
}
