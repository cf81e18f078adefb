package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/tsawler/textpick"
	"github.com/tsawler/textpick/ocr"
	"github.com/tsawler/textpick/pdf"
	"github.com/tsawler/textpick/status"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type config struct {
	output    string
	lang      string
	maxDim    int
	pages     string
	validate  bool
	normalize bool
	logFile   string
	debug     bool
	version   bool
	file      string
}

func parseFlags(name string, args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.output, "o", "", "Write extracted text to this file instead of stdout")
	fs.StringVar(&cfg.lang, "lang", "eng", "OCR language(s), e.g. eng or eng+deu")
	fs.IntVar(&cfg.maxDim, "max-dim", ocr.DefaultMaxDimension, "Downscale images so neither side exceeds this many pixels before OCR (negative: never)")
	fs.StringVar(&cfg.pages, "pages", "", "PDF pages to extract, e.g. 1,3-5 (default: all)")
	fs.BoolVar(&cfg.validate, "validate", false, "Validate PDF structure before extracting")
	fs.BoolVar(&cfg.normalize, "normalize", false, "Apply Unicode NFC normalization to the output")
	fs.StringVar(&cfg.logFile, "log", "", "Write logs to this file")
	fs.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&cfg.version, "v", false, "Show version information")
	fs.BoolVar(&cfg.version, "version", false, "Show version information")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "textpick - Extract text from PDF, DOCX, text and image files\n\n")
		fmt.Fprintf(stderr, "Usage:\n")
		fmt.Fprintf(stderr, "  %s [options] [file]\n\n", name)
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  %s                        Pick a file interactively\n", name)
		fmt.Fprintf(stderr, "  %s report.pdf             Print the text of report.pdf\n", name)
		fmt.Fprintf(stderr, "  %s -pages 2-4 report.pdf  Print pages 2 to 4\n", name)
		fmt.Fprintf(stderr, "  %s -o scan.txt scan.png   Recognize an image into scan.txt\n", name)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("expected at most one file, got %d", fs.NArg())
	}
	cfg.file = fs.Arg(0)
	return cfg, nil
}

// parsePages parses a page list such as "1,3-5,9". Ranges are kept as
// pairs; they are checked against the page count when the PDF is opened.
func parsePages(s string) ([]pdf.Range, error) {
	var ranges []pdf.Range
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid page %q", part)
		}
		end := start
		if isRange {
			end, err = strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
		}
		if start < 1 || end < start {
			return nil, fmt.Errorf("invalid page range %q", part)
		}
		ranges = append(ranges, pdf.Range{First: start, Last: end})
	}
	return ranges, nil
}

// newLogger returns a text logger writing to w. A nil w discards logs.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openLog opens the -log file, or returns fallback when none is set.
func openLog(cfg *config, fallback io.Writer) (io.Writer, func(), error) {
	if cfg.logFile == "" {
		return fallback, func() {}, nil
	}
	f, err := os.OpenFile(cfg.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// newTemplate builds the Extractor options shared by every extraction.
func newTemplate(cfg *config, logger *slog.Logger) (*textpick.Extractor, error) {
	ext := textpick.FromFile(nil).
		WithLogger(logger).
		Language(cfg.lang)

	if cfg.maxDim != 0 {
		ext = ext.MaxImageDimension(cfg.maxDim)
	}
	if cfg.pages != "" {
		ranges, err := parsePages(cfg.pages)
		if err != nil {
			return nil, err
		}
		for _, r := range ranges {
			ext = ext.PageRange(r.First, r.Last)
		}
	}
	if cfg.validate {
		ext = ext.ValidatePDF()
	}
	if cfg.normalize {
		ext = ext.Normalize()
	}
	return ext, nil
}

// runHeadless extracts cfg.file, writes the text to stdout (or cfg.output)
// and status lines to stderr.
func runHeadless(ctx context.Context, cfg *config, session *textpick.Session, stdout, stderr io.Writer) error {
	done := make(chan struct{})
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		changes := session.Reporter().Changes()
		for {
			select {
			case st := <-changes:
				if st.Phase == status.Processing {
					fmt.Fprintln(stderr, status.Render(st))
				}
			case <-done:
				return
			}
		}
	}()

	res, err := session.ExtractPath(ctx, cfg.file)
	close(done)
	<-printed

	fmt.Fprintln(stderr, status.Render(session.Reporter().State()))
	if err != nil {
		return err
	}

	if cfg.output != "" {
		if err := os.WriteFile(cfg.output, []byte(res.Text), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err = io.WriteString(stdout, res.Text)
	return err
}
