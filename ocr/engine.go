package ocr

import (
	"context"
	"errors"
	"fmt"

	"github.com/tsawler/textpick/status"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

var errClosed = errors.New("OCR engine is closed")

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

// Engine is an OCR engine instance. Engines hold native resources and must
// be closed after use.
type Engine interface {
	SetLanguage(lang string) error
	RecognizeImage(imageData []byte) (string, error)
	Close() error
}

// Factory creates an Engine. NewEngine is the default factory.
type Factory func() (Engine, error)

// Options configure Recognize.
type Options struct {
	// Language is a Tesseract language list such as "eng" or "eng+fra".
	// Empty means DefaultLanguage.
	Language string

	// MaxDimension bounds the longest image side before recognition.
	// Zero means DefaultMaxDimension; negative disables scaling.
	MaxDimension int
}

// Recognize runs OCR over one image. A fresh engine is created from factory
// (NewEngine when nil) and is always closed before Recognize returns, whether
// recognition succeeded or not.
//
// Progress goes through four stages: 0% engine start, 20% image preparation,
// 40% recognition, 100% done. The context is checked between stages;
// recognition itself cannot be interrupted.
func Recognize(ctx context.Context, factory Factory, image []byte, opts Options, progress *status.Stream) (text string, err error) {
	if factory == nil {
		factory = NewEngine
	}

	lang := opts.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	maxDim := opts.MaxDimension
	if maxDim == 0 {
		maxDim = DefaultMaxDimension
	}

	progress.Report(0, "Initializing OCR engine...")
	engine, err := factory()
	if err != nil {
		return "", fmt.Errorf("starting OCR engine: %w", err)
	}
	defer func() {
		if cerr := engine.Close(); cerr != nil && err == nil {
			text, err = "", fmt.Errorf("releasing OCR engine: %w", cerr)
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	progress.Report(20, "Preparing image...")
	prepared, err := Prepare(image, maxDim)
	if err != nil {
		return "", err
	}
	if err := engine.SetLanguage(lang); err != nil {
		return "", fmt.Errorf("setting OCR language %q: %w", lang, err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	progress.Report(40, "Recognizing text...")
	text, err = engine.RecognizeImage(prepared)
	if err != nil {
		return "", err
	}

	progress.Report(100, "Text recognized")
	return text, nil
}
