// Package ocr recognizes text in images with Tesseract.
//
// Recognize is the entry point. It creates an Engine for one image, prepares
// the image (decode, bound its size, flatten to grayscale PNG), runs
// recognition, and closes the engine on every path:
//
//	text, err := ocr.Recognize(ctx, ocr.NewEngine, data, ocr.Options{Language: "eng"}, progress)
//
// The Tesseract engine is only compiled in with the "ocr" build tag, which
// needs the Tesseract and Leptonica development libraries:
//
//	go build -tags ocr ./...
//
// Without the tag, NewEngine fails with ErrOCRNotEnabled and images cannot
// be read. Callers may pass their own Factory to Recognize.
package ocr
