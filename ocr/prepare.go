package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxDimension is the longest image side passed to the engine.
// Larger scans are downscaled; recognition time grows with pixel count.
const DefaultMaxDimension = 4000

// Prepare decodes an image in any registered format (PNG, JPEG, GIF, BMP,
// TIFF, WebP), scales it down so that neither side exceeds maxDim, flattens
// it onto white, and re-encodes it as a grayscale PNG.
// A maxDim of zero or less disables scaling.
func Prepare(data []byte, maxDim int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, errors.New("decoding image: empty image")
	}

	if maxDim > 0 && (w > maxDim || h > maxDim) {
		nw, nh := fit(w, h, maxDim)
		scaled := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, draw.Over, nil)
		img = scaled
		b = scaled.Bounds()
	}

	// Transparent pixels would otherwise turn black.
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Over)

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}

// fit returns w and h scaled so that the longer side equals maxDim.
func fit(w, h, maxDim int) (int, int) {
	long := w
	if h > long {
		long = h
	}
	scale := float64(maxDim) / float64(long)

	nw := int(float64(w)*scale + 0.5)
	nh := int(float64(h)*scale + 0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}
