package ocr

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/tsawler/textpick/status"
)

// createTestPNG creates a white PNG with a black rectangle.
func createTestPNG(width, height int) []byte {
	img := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	for x := width / 10; x < width/2; x++ {
		for y := height / 5; y < height/2; y++ {
			img.Set(x, y, color.Black)
		}
	}

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

type fakeEngine struct {
	text     string
	err      error
	langErr  error
	closeErr error

	lang   string
	image  []byte
	closed int
}

func (f *fakeEngine) SetLanguage(lang string) error {
	f.lang = lang
	return f.langErr
}

func (f *fakeEngine) RecognizeImage(data []byte) (string, error) {
	f.image = data
	return f.text, f.err
}

func (f *fakeEngine) Close() error {
	f.closed++
	return f.closeErr
}

func factoryFor(e *fakeEngine) Factory {
	return func() (Engine, error) { return e, nil }
}

func TestRecognize(t *testing.T) {
	engine := &fakeEngine{text: "recognized"}
	s := status.NewStream()

	text, err := Recognize(context.Background(), factoryFor(engine), createTestPNG(60, 40), Options{}, s)
	if err != nil {
		t.Fatalf("Recognize() error: %v", err)
	}
	s.Close()

	if text != "recognized" {
		t.Errorf("Recognize() = %q, want %q", text, "recognized")
	}
	if engine.closed != 1 {
		t.Errorf("engine closed %d times, want 1", engine.closed)
	}
	if engine.lang != DefaultLanguage {
		t.Errorf("language = %q, want %q", engine.lang, DefaultLanguage)
	}
	if _, err := png.Decode(bytes.NewReader(engine.image)); err != nil {
		t.Errorf("engine did not receive a PNG: %v", err)
	}

	last, ok := <-s.C()
	if !ok || last.Percent != 100 {
		t.Errorf("last progress = %+v, want 100%%", last)
	}
}

func TestRecognize_Language(t *testing.T) {
	engine := &fakeEngine{}
	_, err := Recognize(context.Background(), factoryFor(engine), createTestPNG(10, 10), Options{Language: "eng+fra"}, nil)
	if err != nil {
		t.Fatalf("Recognize() error: %v", err)
	}
	if engine.lang != "eng+fra" {
		t.Errorf("language = %q, want eng+fra", engine.lang)
	}
}

func TestRecognize_AlwaysReleasesEngine(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name   string
		engine *fakeEngine
		image  []byte
		ctx    func() context.Context
	}{
		{
			name:   "recognition fails",
			engine: &fakeEngine{err: boom},
			image:  createTestPNG(10, 10),
		},
		{
			name:   "language fails",
			engine: &fakeEngine{langErr: boom},
			image:  createTestPNG(10, 10),
		},
		{
			name:   "image cannot be decoded",
			engine: &fakeEngine{},
			image:  []byte("not an image"),
		},
		{
			name:   "context canceled",
			engine: &fakeEngine{text: "unused"},
			image:  createTestPNG(10, 10),
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.ctx != nil {
				ctx = tt.ctx()
			}

			text, err := Recognize(ctx, factoryFor(tt.engine), tt.image, Options{}, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if text != "" {
				t.Errorf("Recognize() returned partial text %q", text)
			}
			if tt.engine.closed != 1 {
				t.Errorf("engine closed %d times, want 1", tt.engine.closed)
			}
		})
	}
}

func TestRecognize_CloseError(t *testing.T) {
	engine := &fakeEngine{text: "fine", closeErr: errors.New("leak")}

	text, err := Recognize(context.Background(), factoryFor(engine), createTestPNG(10, 10), Options{}, nil)
	if err == nil {
		t.Fatal("expected close error to be reported")
	}
	if text != "" {
		t.Errorf("Recognize() = %q, want empty text on failure", text)
	}
}

func TestRecognize_FactoryError(t *testing.T) {
	factory := func() (Engine, error) { return nil, ErrOCRNotEnabled }

	_, err := Recognize(context.Background(), factory, createTestPNG(10, 10), Options{}, nil)
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Recognize() error = %v, want ErrOCRNotEnabled", err)
	}
}
