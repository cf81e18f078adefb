package textpick

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"github.com/tsawler/textpick/ocr"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestDOCX builds a minimal DOCX whose body is the given XML.
func createTestDOCX(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`,
		"docProps/core.xml": `<?xml version="1.0" encoding="UTF-8"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">
<dc:title>Quarterly Notes</dc:title><dc:creator>J. Doe</dc:creator>
</cp:coreProperties>`,
	}
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// createTestPNG creates a small white PNG.
func createTestPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// stubEngine is an ocr.Engine that returns fixed text. When release is
// non-nil, RecognizeImage signals started and waits for release.
type stubEngine struct {
	text    string
	err     error
	started chan struct{}
	release chan struct{}
	closed  *int
}

func (s *stubEngine) SetLanguage(string) error { return nil }

func (s *stubEngine) RecognizeImage([]byte) (string, error) {
	if s.release != nil {
		close(s.started)
		<-s.release
	}
	return s.text, s.err
}

func (s *stubEngine) Close() error {
	if s.closed != nil {
		*s.closed++
	}
	return nil
}

// recordingEngine keeps the image handed to RecognizeImage.
type recordingEngine struct {
	*stubEngine
	image *[]byte
}

func (r recordingEngine) RecognizeImage(data []byte) (string, error) {
	*r.image = data
	return r.stubEngine.RecognizeImage(data)
}

func stubFactory(e *stubEngine) ocr.Factory {
	return func() (ocr.Engine, error) { return e, nil }
}
