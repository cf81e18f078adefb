package textpick

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tsawler/textpick/internal/pdftest"
	"github.com/tsawler/textpick/source"
	"github.com/tsawler/textpick/status"
)

func TestSession_Success(t *testing.T) {
	s := NewSession(FromFile(nil).WithLogger(quietLogger()))

	f := source.FromBytes("notes.txt", "text/plain", []byte("hello"))
	res, err := s.Extract(context.Background(), f)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if res.Text != "hello" {
		t.Errorf("Text = %q", res.Text)
	}

	st := s.Reporter().State()
	if st.Phase != status.Succeeded || st.Text != "hello" || st.Percent != 100 {
		t.Errorf("state = %+v, want Succeeded with text", st)
	}
	if s.Busy() {
		t.Error("session still busy after extraction")
	}
}

func TestSession_FailureMessageVerbatim(t *testing.T) {
	s := NewSession(FromFile(nil).WithLogger(quietLogger()))

	f := source.FromBytes("archive.xyz", "application/octet-stream", []byte{0})
	_, err := s.Extract(context.Background(), f)
	if err == nil {
		t.Fatal("expected error")
	}

	st := s.Reporter().State()
	if st.Phase != status.Failed {
		t.Fatalf("phase = %v, want Failed", st.Phase)
	}
	if st.Message != err.Error() {
		t.Errorf("Message = %q, want %q", st.Message, err.Error())
	}
	if st.Text != "" {
		t.Errorf("Text = %q, want no partial text", st.Text)
	}
}

func TestSession_RecoversAfterFailure(t *testing.T) {
	s := NewSession(FromFile(nil).WithLogger(quietLogger()))

	if _, err := s.Extract(context.Background(), source.FromBytes("bad.pdf", "", []byte("nope"))); err == nil {
		t.Fatal("expected error for malformed PDF")
	}

	data := pdftest.Build(pdftest.Text(72, 720, "Fine"))
	res, err := s.Extract(context.Background(), source.FromBytes("good.pdf", "", data))
	if err != nil {
		t.Fatalf("second Extract() error: %v", err)
	}
	if res.Text != "Fine\n\n" {
		t.Errorf("Text = %q", res.Text)
	}
	if st := s.Reporter().State(); st.Phase != status.Succeeded {
		t.Errorf("phase = %v, want Succeeded", st.Phase)
	}
}

func TestSession_BusyRejectsSecondExtraction(t *testing.T) {
	engine := &stubEngine{
		text:    "slow text",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewSession(FromFile(nil).WithLogger(quietLogger()).WithOCR(stubFactory(engine)))

	type outcome struct {
		res *Result
		err error
	}
	scan := source.FromBytes("scan.png", "image/png", createTestPNG(t))
	done := make(chan outcome, 1)
	go func() {
		res, err := s.Extract(context.Background(), scan)
		done <- outcome{res, err}
	}()

	select {
	case <-engine.started:
	case <-time.After(5 * time.Second):
		t.Fatal("recognition did not start")
	}

	if !s.Busy() {
		t.Error("Busy() = false during extraction")
	}
	before := s.Reporter().State()
	if before.Phase != status.Processing {
		t.Errorf("phase = %v, want Processing", before.Phase)
	}

	_, err := s.Extract(context.Background(), source.FromBytes("other.txt", "text/plain", []byte("x")))
	if !errors.Is(err, status.ErrBusy) {
		t.Errorf("second Extract() error = %v, want ErrBusy", err)
	}
	if after := s.Reporter().State(); after.Phase != status.Processing {
		t.Errorf("rejected call changed phase to %v", after.Phase)
	}

	close(engine.release)

	select {
	case out := <-done:
		if out.err != nil {
			t.Fatalf("first Extract() error: %v", out.err)
		}
		if out.res.Text != "slow text" {
			t.Errorf("Text = %q", out.res.Text)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("extraction did not finish")
	}

	if st := s.Reporter().State(); st.Phase != status.Succeeded {
		t.Errorf("final phase = %v, want Succeeded", st.Phase)
	}
}

func TestSession_ProgressReachesReporter(t *testing.T) {
	s := NewSession(FromFile(nil).WithLogger(quietLogger()))
	changes := s.Reporter().Changes()

	data := pdftest.Build(pdftest.Text(72, 720, "A"), pdftest.Text(72, 720, "B"))
	if _, err := s.Extract(context.Background(), source.FromBytes("two.pdf", "", data)); err != nil {
		t.Fatal(err)
	}

	// Only the latest state is kept.
	select {
	case st := <-changes:
		if st.Phase != status.Succeeded {
			t.Errorf("latest change = %v, want Succeeded", st.Phase)
		}
	default:
		t.Error("expected a pending change")
	}
	select {
	case st := <-changes:
		t.Errorf("unexpected second change %+v", st)
	default:
	}
}

func TestSession_ExtractPath(t *testing.T) {
	s := NewSession(FromFile(nil).WithLogger(quietLogger()))

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("from disk"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := s.ExtractPath(context.Background(), path)
	if err != nil {
		t.Fatalf("ExtractPath() error: %v", err)
	}
	if res.Text != "from disk" {
		t.Errorf("Text = %q", res.Text)
	}

	_, err = s.ExtractPath(context.Background(), filepath.Join(t.TempDir(), "gone.pdf"))
	var readErr *source.ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("error = %v, want *source.ReadError", err)
	}
	st := s.Reporter().State()
	if st.Phase != status.Failed || st.Message != err.Error() {
		t.Errorf("state = %+v, want Failed with %q", st, err.Error())
	}
}

func TestNewSession_NilTemplate(t *testing.T) {
	s := NewSession(nil)
	if s.Busy() {
		t.Error("new session is busy")
	}
	if st := s.Reporter().State(); st.Phase != status.Idle {
		t.Errorf("phase = %v, want Idle", st.Phase)
	}
}
