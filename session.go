package textpick

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/tsawler/textpick/format"
	"github.com/tsawler/textpick/source"
	"github.com/tsawler/textpick/status"
)

// Session runs extractions for an interactive front end. It allows one
// extraction at a time and mirrors every extraction into a single
// status.Reporter slot.
type Session struct {
	template *Extractor
	reporter *status.Reporter
	sem      *semaphore.Weighted
}

// NewSession returns an idle Session. The options of template (which may be
// nil) are applied to every extraction; its file is ignored.
func NewSession(template *Extractor) *Session {
	if template == nil {
		template = &Extractor{options: defaultOptions()}
	}
	return &Session{
		template: template,
		reporter: status.NewReporter(),
		sem:      semaphore.NewWeighted(1),
	}
}

// Reporter returns the session's status slot.
func (s *Session) Reporter() *status.Reporter {
	return s.reporter
}

// Busy reports whether an extraction is running; input should be disabled.
func (s *Session) Busy() bool {
	return s.reporter.Busy()
}

// Extract runs one extraction of f. If another extraction is running it
// returns status.ErrBusy immediately and leaves the status untouched.
//
// Progress is forwarded to the reporter while the extraction runs. On
// return the reporter holds either the text (Succeeded) or the error
// message (Failed).
func (s *Session) Extract(ctx context.Context, f *source.File) (*Result, error) {
	return s.run(ctx, func() (*source.File, error) { return f, nil })
}

// ExtractPath opens the file at path and extracts it like Extract. A file
// that cannot be opened fails the extraction with a *source.ReadError.
func (s *Session) ExtractPath(ctx context.Context, path string) (*Result, error) {
	return s.run(ctx, func() (*source.File, error) { return source.Open(path) })
}

func (s *Session) run(ctx context.Context, open func() (*source.File, error)) (*Result, error) {
	if !s.sem.TryAcquire(1) {
		return nil, status.ErrBusy
	}
	defer s.sem.Release(1)

	f, openErr := open()

	label := "Reading file..."
	if f != nil {
		if kind, err := format.Route(f.Name, f.MIME); err == nil {
			label = kind.Label()
		}
	}
	if err := s.reporter.Begin(label); err != nil {
		return nil, err
	}
	if openErr != nil {
		s.reporter.Fail(openErr)
		return nil, openErr
	}

	stream := status.NewStream()
	followed := make(chan struct{})
	go func() {
		s.reporter.Follow(stream.C())
		close(followed)
	}()

	ext := s.template.clone()
	ext.file = f
	res, err := ext.WithProgress(stream).Extract(ctx)

	// Let the last progress notification land before the final state.
	stream.Close()
	<-followed

	if err != nil {
		s.reporter.Fail(err)
		return nil, err
	}
	s.reporter.Succeed(res.Text)
	return res, nil
}
