// Package status holds the single processing-state slot shown to the user
// and the progress stream that feeds it.
//
// A Reporter owns exactly one State. Every transition overwrites it; there is
// no history and no queue. Observers receive the latest State through a
// capacity-one channel, so a slow observer skips intermediate states instead
// of falling behind.
package status

import (
	"errors"
	"fmt"
	"sync"
)

// ErrBusy is returned when an extraction is started while another one is
// still processing.
var ErrBusy = errors.New("an extraction is already in progress")

// Phase is the coarse processing phase.
type Phase int

const (
	Idle Phase = iota
	Processing
	Succeeded
	Failed
)

// String returns a string representation of the phase
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Processing:
		return "processing"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is one snapshot of the status slot.
type State struct {
	Phase Phase

	// Percent and Label are meaningful while Processing.
	Percent int
	Label   string

	// Text is the extracted text once Succeeded.
	Text string

	// Message is the error text once Failed.
	Message string
}

// Busy reports whether input should be disabled.
func (s State) Busy() bool {
	return s.Phase == Processing
}

// Reporter is the single status slot. The zero value is not usable; create
// one with NewReporter. A Reporter is safe for concurrent use.
type Reporter struct {
	mu      sync.Mutex
	state   State
	changes chan State
}

// NewReporter returns a Reporter in the Idle state.
func NewReporter() *Reporter {
	return &Reporter{
		changes: make(chan State, 1),
	}
}

// State returns the current state.
func (r *Reporter) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Busy reports whether an extraction is processing.
func (r *Reporter) Busy() bool {
	return r.State().Busy()
}

// Changes returns a channel that yields the latest state after every
// transition. Only the most recent unread state is kept.
func (r *Reporter) Changes() <-chan State {
	return r.changes
}

// Begin moves to Processing at 0%. It fails with ErrBusy if the reporter is
// already processing. Succeeded and Failed states are simply replaced.
func (r *Reporter) Begin(label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Phase == Processing {
		return ErrBusy
	}
	r.set(State{Phase: Processing, Label: label})
	return nil
}

// Update records a progress notification. It is ignored unless processing.
// An empty label keeps the current one.
func (r *Reporter) Update(p Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Phase != Processing {
		return
	}
	next := State{Phase: Processing, Percent: clamp(p.Percent), Label: p.Label}
	if next.Label == "" {
		next.Label = r.state.Label
	}
	r.set(next)
}

// Succeed moves to Succeeded with the extracted text.
func (r *Reporter) Succeed(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(State{Phase: Succeeded, Percent: 100, Text: text})
}

// Fail moves to Failed with the error's message.
func (r *Reporter) Fail(err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(State{Phase: Failed, Message: msg})
}

// Reset moves back to Idle.
func (r *Reporter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(State{})
}

// Follow applies every notification from progress until the channel is
// closed. It is normally run in its own goroutine.
func (r *Reporter) Follow(progress <-chan Progress) {
	for p := range progress {
		r.Update(p)
	}
}

// set must be called with r.mu held.
func (r *Reporter) set(s State) {
	r.state = s

	// Drop an unread state so the channel always holds the latest one.
	select {
	case <-r.changes:
	default:
	}
	select {
	case r.changes <- s:
	default:
	}
}

func clamp(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// Render returns the human-readable status line for a state.
func Render(s State) string {
	switch s.Phase {
	case Processing:
		label := s.Label
		if label == "" {
			label = "Processing..."
		}
		if s.Percent > 0 {
			return fmt.Sprintf("%s %d%%", label, s.Percent)
		}
		return label
	case Succeeded:
		return "Text extracted successfully!"
	case Failed:
		return "Error: " + s.Message
	default:
		return "Select a file to extract text."
	}
}
