// Package blinktest provides a recording renderer for tests that drive the
// blink controller on a virtual clock.
package blinktest

import (
	"context"
	"sync"
	"time"

	"github.com/oshokin/focus-beacon/internal/domain/focus"
)

// Call is one recorded Render invocation.
type Call struct {
	// At is the time since the recorder was created.
	At time.Duration
	// Icon is the rendered icon.
	Icon focus.Icon
}

// At builds a Call from milliseconds for readable expectations.
func At(ms int, icon focus.Icon) Call {
	return Call{
		At:   time.Duration(ms) * time.Millisecond,
		Icon: icon,
	}
}

// Recorder records every render with its timestamp.
type Recorder struct {
	mu    sync.Mutex
	start time.Time
	calls []Call
	err   error
}

// NewRecorder creates a recorder whose clock starts now.
// Inside a synctest bubble "now" is the bubble's virtual clock.
func NewRecorder() *Recorder {
	return &Recorder{
		start: time.Now(),
	}
}

// Start returns the time the recorder was created.
func (r *Recorder) Start() time.Time {
	return r.start
}

// FailWith makes every later Render return err.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.err = err
}

// Render records the call and returns the configured error.
func (r *Recorder) Render(_ context.Context, icon focus.Icon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, Call{
		At:   time.Since(r.start),
		Icon: icon,
	})

	return r.err
}

// Calls returns a copy of the recorded renders.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Call(nil), r.calls...)
}

// Last returns the latest render and whether there was one.
func (r *Recorder) Last() (Call, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.calls) == 0 {
		return Call{}, false
	}

	return r.calls[len(r.calls)-1], true
}
