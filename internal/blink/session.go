package blink

import (
	"time"

	"github.com/oshokin/focus-beacon/internal/domain/focus"
)

// session is the single blink session of a controller.
// It is refreshed in place; there is never more than one.
type session struct {
	// active is true while the controller is Blinking.
	active bool
	// phase is the icon currently shown by the session.
	phase focus.Icon
	// armedAt is when the timers were last (re)armed.
	armedAt time.Time
	// expiresAt is when the session ends unless refreshed.
	expiresAt time.Time
	// ticks counts toggles since armedAt.
	ticks int
	// toggle flips the icon every interval.
	toggle scopedTimer
	// expiry ends the session.
	expiry scopedTimer
}

// release cancels both timers and clears the session.
func (s *session) release() {
	s.toggle.release()
	s.expiry.release()

	s.active = false
	s.phase = focus.IconNormal
	s.armedAt = time.Time{}
	s.expiresAt = time.Time{}
	s.ticks = 0
}
