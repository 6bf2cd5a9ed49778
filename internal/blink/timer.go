package blink

import "time"

// scopedTimer holds at most one pending timer of a single role.
// All methods must be called with the controller mutex held.
type scopedTimer struct {
	// timer is the pending timer, nil when nothing is armed.
	timer *time.Timer
	// generation identifies the armed timer; bumped on every release.
	generation uint64
}

// arm releases the held timer and schedules fire after d.
// fire receives the generation it was armed with and must pass it to claim.
func (t *scopedTimer) arm(d time.Duration, fire func(generation uint64)) {
	t.release()

	generation := t.generation
	t.timer = time.AfterFunc(d, func() {
		fire(generation)
	})
}

// release stops the held timer and invalidates any callback already in flight.
func (t *scopedTimer) release() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}

	t.generation++
}

// claim reports whether a firing callback still owns the slot.
// On success the slot becomes empty: the timer has fired and is no longer pending.
func (t *scopedTimer) claim(generation uint64) bool {
	if t.timer == nil || t.generation != generation {
		return false
	}

	t.timer = nil

	return true
}

// pending reports whether a timer is armed.
func (t *scopedTimer) pending() bool {
	return t.timer != nil
}
