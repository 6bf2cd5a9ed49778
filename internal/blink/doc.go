// Package blink implements the blink controller: the state machine that turns
// a stream of status reports into icon render commands.
//
// The controller is either Idle or Blinking. A distracted report starts a
// blink session (render Alert, toggle every Interval, expire after Duration)
// or, if one is running, re-arms both timers in place without touching the
// icon. Any other report ends the session and renders Normal.
//
//	Idle     --distracted-->          Blinking  render(Alert), arm toggle+expiry
//	Blinking --distracted-->          Blinking  re-arm toggle+expiry
//	Blinking --tick-->                Blinking  render(flip)
//	Blinking --expiry-->              Idle      render(Normal)
//	Blinking --not distracted/unavailable--> Idle  cancel timers, render(Normal)
//	Idle     --not distracted/unavailable--> Idle  render(Normal)
//
// Timer handles are owned by scopedTimer values: arming a role releases the
// previous handle first, and a released timer's callback never acts, even if
// it was already running when the release happened.
package blink
