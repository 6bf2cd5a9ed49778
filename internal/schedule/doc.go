// Package schedule runs named recurring triggers.
//
// Registration is idempotent: ensuring a trigger whose name is already
// registered leaves the running one untouched, so a restarted component can
// call Ensure unconditionally.
package schedule
