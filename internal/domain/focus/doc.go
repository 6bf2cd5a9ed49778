// Package focus contains the core domain types of the focus beacon.
//
// It defines Report (what a poll of the status source said), Icon (what the
// tray shows) and State (the distraction status held by the status server,
// with the Actor who last changed it).
package focus
