// Package state implements persistence for the published focus State.
//
// The FileRepository stores and loads the state as JSON on disk and exposes a
// Repository interface that the status server depends on.
package state
