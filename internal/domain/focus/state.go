package focus

import "time"

// Actor identifies who published a status change.
type Actor struct {
	// Hostname is the machine name where the change was made.
	Hostname string
	// Username is the system user who made the change.
	Username string
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// String renders the actor as username@hostname.
func (a *Actor) String() string {
	if a == nil {
		return "<unknown>"
	}

	return a.Username + "@" + a.Hostname
}

// State is the distraction status published by the status server.
type State struct {
	// Timestamp is when the status was last changed.
	Timestamp time.Time
	// LastActor is who last changed the status.
	LastActor *Actor
	// Distracted is the externally judged distraction signal.
	Distracted bool
}

// Clone returns a copy of the state to avoid leaking internal references.
func (s *State) Clone() *State {
	return &State{
		Timestamp:  s.Timestamp,
		LastActor:  s.LastActor.Clone(),
		Distracted: s.Distracted,
	}
}
