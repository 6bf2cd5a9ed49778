package pb

import "github.com/oshokin/focus-beacon/internal/domain/focus"

// ActorFromDomain converts a domain actor into its wire form.
func ActorFromDomain(actor *focus.Actor) *SystemActor {
	if actor == nil {
		return nil
	}

	return &SystemActor{
		Hostname: actor.Hostname,
		Username: actor.Username,
	}
}

// Domain converts the wire actor into the domain model.
func (a *SystemActor) Domain() *focus.Actor {
	if a == nil {
		return nil
	}

	return &focus.Actor{
		Hostname: a.Hostname,
		Username: a.Username,
	}
}

// StatusFromState converts a domain state into a wire status.
// A nil state yields an empty, not distracted status.
func StatusFromState(state *focus.State) *StatusResponse {
	if state == nil {
		return new(StatusResponse)
	}

	return &StatusResponse{
		Timestamp:  state.Timestamp,
		LastActor:  ActorFromDomain(state.LastActor),
		Distracted: state.Distracted,
	}
}

// State converts the wire status into the domain model.
func (r *StatusResponse) State() *focus.State {
	return &focus.State{
		Timestamp:  r.GetTimestamp(),
		LastActor:  r.GetLastActor().Domain(),
		Distracted: r.GetDistracted(),
	}
}
