package reconcile

// State is the confirmed status of one college on one axis (liked or
// compared).
type State int

const (
	// StateUnknown means no server answer has been seen yet.
	StateUnknown State = iota
	StateOn
	StateOff
)

func (s State) String() string {
	switch s {
	case StateOn:
		return "on"
	case StateOff:
		return "off"
	default:
		return "unknown"
	}
}

func stateOf(set, confirmed IDSet, synced bool, id int64) State {
	if !synced && !confirmed.Has(id) {
		return StateUnknown
	}
	if set.Has(id) {
		return StateOn
	}
	return StateOff
}
