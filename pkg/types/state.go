package types

// TrialState is the lifecycle outcome of a trial. RUNNING is the only
// non-terminal state.
type TrialState string

// Trial states.
const (
	TrialStateRunning  TrialState = "RUNNING"
	TrialStateComplete TrialState = "COMPLETE"
	TrialStatePruned   TrialState = "PRUNED"
	TrialStateFail     TrialState = "FAIL"
)

// validTrialStates is the set of recognized trial state values.
var validTrialStates = map[TrialState]bool{
	TrialStateRunning:  true,
	TrialStateComplete: true,
	TrialStatePruned:   true,
	TrialStateFail:     true,
}

// TrialStates lists every state in declaration order.
var TrialStates = []TrialState{
	TrialStateRunning,
	TrialStateComplete,
	TrialStatePruned,
	TrialStateFail,
}

// ParseTrialState returns the state named s.
// Returns ErrInvalidState if s is not a recognized state.
func ParseTrialState(s string) (TrialState, error) {
	st := TrialState(s)
	if !validTrialStates[st] {
		return "", ErrInvalidState
	}
	return st, nil
}

// IsFinished reports whether the state is terminal.
func (s TrialState) IsFinished() bool {
	return s != TrialStateRunning
}

func (s TrialState) String() string {
	return string(s)
}
