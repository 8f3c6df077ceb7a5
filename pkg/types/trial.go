package types

import (
	"maps"
	"time"
)

// FrozenTrial is an immutable snapshot of one trial. Invariants between the
// fields are not enforced on construction; call Validate before trusting a
// snapshot built by an external runner.
//
// Distributions are borrowed from the search space and are never copied.
type FrozenTrial struct {
	Number             int
	TrialID            int
	State              TrialState
	Value              *float64   // Set iff State is COMPLETE.
	DatetimeStart      *time.Time // Always required.
	DatetimeComplete   *time.Time // Set iff State is not RUNNING.
	Params             map[string]any
	Distributions      map[string]Distribution
	UserAttrs          map[string]any
	SystemAttrs        map[string]any
	IntermediateValues map[int]float64
}

// NewFrozenTrial builds a snapshot from every field. Nil mappings become empty
// mappings; nothing else is defaulted or checked.
func NewFrozenTrial(
	number, trialID int,
	state TrialState,
	value *float64,
	datetimeStart, datetimeComplete *time.Time,
	params map[string]any,
	distributions map[string]Distribution,
	userAttrs, systemAttrs map[string]any,
	intermediateValues map[int]float64,
) FrozenTrial {
	if params == nil {
		params = map[string]any{}
	}
	if distributions == nil {
		distributions = map[string]Distribution{}
	}
	if userAttrs == nil {
		userAttrs = map[string]any{}
	}
	if systemAttrs == nil {
		systemAttrs = map[string]any{}
	}
	if intermediateValues == nil {
		intermediateValues = map[int]float64{}
	}
	return FrozenTrial{
		Number:             number,
		TrialID:            trialID,
		State:              state,
		Value:              value,
		DatetimeStart:      datetimeStart,
		DatetimeComplete:   datetimeComplete,
		Params:             params,
		Distributions:      distributions,
		UserAttrs:          userAttrs,
		SystemAttrs:        systemAttrs,
		IntermediateValues: intermediateValues,
	}
}

// Clone returns a copy that shares no mutable state with t, except for the
// Distribution values, which are shared by reference.
func (t FrozenTrial) Clone() FrozenTrial {
	c := t
	if t.Value != nil {
		v := *t.Value
		c.Value = &v
	}
	if t.DatetimeStart != nil {
		ts := *t.DatetimeStart
		c.DatetimeStart = &ts
	}
	if t.DatetimeComplete != nil {
		tc := *t.DatetimeComplete
		c.DatetimeComplete = &tc
	}
	c.Params = cloneAttrs(t.Params)
	c.Distributions = maps.Clone(t.Distributions)
	c.UserAttrs = cloneAttrs(t.UserAttrs)
	c.SystemAttrs = cloneAttrs(t.SystemAttrs)
	c.IntermediateValues = maps.Clone(t.IntermediateValues)
	return c
}

// Duration returns the elapsed time between start and completion. The second
// result is false when either timestamp is missing.
func (t FrozenTrial) Duration() (time.Duration, bool) {
	if t.DatetimeStart == nil || t.DatetimeComplete == nil {
		return 0, false
	}
	return t.DatetimeComplete.Sub(*t.DatetimeStart), true
}

// LastStep returns the largest step with a reported intermediate value.
func (t FrozenTrial) LastStep() (int, bool) {
	if len(t.IntermediateValues) == 0 {
		return 0, false
	}
	first := true
	last := 0
	for step := range t.IntermediateValues {
		if first || step > last {
			last = step
			first = false
		}
	}
	return last, true
}
