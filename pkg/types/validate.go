package types

import (
	"maps"
	"slices"
)

// Validate checks the snapshot invariants in a fixed order and returns a
// *ValidationError describing the first one that does not hold. A State
// outside the known set is reported before any of them, with ErrInvalidState.
//
//  1. DatetimeStart is set.
//  2. A RUNNING trial has no DatetimeComplete.
//  3. A finished trial has a DatetimeComplete.
//  4. A COMPLETE trial has a Value.
//  5. Params and Distributions have the same keys.
//  6. Every param value is contained in its distribution.
//
// Value is not constrained for PRUNED and FAIL trials. Keys are examined in
// sorted order so the reported key is deterministic.
func (t FrozenTrial) Validate() error {
	if !validTrialStates[t.State] {
		return &ValidationError{Reason: ErrInvalidState, Value: string(t.State)}
	}

	if t.DatetimeStart == nil {
		return &ValidationError{Reason: ErrStartNotSet}
	}

	if t.State == TrialStateRunning {
		if t.DatetimeComplete != nil {
			return &ValidationError{Reason: ErrCompleteSetForRunning}
		}
	} else if t.DatetimeComplete == nil {
		return &ValidationError{Reason: ErrCompleteNotSet}
	}

	if t.State == TrialStateComplete && t.Value == nil {
		return &ValidationError{Reason: ErrValueNotSet}
	}

	paramKeys := slices.Sorted(maps.Keys(t.Params))
	for _, k := range paramKeys {
		if _, ok := t.Distributions[k]; !ok {
			return &ValidationError{Reason: ErrParamWithoutDistribution, Key: k, Value: t.Params[k]}
		}
	}
	for _, k := range slices.Sorted(maps.Keys(t.Distributions)) {
		if _, ok := t.Params[k]; !ok {
			return &ValidationError{Reason: ErrDistributionWithoutParam, Key: k}
		}
	}

	for _, k := range paramKeys {
		d := t.Distributions[k]
		if d == nil || !d.Contains(t.Params[k]) {
			return &ValidationError{Reason: ErrParamOutOfRange, Key: k, Value: t.Params[k]}
		}
	}
	return nil
}
