package types

import (
	"cmp"
	"math"
	"slices"
	"time"
)

// Equal reports whether every field of t and other compares equal. Mappings
// compare by key set and per-key value; timestamps compare as instants.
func (t FrozenTrial) Equal(other FrozenTrial) bool {
	return t.Number == other.Number &&
		t.TrialID == other.TrialID &&
		t.State == other.State &&
		floatPtrEqual(t.Value, other.Value) &&
		timePtrEqual(t.DatetimeStart, other.DatetimeStart) &&
		timePtrEqual(t.DatetimeComplete, other.DatetimeComplete) &&
		attrsEqual(t.Params, other.Params) &&
		distributionsEqual(t.Distributions, other.Distributions) &&
		attrsEqual(t.UserAttrs, other.UserAttrs) &&
		attrsEqual(t.SystemAttrs, other.SystemAttrs) &&
		intermediateEqual(t.IntermediateValues, other.IntermediateValues)
}

// Less reports whether t sorts before other. Trials are ordered by Number
// only, so two unequal trials with the same Number are not Less in either
// direction. other must be a FrozenTrial or *FrozenTrial; any other operand
// returns a *ComparisonTypeError.
func (t FrozenTrial) Less(other any) (bool, error) {
	o, err := trialOperand("<", other)
	if err != nil {
		return false, err
	}
	return t.Number < o.Number, nil
}

// LessEqual reports whether t sorts before or together with other.
// See Less for the operand rules.
func (t FrozenTrial) LessEqual(other any) (bool, error) {
	o, err := trialOperand("<=", other)
	if err != nil {
		return false, err
	}
	return t.Number <= o.Number, nil
}

func trialOperand(op string, other any) (*FrozenTrial, error) {
	switch o := other.(type) {
	case FrozenTrial:
		return &o, nil
	case *FrozenTrial:
		if o != nil {
			return o, nil
		}
	}
	return nil, &ComparisonTypeError{Op: op, Other: other}
}

// CompareTrials orders trials by Number, for use with slices.SortStableFunc.
func CompareTrials(a, b FrozenTrial) int {
	return cmp.Compare(a.Number, b.Number)
}

// SortTrials sorts trials by Number in place, keeping the relative order of
// trials that share a Number.
func SortTrials(trials []FrozenTrial) {
	slices.SortStableFunc(trials, CompareTrials)
}

// DedupTrials returns the trials with structural duplicates removed. The
// first occurrence of each trial is kept and the input order is preserved.
func DedupTrials(trials []FrozenTrial) []FrozenTrial {
	out := make([]FrozenTrial, 0, len(trials))
	for _, t := range trials {
		if !slices.ContainsFunc(out, t.Equal) {
			out = append(out, t)
		}
	}
	return out
}

// BestTrial returns the COMPLETE trial with the lowest value for MINIMIZE and
// NOT_SET studies, or the highest value for MAXIMIZE studies. Ties go to the
// lower Number.
func BestTrial(trials []FrozenTrial, direction StudyDirection) (*FrozenTrial, bool) {
	var best *FrozenTrial
	for i := range trials {
		t := &trials[i]
		if t.State != TrialStateComplete || t.Value == nil {
			continue
		}
		if best == nil {
			best = t
			continue
		}
		better := *t.Value < *best.Value
		if direction == StudyDirectionMaximize {
			better = *t.Value > *best.Value
		}
		if better || (*t.Value == *best.Value && t.Number < best.Number) {
			best = t
		}
	}
	return best, best != nil
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return floatEqual(*a, *b)
}

// floatEqual treats NaN as equal to itself so that equality stays reflexive.
func floatEqual(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func intermediateEqual(a, b map[int]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for step, va := range a {
		vb, ok := b[step]
		if !ok || !floatEqual(va, vb) {
			return false
		}
	}
	return true
}
