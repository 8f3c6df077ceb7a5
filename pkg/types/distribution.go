package types

import "math"

// Distribution is the legal domain of one parameter. Implementations must be
// deterministic and total: Contains returns false, never panics, for values of
// the wrong type.
type Distribution interface {
	// Contains reports whether the raw param value belongs to the domain.
	Contains(value any) bool

	// Equal reports whether other describes the same domain.
	Equal(other Distribution) bool
}

// discreteTolerance bounds the rounding error accepted when checking that a
// value lies on a DiscreteUniformDistribution grid.
const discreteTolerance = 1e-8

// UniformDistribution is the closed float range [Low, High].
type UniformDistribution struct {
	Low  float64
	High float64
}

// Contains reports whether value is a number within [Low, High].
func (d UniformDistribution) Contains(value any) bool {
	v, ok := toFloat(value)
	return ok && d.Low <= v && v <= d.High
}

// Equal reports whether other is a UniformDistribution with the same bounds.
func (d UniformDistribution) Equal(other Distribution) bool {
	o, ok := derefDistribution(other).(UniformDistribution)
	return ok && floatEqual(d.Low, o.Low) && floatEqual(d.High, o.High)
}

// LogUniformDistribution is the closed float range [Low, High] sampled on a
// log scale.
type LogUniformDistribution struct {
	Low  float64
	High float64
}

// Contains reports whether value is a number within [Low, High].
func (d LogUniformDistribution) Contains(value any) bool {
	v, ok := toFloat(value)
	return ok && d.Low <= v && v <= d.High
}

// Equal reports whether other is a LogUniformDistribution with the same bounds.
func (d LogUniformDistribution) Equal(other Distribution) bool {
	o, ok := derefDistribution(other).(LogUniformDistribution)
	return ok && floatEqual(d.Low, o.Low) && floatEqual(d.High, o.High)
}

// DiscreteUniformDistribution is the grid Low, Low+Q, ... within [Low, High].
type DiscreteUniformDistribution struct {
	Low  float64
	High float64
	Q    float64
}

// Contains reports whether value is a number within [Low, High] that lies on
// the Q grid starting at Low. A non-positive Q admits Low only.
func (d DiscreteUniformDistribution) Contains(value any) bool {
	v, ok := toFloat(value)
	if !ok || v < d.Low || v > d.High {
		return false
	}
	if d.Q <= 0 {
		return v == d.Low
	}
	steps := (v - d.Low) / d.Q
	return math.Abs(steps-math.Round(steps)) <= discreteTolerance
}

// Equal reports whether other is a DiscreteUniformDistribution with the same
// bounds and step.
func (d DiscreteUniformDistribution) Equal(other Distribution) bool {
	o, ok := derefDistribution(other).(DiscreteUniformDistribution)
	return ok && floatEqual(d.Low, o.Low) && floatEqual(d.High, o.High) && floatEqual(d.Q, o.Q)
}

// IntUniformDistribution is the closed integer range [Low, High].
type IntUniformDistribution struct {
	Low  int64
	High int64
}

// Contains reports whether value is an integral number within [Low, High].
func (d IntUniformDistribution) Contains(value any) bool {
	v, ok := exactInt(value)
	return ok && d.Low <= v && v <= d.High
}

// Equal reports whether other is an IntUniformDistribution with the same bounds.
func (d IntUniformDistribution) Equal(other Distribution) bool {
	o, ok := derefDistribution(other).(IntUniformDistribution)
	return ok && d == o
}

// CategoricalDistribution is a finite set of choices. Choices are raw values:
// nil, bool, integers, floats or strings.
type CategoricalDistribution struct {
	Choices []any
}

// Contains reports whether value equals one of the choices.
func (d CategoricalDistribution) Contains(value any) bool {
	for _, c := range d.Choices {
		if valueEqual(c, value) {
			return true
		}
	}
	return false
}

// Equal reports whether other is a CategoricalDistribution with the same
// choices in the same order.
func (d CategoricalDistribution) Equal(other Distribution) bool {
	o, ok := derefDistribution(other).(CategoricalDistribution)
	return ok && valueEqual(d.Choices, o.Choices)
}

// distributionsEqual compares two distribution mappings key by key.
func distributionsEqual(a, b map[string]Distribution) bool {
	if len(a) != len(b) {
		return false
	}
	for k, da := range a {
		db, ok := b[k]
		if !ok {
			return false
		}
		if da == nil || db == nil {
			if da == nil && db == nil {
				continue
			}
			return false
		}
		if !da.Equal(db) {
			return false
		}
	}
	return true
}
