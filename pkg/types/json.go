package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Distribution names used in the JSON envelope and in the textual form.
const (
	uniformName         = "UniformDistribution"
	logUniformName      = "LogUniformDistribution"
	discreteUniformName = "DiscreteUniformDistribution"
	intUniformName      = "IntUniformDistribution"
	categoricalName     = "CategoricalDistribution"
)

// trialJSON is the JSON record layout of a FrozenTrial.
type trialJSON struct {
	Number             *int                       `json:"number"`
	TrialID            *int                       `json:"trial_id"`
	State              *TrialState                `json:"state"`
	Value              *float64                   `json:"value"`
	DatetimeStart      *time.Time                 `json:"datetime_start"`
	DatetimeComplete   *time.Time                 `json:"datetime_complete"`
	Params             map[string]any             `json:"params"`
	Distributions      map[string]json.RawMessage `json:"distributions"`
	UserAttrs          map[string]any             `json:"user_attrs"`
	SystemAttrs        map[string]any             `json:"system_attrs"`
	IntermediateValues map[int]float64            `json:"intermediate_values"`
}

// distributionJSON is the envelope {"name": ..., "attributes": {...}}.
type distributionJSON struct {
	Name       string         `json:"name"`
	Attributes map[string]any `json:"attributes"`
}

// MarshalJSON encodes the trial as a trialJSON record.
func (t FrozenTrial) MarshalJSON() ([]byte, error) {
	rec := trialJSON{
		Number:             &t.Number,
		TrialID:            &t.TrialID,
		State:              &t.State,
		Value:              t.Value,
		DatetimeStart:      t.DatetimeStart,
		DatetimeComplete:   t.DatetimeComplete,
		Params:             t.Params,
		Distributions:      make(map[string]json.RawMessage, len(t.Distributions)),
		UserAttrs:          t.UserAttrs,
		SystemAttrs:        t.SystemAttrs,
		IntermediateValues: t.IntermediateValues,
	}
	for k, d := range t.Distributions {
		env, err := distributionEnvelope(d)
		if err != nil {
			return nil, fmt.Errorf("distribution %q: %w", k, err)
		}
		raw, err := json.Marshal(env)
		if err != nil {
			return nil, fmt.Errorf("distribution %q: %w", k, err)
		}
		rec.Distributions[k] = raw
	}
	return json.Marshal(rec)
}

// UnmarshalJSON decodes a trialJSON record. number, trial_id and state are
// required; state must be a known TrialState. Integral numbers in params and
// attributes decode as int64, all other numbers as float64.
func (t *FrozenTrial) UnmarshalJSON(data []byte) error {
	var rec trialJSON
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&rec); err != nil {
		return err
	}
	switch {
	case rec.Number == nil:
		return fmt.Errorf("%w: %q", ErrMissingField, "number")
	case rec.TrialID == nil:
		return fmt.Errorf("%w: %q", ErrMissingField, "trial_id")
	case rec.State == nil:
		return fmt.Errorf("%w: %q", ErrMissingField, "state")
	}
	if _, err := ParseTrialState(string(*rec.State)); err != nil {
		return fmt.Errorf("%w: %q", err, *rec.State)
	}

	dists := make(map[string]Distribution, len(rec.Distributions))
	for k, raw := range rec.Distributions {
		d, err := decodeDistribution(raw)
		if err != nil {
			return fmt.Errorf("distribution %q: %w", k, err)
		}
		dists[k] = d
	}

	*t = NewFrozenTrial(
		*rec.Number, *rec.TrialID, *rec.State, rec.Value,
		rec.DatetimeStart, rec.DatetimeComplete,
		normalizeAttrs(rec.Params), dists,
		normalizeAttrs(rec.UserAttrs), normalizeAttrs(rec.SystemAttrs),
		rec.IntermediateValues,
	)
	return nil
}

// DistributionToJSON encodes a distribution as its JSON envelope.
func DistributionToJSON(d Distribution) (string, error) {
	env, err := distributionEnvelope(d)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(env)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// JSONToDistribution decodes a distribution from its JSON envelope.
// Returns ErrUnknownDistribution for an unrecognized name.
func JSONToDistribution(s string) (Distribution, error) {
	return decodeDistribution([]byte(s))
}

func distributionEnvelope(d Distribution) (distributionJSON, error) {
	switch x := derefDistribution(d).(type) {
	case UniformDistribution:
		return distributionJSON{uniformName, map[string]any{"low": x.Low, "high": x.High}}, nil
	case LogUniformDistribution:
		return distributionJSON{logUniformName, map[string]any{"low": x.Low, "high": x.High}}, nil
	case DiscreteUniformDistribution:
		return distributionJSON{discreteUniformName, map[string]any{"low": x.Low, "high": x.High, "q": x.Q}}, nil
	case IntUniformDistribution:
		return distributionJSON{intUniformName, map[string]any{"low": x.Low, "high": x.High}}, nil
	case CategoricalDistribution:
		choices := x.Choices
		if choices == nil {
			choices = []any{}
		}
		return distributionJSON{categoricalName, map[string]any{"choices": choices}}, nil
	default:
		return distributionJSON{}, fmt.Errorf("%w: %T", ErrUnknownDistribution, d)
	}
}

// derefDistribution turns pointer variants into their value form.
func derefDistribution(d Distribution) Distribution {
	switch x := d.(type) {
	case *UniformDistribution:
		if x != nil {
			return *x
		}
	case *LogUniformDistribution:
		if x != nil {
			return *x
		}
	case *DiscreteUniformDistribution:
		if x != nil {
			return *x
		}
	case *IntUniformDistribution:
		if x != nil {
			return *x
		}
	case *CategoricalDistribution:
		if x != nil {
			return *x
		}
	}
	return d
}

func decodeDistribution(raw []byte) (Distribution, error) {
	var env distributionJSON
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&env); err != nil {
		return nil, err
	}
	attrs := normalizeAttrs(env.Attributes)
	return buildDistribution(env.Name, attrs)
}

// buildDistribution constructs a distribution from its name and decoded
// attributes. It is shared by the JSON decoder and the textual form.
func buildDistribution(name string, attrs map[string]any) (Distribution, error) {
	float := func(key string) (float64, error) {
		v, ok := toFloat(attrs[key])
		if !ok {
			return 0, fmt.Errorf("%s: attribute %q must be a number, got %v", name, key, attrs[key])
		}
		return v, nil
	}
	integer := func(key string) (int64, error) {
		v, ok := exactInt(attrs[key])
		if !ok {
			return 0, fmt.Errorf("%s: attribute %q must be an integer, got %v", name, key, attrs[key])
		}
		return v, nil
	}

	switch name {
	case uniformName, logUniformName:
		low, err := float("low")
		if err != nil {
			return nil, err
		}
		high, err := float("high")
		if err != nil {
			return nil, err
		}
		if name == logUniformName {
			return LogUniformDistribution{Low: low, High: high}, nil
		}
		return UniformDistribution{Low: low, High: high}, nil
	case discreteUniformName:
		low, err := float("low")
		if err != nil {
			return nil, err
		}
		high, err := float("high")
		if err != nil {
			return nil, err
		}
		q, err := float("q")
		if err != nil {
			return nil, err
		}
		return DiscreteUniformDistribution{Low: low, High: high, Q: q}, nil
	case intUniformName:
		low, err := integer("low")
		if err != nil {
			return nil, err
		}
		high, err := integer("high")
		if err != nil {
			return nil, err
		}
		return IntUniformDistribution{Low: low, High: high}, nil
	case categoricalName:
		choices, ok := attrs["choices"].([]any)
		if !ok {
			return nil, fmt.Errorf("%s: attribute \"choices\" must be a list", name)
		}
		return CategoricalDistribution{Choices: choices}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDistribution, name)
	}
}

// normalizeJSON converts json.Number values, recursively, to int64 when the
// lexeme is integral and to float64 otherwise.
func normalizeJSON(v any) any {
	switch x := v.(type) {
	case json.Number:
		s := x.String()
		if !strings.ContainsAny(s, ".eE") {
			if i, err := x.Int64(); err == nil {
				return i
			}
		}
		f, _ := x.Float64()
		return f
	case []any:
		for i := range x {
			x[i] = normalizeJSON(x[i])
		}
		return x
	case map[string]any:
		return normalizeAttrs(x)
	default:
		return v
	}
}

func normalizeAttrs(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	for k, v := range m {
		m[k] = normalizeJSON(v)
	}
	return m
}
