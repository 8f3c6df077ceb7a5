package types

import (
	"encoding/hex"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/expr-lang/expr"
)

// String renders the trial as an expression that ParseFrozenTrial evaluates
// back into an equal trial:
//
//	FrozenTrial({"number": 0, "trial_id": 0, "state": TrialState("COMPLETE"), ...})
//
// Integers render without a decimal point and floats always with one, so the
// integer/float kind of raw values survives the round trip. Raw values of
// other types than nil, bool, numbers, strings, time.Time, slices and
// string-keyed maps render as their quoted fmt form. Strings that are not
// valid UTF-8 render as RawString with their bytes in hex.
func (t FrozenTrial) String() string {
	var b strings.Builder
	b.WriteString("FrozenTrial({")
	fmt.Fprintf(&b, "%q: %s, ", "number", formatInt(int64(t.Number)))
	fmt.Fprintf(&b, "%q: %s, ", "trial_id", formatInt(int64(t.TrialID)))
	fmt.Fprintf(&b, "%q: TrialState(%q), ", "state", string(t.State))

	fmt.Fprintf(&b, "%q: ", "value")
	if t.Value == nil {
		b.WriteString("nil")
	} else {
		b.WriteString(formatFloat(*t.Value))
	}
	fmt.Fprintf(&b, ", %q: %s", "datetime_start", formatTimePtr(t.DatetimeStart))
	fmt.Fprintf(&b, ", %q: %s", "datetime_complete", formatTimePtr(t.DatetimeComplete))
	fmt.Fprintf(&b, ", %q: %s", "params", formatValue(t.Params))

	fmt.Fprintf(&b, ", %q: {", "distributions")
	for i, k := range slices.Sorted(maps.Keys(t.Distributions)) {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", formatKey(k), formatDistribution(t.Distributions[k]))
	}
	b.WriteString("}")

	fmt.Fprintf(&b, ", %q: %s", "user_attrs", formatValue(t.UserAttrs))
	fmt.Fprintf(&b, ", %q: %s", "system_attrs", formatValue(t.SystemAttrs))

	fmt.Fprintf(&b, ", %q: {", "intermediate_values")
	for i, step := range slices.Sorted(maps.Keys(t.IntermediateValues)) {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: %s", strconv.Itoa(step), formatFloat(t.IntermediateValues[step]))
	}
	b.WriteString("}})")
	return b.String()
}

// ParseFrozenTrial evaluates the textual form produced by FrozenTrial.String.
// The expression may only call the trial, state, time and distribution
// constructors; the keys number, trial_id, state and datetime_start are
// required.
func ParseFrozenTrial(src string) (FrozenTrial, error) {
	program, err := expr.Compile(src, reprFunctions()...)
	if err != nil {
		return FrozenTrial{}, fmt.Errorf("compile trial expression: %w", err)
	}
	out, err := expr.Run(program, map[string]any{})
	if err != nil {
		return FrozenTrial{}, fmt.Errorf("evaluate trial expression: %w", err)
	}
	t, ok := out.(FrozenTrial)
	if !ok {
		return FrozenTrial{}, fmt.Errorf("%w: expression yields %T, not FrozenTrial", ErrTypeMismatch, out)
	}
	return t, nil
}

// reprFunctions is the function table available to ParseFrozenTrial.
func reprFunctions() []expr.Option {
	distribution := func(name string, keys ...string) expr.Option {
		return expr.Function(name, func(params ...any) (any, error) {
			if len(params) != len(keys) {
				return nil, fmt.Errorf("%s takes %d arguments, got %d", name, len(keys), len(params))
			}
			attrs := make(map[string]any, len(keys))
			for i, k := range keys {
				attrs[k] = params[i]
			}
			return buildDistribution(name, attrs)
		})
	}

	return []expr.Option{
		expr.Function("FrozenTrial", func(params ...any) (any, error) {
			if len(params) != 1 {
				return nil, fmt.Errorf("FrozenTrial takes 1 argument, got %d", len(params))
			}
			fields, ok := params[0].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("FrozenTrial argument must be a map, got %T", params[0])
			}
			return trialFromFields(fields)
		}),
		expr.Function("TrialState", func(params ...any) (any, error) {
			if len(params) != 1 {
				return nil, fmt.Errorf("TrialState takes 1 argument, got %d", len(params))
			}
			s, ok := params[0].(string)
			if !ok {
				return nil, fmt.Errorf("TrialState argument must be a string, got %T", params[0])
			}
			return ParseTrialState(s)
		}),
		expr.Function("Time", func(params ...any) (any, error) {
			if len(params) != 1 {
				return nil, fmt.Errorf("Time takes 1 argument, got %d", len(params))
			}
			s, ok := params[0].(string)
			if !ok {
				return nil, fmt.Errorf("Time argument must be a string, got %T", params[0])
			}
			return time.Parse(time.RFC3339Nano, s)
		}),
		expr.Function("Inf", func(params ...any) (any, error) {
			if len(params) != 1 {
				return nil, fmt.Errorf("Inf takes 1 argument, got %d", len(params))
			}
			sign, ok := exactInt(params[0])
			if !ok {
				return nil, fmt.Errorf("Inf argument must be an integer, got %T", params[0])
			}
			return math.Inf(int(sign)), nil
		}),
		expr.Function("NaN", func(params ...any) (any, error) {
			return math.NaN(), nil
		}),
		expr.Function("RawString", func(params ...any) (any, error) {
			if len(params) != 1 {
				return nil, fmt.Errorf("RawString takes 1 argument, got %d", len(params))
			}
			s, ok := params[0].(string)
			if !ok {
				return nil, fmt.Errorf("RawString argument must be a string, got %T", params[0])
			}
			b, err := hex.DecodeString(s)
			if err != nil {
				return nil, fmt.Errorf("RawString: %w", err)
			}
			return string(b), nil
		}),
		distribution(uniformName, "low", "high"),
		distribution(logUniformName, "low", "high"),
		distribution(discreteUniformName, "low", "high", "q"),
		distribution(intUniformName, "low", "high"),
		distribution(categoricalName, "choices"),
	}
}

// trialFields lists the keys accepted by FrozenTrial(...), mapped to whether
// they are required.
var trialFields = map[string]bool{
	"number":              true,
	"trial_id":            true,
	"state":               true,
	"value":               false,
	"datetime_start":      true,
	"datetime_complete":   false,
	"params":              false,
	"distributions":       false,
	"user_attrs":          false,
	"system_attrs":        false,
	"intermediate_values": false,
}

func trialFromFields(fields map[string]any) (FrozenTrial, error) {
	for _, k := range slices.Sorted(maps.Keys(trialFields)) {
		if _, ok := fields[k]; trialFields[k] && !ok {
			return FrozenTrial{}, fmt.Errorf("FrozenTrial: %w: %q", ErrMissingField, k)
		}
	}
	for k := range fields {
		if _, ok := trialFields[k]; !ok {
			return FrozenTrial{}, fmt.Errorf("FrozenTrial: unknown field %q", k)
		}
	}

	number, ok := exactInt(fields["number"])
	if !ok {
		return FrozenTrial{}, fmt.Errorf("FrozenTrial: number must be an integer")
	}
	trialID, ok := exactInt(fields["trial_id"])
	if !ok {
		return FrozenTrial{}, fmt.Errorf("FrozenTrial: trial_id must be an integer")
	}
	state, ok := fields["state"].(TrialState)
	if !ok {
		return FrozenTrial{}, fmt.Errorf("FrozenTrial: state must be a TrialState")
	}

	var value *float64
	if v := fields["value"]; v != nil {
		f, ok := toFloat(v)
		if !ok {
			return FrozenTrial{}, fmt.Errorf("FrozenTrial: value must be a number")
		}
		value = &f
	}
	start, err := timeField(fields, "datetime_start")
	if err != nil {
		return FrozenTrial{}, err
	}
	complete, err := timeField(fields, "datetime_complete")
	if err != nil {
		return FrozenTrial{}, err
	}

	params, err := mapField(fields, "params")
	if err != nil {
		return FrozenTrial{}, err
	}
	userAttrs, err := mapField(fields, "user_attrs")
	if err != nil {
		return FrozenTrial{}, err
	}
	systemAttrs, err := mapField(fields, "system_attrs")
	if err != nil {
		return FrozenTrial{}, err
	}

	rawDists, err := mapField(fields, "distributions")
	if err != nil {
		return FrozenTrial{}, err
	}
	dists := make(map[string]Distribution, len(rawDists))
	for k, v := range rawDists {
		d, ok := v.(Distribution)
		if !ok {
			return FrozenTrial{}, fmt.Errorf("FrozenTrial: distribution %q is %T", k, v)
		}
		dists[k] = d
	}

	rawSteps, err := mapField(fields, "intermediate_values")
	if err != nil {
		return FrozenTrial{}, err
	}
	steps := make(map[int]float64, len(rawSteps))
	for k, v := range rawSteps {
		step, err := strconv.Atoi(k)
		if err != nil {
			return FrozenTrial{}, fmt.Errorf("FrozenTrial: intermediate step %q is not an integer", k)
		}
		f, ok := toFloat(v)
		if !ok {
			return FrozenTrial{}, fmt.Errorf("FrozenTrial: intermediate value at step %d must be a number", step)
		}
		steps[step] = f
	}

	return NewFrozenTrial(int(number), int(trialID), state, value, start, complete,
		params, dists, userAttrs, systemAttrs, steps), nil
}

func timeField(fields map[string]any, key string) (*time.Time, error) {
	v := fields[key]
	if v == nil {
		return nil, nil
	}
	ts, ok := v.(time.Time)
	if !ok {
		return nil, fmt.Errorf("FrozenTrial: %s must be a Time", key)
	}
	return &ts, nil
}

func mapField(fields map[string]any, key string) (map[string]any, error) {
	v := fields[key]
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("FrozenTrial: %s must be a map, got %T", key, v)
	}
	return m, nil
}

func formatDistribution(d Distribution) string {
	switch x := derefDistribution(d).(type) {
	case UniformDistribution:
		return fmt.Sprintf("%s(%s, %s)", uniformName, formatFloat(x.Low), formatFloat(x.High))
	case LogUniformDistribution:
		return fmt.Sprintf("%s(%s, %s)", logUniformName, formatFloat(x.Low), formatFloat(x.High))
	case DiscreteUniformDistribution:
		return fmt.Sprintf("%s(%s, %s, %s)", discreteUniformName,
			formatFloat(x.Low), formatFloat(x.High), formatFloat(x.Q))
	case IntUniformDistribution:
		return fmt.Sprintf("%s(%s, %s)", intUniformName, formatInt(x.Low), formatInt(x.High))
	case CategoricalDistribution:
		return fmt.Sprintf("%s(%s)", categoricalName, formatValue(x.Choices))
	default:
		return strconv.Quote(fmt.Sprintf("%v", d))
	}
}

// formatFloat prints f so that it reads back as a float: never in exponent
// form, always with a decimal point.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN()"
	case math.IsInf(f, 1):
		return "Inf(1)"
	case math.IsInf(f, -1):
		return "Inf(-1)"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatTimePtr(ts *time.Time) string {
	if ts == nil {
		return "nil"
	}
	return fmt.Sprintf("Time(%q)", ts.Format(time.RFC3339Nano))
}

func formatValue(v any) string {
	if v == nil {
		return "nil"
	}
	if ts, ok := v.(time.Time); ok {
		return formatTimePtr(&ts)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return formatInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); u > math.MaxInt64 {
			return formatFloat(float64(u))
		}
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float())
	case reflect.String:
		return formatString(rv.String())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return "[]"
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = formatValue(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			kv := reflect.ValueOf(k).Convert(rv.Type().Key())
			parts[i] = formatKey(k) + ": " + formatValue(rv.MapIndex(kv).Interface())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return formatString(fmt.Sprintf("%v", v))
}

// formatInt prints i as an integer expression. The most negative int64 has no
// literal form, since its magnitude overflows before negation.
func formatInt(i int64) string {
	if i == math.MinInt64 {
		return "(-9223372036854775807 - 1)"
	}
	return strconv.FormatInt(i, 10)
}

// formatString quotes s. Strings that are not valid UTF-8 are written as
// RawString("<hex>") so every byte survives the round trip.
func formatString(s string) string {
	if utf8.ValidString(s) {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("RawString(%q)", hex.EncodeToString([]byte(s)))
}

// formatKey renders a map key; non-literal keys are parenthesized.
func formatKey(k string) string {
	if utf8.ValidString(k) {
		return strconv.Quote(k)
	}
	return "(" + formatString(k) + ")"
}
