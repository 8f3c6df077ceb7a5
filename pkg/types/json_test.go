package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRichTrial exercises every distribution variant and value kind.
func newRichTrial() FrozenTrial {
	start := time.Date(2026, 3, 4, 5, 6, 7, 123456789, time.FixedZone("CET", 3600))
	complete := start.Add(2*time.Minute + 5*time.Millisecond)
	return NewFrozenTrial(
		4, 17, TrialStatePruned, nil,
		&start, &complete,
		map[string]any{
			"lr":        0.001,
			"layers":    3,
			"dropout":   0.5,
			"optimizer": "adam",
			"bias":      true,
			"units":     64.0,
		},
		map[string]Distribution{
			"lr":        LogUniformDistribution{Low: 1e-5, High: 1e-1},
			"layers":    IntUniformDistribution{Low: 1, High: 8},
			"dropout":   DiscreteUniformDistribution{Low: 0, High: 1, Q: 0.25},
			"optimizer": CategoricalDistribution{Choices: []any{"adam", "sgd", nil}},
			"bias":      CategoricalDistribution{Choices: []any{true, false}},
			"units":     UniformDistribution{Low: 16, High: 128},
		},
		map[string]any{
			"note":   "line1\n\"quoted\" ünïcode",
			"nested": map[string]any{"a": []any{1, 2.5, "x"}, "b": nil},
		},
		map[string]any{"seed": 42, "sampler": "tpe"},
		map[int]float64{0: 0.9, 1: 0.75, 10: 0.5},
	)
}

func TestFrozenTrialJSONRoundTrip(t *testing.T) {
	for name, tr := range map[string]FrozenTrial{
		"reference": newValidTrial(),
		"rich":      newRichTrial(),
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, tr.Validate())

			data, err := json.Marshal(tr)
			require.NoError(t, err)

			var got FrozenTrial
			require.NoError(t, json.Unmarshal(data, &got))
			assert.True(t, tr.Equal(got), "decoded trial differs:\n%s\n%s", tr, got)
			assert.NoError(t, got.Validate())
		})
	}
}

func TestFrozenTrialJSONLayout(t *testing.T) {
	data, err := json.Marshal(newValidTrial())
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, "COMPLETE", rec["state"])
	assert.Equal(t, 0.2, rec["value"])
	assert.Equal(t, "2026-01-02T03:04:05.0000006Z", rec["datetime_start"])
	assert.Equal(t, map[string]any{
		"x": map[string]any{
			"name":       "UniformDistribution",
			"attributes": map[string]any{"low": 5.0, "high": 12.0},
		},
	}, rec["distributions"])
}

func TestFrozenTrialUnmarshalNumberKinds(t *testing.T) {
	src := `{"number": 1, "trial_id": 2, "state": "RUNNING", "value": null,
		"datetime_start": "2026-01-01T00:00:00Z", "datetime_complete": null,
		"params": {"i": 3, "f": 3.5, "e": 1e2},
		"distributions": {
			"i": {"name": "IntUniformDistribution", "attributes": {"low": 0, "high": 5}},
			"f": {"name": "UniformDistribution", "attributes": {"low": 0, "high": 5}},
			"e": {"name": "UniformDistribution", "attributes": {"low": 0, "high": 500}}
		}}`

	var tr FrozenTrial
	require.NoError(t, json.Unmarshal([]byte(src), &tr))
	assert.Equal(t, int64(3), tr.Params["i"])
	assert.Equal(t, 3.5, tr.Params["f"])
	assert.Equal(t, 100.0, tr.Params["e"])
	assert.NotNil(t, tr.UserAttrs)
	assert.NotNil(t, tr.IntermediateValues)
	assert.NoError(t, tr.Validate())
}

func TestFrozenTrialUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{
			name:    "unknown state",
			src:     `{"number": 0, "trial_id": 0, "state": "WAITING"}`,
			wantErr: ErrInvalidState,
		},
		{
			name:    "empty state",
			src:     `{"number": 0, "trial_id": 0, "state": ""}`,
			wantErr: ErrInvalidState,
		},
		{
			name:    "missing state",
			src:     `{"number": 0, "trial_id": 0, "datetime_start": "2026-01-02T03:04:05Z", "datetime_complete": "2026-01-02T03:05:05Z"}`,
			wantErr: ErrMissingField,
		},
		{
			name:    "missing number",
			src:     `{"trial_id": 0, "state": "RUNNING"}`,
			wantErr: ErrMissingField,
		},
		{
			name:    "null trial_id",
			src:     `{"number": 0, "trial_id": null, "state": "RUNNING"}`,
			wantErr: ErrMissingField,
		},
		{
			name: "unknown distribution",
			src: `{"number": 0, "trial_id": 0, "state": "RUNNING",
				"distributions": {"x": {"name": "NormalDistribution", "attributes": {}}}}`,
			wantErr: ErrUnknownDistribution,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tr FrozenTrial
			err := json.Unmarshal([]byte(tt.src), &tr)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDistributionJSON(t *testing.T) {
	dists := []Distribution{
		UniformDistribution{Low: 5, High: 12},
		LogUniformDistribution{Low: 1e-5, High: 1},
		DiscreteUniformDistribution{Low: 0, High: 10, Q: 2},
		IntUniformDistribution{Low: -3, High: 3},
		CategoricalDistribution{Choices: []any{"a", 1, 2.5, nil, false}},
		CategoricalDistribution{},
	}

	for _, d := range dists {
		s, err := DistributionToJSON(d)
		require.NoError(t, err)

		got, err := JSONToDistribution(s)
		require.NoError(t, err, s)
		assert.True(t, d.Equal(got), "%s decoded as %#v", s, got)
	}

	s, err := DistributionToJSON(&IntUniformDistribution{Low: 1, High: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "IntUniformDistribution", "attributes": {"low": 1, "high": 2}}`, s)

	_, err = JSONToDistribution(`{"name": "IntUniformDistribution", "attributes": {"low": 0.5, "high": 2}}`)
	assert.Error(t, err)
}
