package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistributionContains(t *testing.T) {
	tests := []struct {
		name  string
		dist  Distribution
		value any
		want  bool
	}{
		{"uniform inside", UniformDistribution{Low: 5, High: 12}, 10, true},
		{"uniform float inside", UniformDistribution{Low: 0, High: 1}, 0.1, true},
		{"uniform lower bound", UniformDistribution{Low: 0, High: 1}, 0.0, true},
		{"uniform upper bound", UniformDistribution{Low: 0, High: 1}, 1, true},
		{"uniform below", UniformDistribution{Low: 0, High: 1}, -0.5, false},
		{"uniform above", UniformDistribution{Low: 0, High: 1}, 1.5, false},
		{"uniform string", UniformDistribution{Low: 0, High: 1}, "0.5", false},
		{"uniform bool", UniformDistribution{Low: 0, High: 1}, true, false},
		{"uniform nil", UniformDistribution{Low: 0, High: 1}, nil, false},
		{"log uniform inside", LogUniformDistribution{Low: 1e-5, High: 1}, 1e-3, true},
		{"log uniform outside", LogUniformDistribution{Low: 1e-5, High: 1}, 2, false},
		{"discrete on grid", DiscreteUniformDistribution{Low: 0, High: 1, Q: 0.1}, 0.3, true},
		{"discrete off grid", DiscreteUniformDistribution{Low: 0, High: 1, Q: 0.1}, 0.35, false},
		{"discrete outside", DiscreteUniformDistribution{Low: 0, High: 1, Q: 0.1}, 1.1, false},
		{"discrete zero step", DiscreteUniformDistribution{Low: 2, High: 2, Q: 0}, 2, true},
		{"int inside", IntUniformDistribution{Low: 1, High: 10}, 5, true},
		{"int integral float", IntUniformDistribution{Low: 1, High: 10}, 5.0, true},
		{"int fractional", IntUniformDistribution{Low: 1, High: 10}, 5.5, false},
		{"int outside", IntUniformDistribution{Low: 1, High: 10}, int64(11), false},
		{"categorical string", CategoricalDistribution{Choices: []any{"adam", "sgd"}}, "sgd", true},
		{"categorical number kind", CategoricalDistribution{Choices: []any{1, 2.5}}, 1.0, true},
		{"categorical nil choice", CategoricalDistribution{Choices: []any{nil, true}}, nil, true},
		{"categorical missing", CategoricalDistribution{Choices: []any{"adam", "sgd"}}, "rmsprop", false},
		{"categorical empty", CategoricalDistribution{}, "adam", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dist.Contains(tt.value))
		})
	}
}

func TestDistributionEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Distribution
		want bool
	}{
		{"uniform same", UniformDistribution{0, 1}, UniformDistribution{0, 1}, true},
		{"uniform pointer", UniformDistribution{0, 1}, &UniformDistribution{0, 1}, true},
		{"uniform bounds", UniformDistribution{0, 1}, UniformDistribution{0, 2}, false},
		{"uniform vs log", UniformDistribution{0, 1}, LogUniformDistribution{0, 1}, false},
		{"log same", LogUniformDistribution{1, 2}, LogUniformDistribution{1, 2}, true},
		{"discrete step", DiscreteUniformDistribution{0, 1, 0.1}, DiscreteUniformDistribution{0, 1, 0.2}, false},
		{"int same", IntUniformDistribution{1, 3}, &IntUniformDistribution{1, 3}, true},
		{"int vs uniform", IntUniformDistribution{1, 3}, UniformDistribution{1, 3}, false},
		{"categorical same", CategoricalDistribution{[]any{"a", 1}}, CategoricalDistribution{[]any{"a", 1.0}}, true},
		{"categorical order", CategoricalDistribution{[]any{"a", "b"}}, CategoricalDistribution{[]any{"b", "a"}}, false},
		{"categorical nil pointer", CategoricalDistribution{[]any{"a"}}, (*CategoricalDistribution)(nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}
