package jsonl

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p829911/optuna/pkg/types"
)

func sampleTrials() []types.FrozenTrial {
	start := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	complete := start.Add(time.Minute)
	v := 1.5
	return []types.FrozenTrial{
		types.NewFrozenTrial(1, 11, types.TrialStateComplete, &v, &start, &complete,
			map[string]any{"x": 2.0},
			map[string]types.Distribution{"x": types.UniformDistribution{Low: 0, High: 4}},
			nil, nil, map[int]float64{0: 3}),
		types.NewFrozenTrial(0, 10, types.TrialStateRunning, nil, &start, nil,
			nil, nil, map[string]any{"k": "v"}, nil, nil),
	}
}

func TestWriteThenRead(t *testing.T) {
	trials := sampleTrials()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, trials))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))

	entries, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for i, e := range entries {
		require.NoError(t, e.Err)
		assert.Equal(t, i+1, e.Line)
		assert.True(t, trials[i].Equal(e.Trial))
	}
}

func TestReadReportsMalformedLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleTrials()[:1]))
	buf.WriteString("\n   \n{not json}\n")
	buf.WriteString(`{"number": 3, "trial_id": 3, "state": "DONE"}` + "\n")

	entries, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.NoError(t, entries[0].Err)
	assert.Equal(t, 4, entries[1].Line)
	assert.ErrorContains(t, entries[1].Err, "line 4")
	assert.Equal(t, 5, entries[2].Line)
	assert.ErrorIs(t, entries[2].Err, types.ErrInvalidState)

	_, err = Trials(entries)
	assert.Error(t, err)
	got, err := Trials(entries[:1])
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trials.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	require.NoError(t, WriteFile(path, sampleTrials()))

	entries, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	leftovers, err := filepath.Glob(filepath.Join(dir, ".jsonl-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestWriteFileMissingDir(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "trials.jsonl"), sampleTrials())
	assert.Error(t, err)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.jsonl"))
	assert.Error(t, err)
}
