package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrialStateIsFinished(t *testing.T) {
	assert.False(t, TrialStateRunning.IsFinished())
	assert.True(t, TrialStateComplete.IsFinished())
	assert.True(t, TrialStatePruned.IsFinished())
	assert.True(t, TrialStateFail.IsFinished())
}

func TestParseTrialState(t *testing.T) {
	for _, s := range TrialStates {
		got, err := ParseTrialState(string(s))
		assert.NoError(t, err)
		assert.Equal(t, s, got)
	}

	for _, s := range []string{"", "running", "WAITING"} {
		_, err := ParseTrialState(s)
		assert.ErrorIs(t, err, ErrInvalidState, "ParseTrialState(%q)", s)
	}
}

func TestParseStudyDirection(t *testing.T) {
	got, err := ParseStudyDirection("MAXIMIZE")
	assert.NoError(t, err)
	assert.Equal(t, StudyDirectionMaximize, got)

	_, err = ParseStudyDirection("maximize")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}
