package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobState_String(t *testing.T) {
	assert.Equal(t, "idle", JobIdle.String())
	assert.Equal(t, "running", JobRunning.String())
	assert.Equal(t, "completed", JobCompleted.String())
	assert.Equal(t, "failed", JobFailed.String())
	assert.Equal(t, "unknown", JobState(42).String())
}

func TestJobState_IsTerminal(t *testing.T) {
	assert.False(t, JobIdle.IsTerminal())
	assert.False(t, JobRunning.IsTerminal())
	assert.True(t, JobCompleted.IsTerminal())
	assert.True(t, JobFailed.IsTerminal())
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0, ProgressNotStarted.Percent())
	assert.Equal(t, 0, ProgressRunning.Percent())
	assert.Equal(t, 100, ProgressDone.Percent())
	assert.True(t, ProgressRunning.IsIndeterminate())
	assert.False(t, ProgressDone.IsIndeterminate())
	assert.Equal(t, "running", ProgressRunning.String())
}
