package domain

// JobState is the fragmentation job state machine:
// idle -> running -> {completed, failed} -> idle.
type JobState int

const (
	// JobIdle means no job has been submitted since the last reset.
	JobIdle JobState = iota
	// JobRunning means a job is waiting on the engine.
	JobRunning
	// JobCompleted means the last job returned outcomes.
	JobCompleted
	// JobFailed means the last job returned an error.
	JobFailed
)

// String returns the string representation of the job state.
func (s JobState) String() string {
	switch s {
	case JobIdle:
		return "idle"
	case JobRunning:
		return "running"
	case JobCompleted:
		return "completed"
	case JobFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal returns true for completed and failed.
func (s JobState) IsTerminal() bool {
	return s == JobCompleted || s == JobFailed
}

// Progress is the job progress as observed through the engine boundary.
// The boundary has no incremental channel, so progress is a tri-state.
type Progress int

const (
	// ProgressNotStarted means no job is running or finished.
	ProgressNotStarted Progress = iota
	// ProgressRunning means the engine has not answered yet (indeterminate).
	ProgressRunning
	// ProgressDone means the engine answered.
	ProgressDone
)

// Percent maps progress to a bar value: 0 until the engine answers, then 100.
func (p Progress) Percent() int {
	if p == ProgressDone {
		return 100
	}
	return 0
}

// IsIndeterminate returns true while the engine is working.
func (p Progress) IsIndeterminate() bool {
	return p == ProgressRunning
}

// String returns the string representation of the progress.
func (p Progress) String() string {
	switch p {
	case ProgressNotStarted:
		return "not_started"
	case ProgressRunning:
		return "running"
	case ProgressDone:
		return "done"
	default:
		return "unknown"
	}
}
