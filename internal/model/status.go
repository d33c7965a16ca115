package model

// JobStatus represents the lifecycle state of a conversion job
type JobStatus string

const (
	// JobStatusStarting means the job has been accepted but the worker has not spawned yet
	JobStatusStarting JobStatus = "starting"

	// JobStatusConverting means the worker process is running
	JobStatusConverting JobStatus = "converting"

	// JobStatusCompleted means the worker finished successfully and results are on disk
	JobStatusCompleted JobStatus = "completed"

	// JobStatusFailed means the worker exited with an error
	JobStatusFailed JobStatus = "failed"
)

// String returns the string representation of JobStatus
func (js JobStatus) String() string {
	return string(js)
}

// IsActive returns true while the job's owning supervisor may still mutate its record
func (js JobStatus) IsActive() bool {
	return js == JobStatusStarting || js == JobStatusConverting
}

// IsTerminal returns true once the job can no longer change state
func (js JobStatus) IsTerminal() bool {
	return js == JobStatusCompleted || js == JobStatusFailed
}
