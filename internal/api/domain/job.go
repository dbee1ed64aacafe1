package domain

import "time"

// Job status constants. A job is created RUNNING and settles exactly once.
const (
	JobStatusRunning   = "RUNNING"
	JobStatusCompleted = "COMPLETED"
	JobStatusFailed    = "FAILED"
)

// Sending mode constants
const (
	ModeIndividual = "individual"
	ModeBatch      = "batch"
)

// Job represents one email send operation, tracked from submission until it
// settles as COMPLETED or FAILED.
type Job struct {
	JobID     string
	Status    string
	Sent      int
	Total     int
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Settled reports whether the job has left the RUNNING state.
func (j *Job) Settled() bool {
	return j.Status != JobStatusRunning
}

// ValidMode reports whether mode is a supported sending mode.
func ValidMode(mode string) bool {
	return mode == ModeIndividual || mode == ModeBatch
}
