package domain

import "errors"

var (
	// ErrJobNotFound is returned when a job id is not present in the store
	ErrJobNotFound = errors.New("job not found")

	// ErrJobAlreadySettled is returned when Settle is called on a job that
	// has already left the RUNNING state. This indicates a caller bug.
	ErrJobAlreadySettled = errors.New("job already settled")
)
