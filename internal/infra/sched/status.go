package sched

import "time"

// JobStatus is the introspection snapshot one worker exposes to operators.
type JobStatus struct {
	Name       string    `json:"name"`
	Running    bool      `json:"running"`
	Processing bool      `json:"processing"`
	LastRun    time.Time `json:"last_run,omitempty"`
	NextRun    time.Time `json:"next_run,omitempty"`
	LastError  string    `json:"last_error,omitempty"`
}

// StatusReporter is implemented by every periodic worker.
type StatusReporter interface {
	Status() JobStatus
}
