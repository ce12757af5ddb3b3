package worker

import "time"

// Status represents the current state of the worker pool
type Status string

const (
	StatusIdle         Status = "idle"
	StatusProcessing   Status = "processing"
	StatusShuttingDown Status = "shutting_down"
	StatusStopped      Status = "stopped"
)

// Stats provides runtime statistics about the worker pool
type Stats struct {
	ActiveWorkers  int
	CompletedTasks int
	FailedTasks    int
	Status         Status
	Uptime         time.Duration
}
