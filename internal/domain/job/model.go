package job

import "time"

// Name identifies a background job
type Name string

// Background jobs
const (
	OverdueSweep Name = "overdue_sweep"
	UsagePrune   Name = "usage_prune"
)

// ExecutionStatus represents the status of a job execution
type ExecutionStatus string

const (
	ExecutionStatusRunning   ExecutionStatus = "running"
	ExecutionStatusCompleted ExecutionStatus = "completed"
	ExecutionStatusFailed    ExecutionStatus = "failed"
)

// Execution represents a single run of a background job
type Execution struct {
	ID           string          `json:"id"`
	Job          Name            `json:"job"`
	Status       ExecutionStatus `json:"status"`
	Trigger      string          `json:"trigger"` // schedule or manual
	StartedAt    time.Time       `json:"started_at"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
	DurationMs   int64           `json:"duration_ms"`
	Affected     int64           `json:"affected"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

// Entry describes a registered job
type Entry struct {
	Name     Name       `json:"name"`
	Schedule string     `json:"schedule"`
	NextRun  *time.Time `json:"next_run,omitempty"`
	LastRun  *Execution `json:"last_run,omitempty"`
}
