package recorder

import "time"

// Delivery statuses for one subscriber within a run.
const (
	StatusNotified = "NOTIFIED"
	StatusSkipped  = "NO_EXCEEDANCE"
	StatusFailed   = "FAILED"
)

// Delivery records one subscriber's outcome.
type Delivery struct {
	Email       string
	Area        string
	Status      string
	Stage       string // fetch/render/compose/dispatch, set when Status is FAILED
	Exceedances int
	Error       string
}

// RunSummary records one completed pipeline run.
type RunSummary struct {
	StartedAt   time.Time
	Subscribers int
	Notified    int
	Skipped     int
	Failed      int
}

// Recorder persists run history for operators. It is an audit log only; the
// pipeline never reads it back to suppress or dedup notifications.
type Recorder interface {
	RecordRun(sum *RunSummary, deliveries []Delivery) error
	Close() error
}
