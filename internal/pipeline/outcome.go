package pipeline

import "gradetl/internal/loader"

// Stage names one sequential phase of a pipeline run. Failure outcomes carry
// the stage that faulted so operators can tell a source outage from a
// database outage.
type Stage string

const (
	StageLock        Stage = "lock"
	StageFetch       Stage = "fetch"
	StageDiff        Stage = "diff"
	StageStandardize Stage = "standardize"
	StageLoad        Stage = "load"
	StageUnknown     Stage = "unknown"
)

// Outcome is the terminal result of one run request. Exactly one of three
// shapes applies: Busy (another run holds the lock), Failure (Err set,
// Stage names the faulting phase), or Success (Report set).
type Outcome struct {
	RunID  string
	Busy   bool
	Stage  Stage
	Err    error
	Report *loader.Report
}

// Success reports whether the run completed and produced a load report.
func (o Outcome) Success() bool {
	return !o.Busy && o.Err == nil
}
