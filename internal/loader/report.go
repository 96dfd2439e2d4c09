package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gradetl/internal/records"
)

// Report is the audit artifact produced by every load attempt. Counts
// reconcile exactly: Loaded == Inserted + Skipped, and Skipped equals the
// sum of record-level rejection issues (missing identity, already present).
type Report struct {
	ReportID   string    `json:"report_id"`
	RunID      string    `json:"run_id,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Loaded   int `json:"loaded"`
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
	Batches  int `json:"batches_committed"`

	Issues map[records.IssueKind]int `json:"issues"`

	SampleInsertedIDs []int64 `json:"sample_inserted_ids"`
}

// WriteFile persists the report as pretty-printed JSON, replacing any
// previous artifact atomically so readers never observe a torn file.
func (r *Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace report: %w", err)
	}
	return nil
}

// ReadReport loads a previously written audit artifact.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &report, nil
}
