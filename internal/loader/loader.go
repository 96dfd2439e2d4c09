// Package loader persists normalized applicant records in fixed-size atomic
// batches with insert-if-absent semantics, making repeated loads of
// overlapping data safe by construction. Each load attempt yields a Report
// reconciling every record handed in.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"gradetl/internal/logging"
	"gradetl/internal/records"
	"gradetl/internal/store"
)

const sampleIDLimit = 5

// BatchError reports the batch that aborted a load. Batches committed before
// it stay committed; the insert-if-absent semantic makes re-running the load
// safe without rollback.
type BatchError struct {
	Batch     int
	Committed int
	Err       error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("load batch %d failed after %d committed: %v", e.Batch, e.Committed, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// Loader writes candidate records to the applicants store.
type Loader struct {
	store     *store.Store
	batchSize int
	logger    *slog.Logger
}

// New constructs a loader. batchSize bounds records per transaction.
func New(st *store.Store, batchSize int, logger *slog.Logger) *Loader {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Loader{
		store:     st,
		batchSize: batchSize,
		logger:    logging.NewComponentLogger(logger, "loader"),
	}
}

// Load persists the merged candidate set. Candidates without an identity are
// skipped and counted, never inserted. Rows whose identity already exists
// are silent no-ops counted as already-present skips. The returned Report is
// non-nil even on failure and reflects the committed state at that point.
func (l *Loader) Load(ctx context.Context, runID string, candidates []records.Candidate) (*Report, error) {
	report := &Report{
		ReportID:  uuid.NewString(),
		RunID:     runID,
		StartedAt: time.Now().UTC(),
		Issues:    make(map[records.IssueKind]int),
	}

	batch := make([]records.Applicant, 0, l.batchSize)
	pending := make([]records.IssueKind, 0, l.batchSize)
	batchIndex := 0

	// Field issues for batched candidates are tallied only once their batch
	// commits, so a failed report never counts records it did not consume.
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		insertedIDs, err := l.store.InsertBatch(ctx, batch)
		if err != nil {
			report.FinishedAt = time.Now().UTC()
			return &BatchError{Batch: batchIndex, Committed: report.Batches, Err: err}
		}
		duplicates := len(batch) - len(insertedIDs)
		report.Loaded += len(batch)
		report.Inserted += len(insertedIDs)
		report.Skipped += duplicates
		if duplicates > 0 {
			report.Issues[records.IssueAlreadyPresent] += duplicates
		}
		for _, issue := range pending {
			report.Issues[issue]++
		}
		for _, id := range insertedIDs {
			if len(report.SampleInsertedIDs) < sampleIDLimit {
				report.SampleInsertedIDs = append(report.SampleInsertedIDs, id)
			}
		}
		report.Batches++
		batchIndex++
		batch = batch[:0]
		pending = pending[:0]
		return nil
	}

	for _, candidate := range candidates {
		if !candidate.Identified {
			for _, issue := range candidate.Issues {
				report.Issues[issue]++
			}
			report.Loaded++
			report.Skipped++
			continue
		}
		batch = append(batch, candidate.Record)
		pending = append(pending, candidate.Issues...)
		if len(batch) == l.batchSize {
			if err := flush(); err != nil {
				return report, err
			}
		}
	}
	if err := flush(); err != nil {
		return report, err
	}

	report.FinishedAt = time.Now().UTC()
	l.logger.Info("load complete",
		logging.Args(
			logging.String("run_id", runID),
			logging.Int("loaded", report.Loaded),
			logging.Int("inserted", report.Inserted),
			logging.Int("skipped", report.Skipped),
			logging.Int("batches", report.Batches),
		)...)
	return report, nil
}
