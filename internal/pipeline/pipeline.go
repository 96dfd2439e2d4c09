package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"gradetl/internal/busylock"
	"gradetl/internal/config"
	"gradetl/internal/diff"
	"gradetl/internal/identity"
	"gradetl/internal/loader"
	"gradetl/internal/logging"
	"gradetl/internal/normalize"
	"gradetl/internal/records"
	"gradetl/internal/store"
)

// Fetcher produces the finite, restartable sequence of raw records. It may
// repeat records from earlier runs; the diff stage narrows those away.
type Fetcher interface {
	Fetch(ctx context.Context) ([]records.Raw, error)
}

// Standardizer enriches applicants with canonical university and program
// names. It is invoked only for records the diff stage marked new.
type Standardizer interface {
	Standardize(ctx context.Context, apps []records.Applicant) ([]records.Applicant, error)
}

// Runner sequences the fetch, diff, standardize, and load stages into one
// pipeline run guarded by the busy lock.
type Runner struct {
	cfg          *config.Config
	logger       *slog.Logger
	store        *store.Store
	lock         *busylock.Lock
	fetcher      Fetcher
	standardizer Standardizer
	loader       *loader.Loader
}

// NewRunner constructs a pipeline runner around the given collaborators.
func NewRunner(cfg *config.Config, st *store.Store, fetcher Fetcher, standardizer Standardizer, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:          cfg,
		logger:       logging.NewComponentLogger(logger, "pipeline"),
		store:        st,
		lock:         busylock.New(cfg.Paths.LockPath),
		fetcher:      fetcher,
		standardizer: standardizer,
		loader:       loader.New(st, cfg.Loader.BatchSize, logger),
	}
}

// Run executes one pipeline run. It never blocks waiting for an active run:
// when the lock is held the outcome is Busy and no stage advances. The lock
// is released on every other path out, including panics, which surface as a
// Failure with stage "unknown".
func (r *Runner) Run(ctx context.Context) Outcome {
	runID := uuid.NewString()

	if _, err := r.lock.Acquire(runID); err != nil {
		if errors.Is(err, busylock.ErrBusy) {
			r.logger.Info("run rejected, pipeline busy", logging.String("run_id", runID))
			return Outcome{RunID: runID, Busy: true}
		}
		return Outcome{RunID: runID, Stage: StageLock, Err: err}
	}

	outcome := Outcome{RunID: runID, Stage: StageUnknown, Err: errors.New("run terminated before any stage completed")}
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				outcome = Outcome{RunID: runID, Stage: StageUnknown, Err: fmt.Errorf("unexpected fault: %v", rec)}
			}
		}()
		outcome = r.execute(ctx, runID)
	}()

	if err := r.lock.Release(); err != nil {
		r.logger.Warn("failed to release pipeline lock",
			logging.Args(logging.String("run_id", runID), logging.Error(err))...)
	}

	switch {
	case outcome.Success():
		r.logger.Info("pipeline run complete",
			logging.Args(
				logging.String("run_id", runID),
				logging.Int("inserted", outcome.Report.Inserted),
				logging.Int("skipped", outcome.Report.Skipped),
			)...)
	default:
		r.logger.Error("pipeline run failed",
			logging.Args(
				logging.String("run_id", runID),
				logging.String("stage", string(outcome.Stage)),
				logging.Error(outcome.Err),
			)...)
	}
	return outcome
}

func (r *Runner) execute(ctx context.Context, runID string) Outcome {
	started := time.Now()

	raws, err := r.fetcher.Fetch(ctx)
	if err != nil {
		return Outcome{RunID: runID, Stage: StageFetch, Err: err}
	}
	r.logger.Info("fetched records",
		logging.Args(logging.String("run_id", runID), logging.Int("records", len(raws)))...)

	known, err := r.store.KnownIdentities(ctx)
	if err != nil {
		return Outcome{RunID: runID, Stage: StageDiff, Err: err}
	}
	seen, fresh := diff.Partition(raws, known)
	r.logger.Info("diffed against persisted identities",
		logging.Args(
			logging.String("run_id", runID),
			logging.Int("known", len(seen)),
			logging.Int("new", len(fresh)),
		)...)

	freshCands := prepare(fresh)
	if err := r.standardizeNew(ctx, freshCands); err != nil {
		return Outcome{RunID: runID, Stage: StageStandardize, Err: err}
	}

	// The loader sees the full merged set; previously-seen records become
	// already-present no-ops, which keeps repeated runs idempotent.
	merged := append(freshCands, prepare(seen)...)
	report, err := r.loader.Load(ctx, runID, merged)
	if report != nil {
		if writeErr := report.WriteFile(r.cfg.Paths.ReportPath); writeErr != nil {
			if err == nil {
				err = writeErr
			} else {
				r.logger.Warn("failed to write load report",
					logging.Args(logging.String("run_id", runID), logging.Error(writeErr))...)
			}
		}
	}
	if err != nil {
		return Outcome{RunID: runID, Stage: StageLoad, Err: err}
	}

	r.logger.Debug("run timing",
		logging.Args(logging.String("run_id", runID), logging.Duration("elapsed", time.Since(started)))...)
	return Outcome{RunID: runID, Report: report}
}

// standardizeNew enriches the identified subset of new candidates in place.
// Unidentified candidates are never enriched; they flow to the loader only
// to be counted as skipped.
func (r *Runner) standardizeNew(ctx context.Context, candidates []records.Candidate) error {
	indexes := make([]int, 0, len(candidates))
	apps := make([]records.Applicant, 0, len(candidates))
	for i, candidate := range candidates {
		if candidate.Identified {
			indexes = append(indexes, i)
			apps = append(apps, candidate.Record)
		}
	}
	if len(apps) == 0 {
		return nil
	}

	enriched, err := r.standardizer.Standardize(ctx, apps)
	if err != nil {
		return err
	}
	if len(enriched) != len(apps) {
		return fmt.Errorf("standardizer returned %d records for %d inputs", len(enriched), len(apps))
	}
	for j, i := range indexes {
		candidates[i].Record = enriched[j]
	}
	return nil
}

// prepare resolves identity and normalizes each raw record into a loader
// candidate.
func prepare(raws []records.Raw) []records.Candidate {
	candidates := make([]records.Candidate, 0, len(raws))
	for _, raw := range raws {
		app, issues := normalize.Record(raw)
		id, ok := identity.Resolve(raw)
		if ok {
			app.ID = id
		} else {
			issues = append(issues, records.IssueMissingIdentity)
		}
		candidates = append(candidates, records.Candidate{Record: app, Issues: issues, Identified: ok})
	}
	return candidates
}

// Busy is a cheap probe for callers that want to preemptively reject work
// without attempting acquisition.
func (r *Runner) Busy() bool {
	return r.lock.IsHeld()
}

// LockState exposes the current lock token for status reporting.
func (r *Runner) LockState() (busylock.State, bool, error) {
	return r.lock.Current()
}

// Unlock removes the lock token. This is the manual remedy for a token left
// behind by a crashed run.
func (r *Runner) Unlock() error {
	return r.lock.Release()
}
