// Package busylock provides the durable mutual-exclusion token guarding
// pipeline runs. The token is a file, not an in-memory mutex, because the
// guarded resources (the upstream source and the shared applicants table)
// are shared across process restarts: two separate processes must never run
// the pipeline concurrently.
//
// There is no staleness detection. A process killed mid-run leaves the token
// behind and an operator removes it by hand (gradetl unlock); HeldSince
// exposes the token age so that call is an informed one.
package busylock

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrBusy signals that a pipeline run is already active. It is an expected
// outcome, not a fault; callers reject the new run immediately rather than
// queue behind the active one.
var ErrBusy = errors.New("pipeline run already in progress")

// State is the durable token content. It exists only while a run is active.
type State struct {
	RunID     string    `json:"run_id"`
	PID       int       `json:"pid"`
	CreatedAt time.Time `json:"created_at"`
}

// Lock is the process- and restart-spanning busy lock. The token file holds
// the run state; a flock on a sibling guard file makes token creation and
// removal atomic with respect to concurrent attempts from other processes.
type Lock struct {
	statePath string
	guard     *flock.Flock
}

// New constructs a lock whose token lives at statePath.
func New(statePath string) *Lock {
	return &Lock{
		statePath: statePath,
		guard:     flock.New(statePath + ".guard"),
	}
}

// Acquire attempts to claim the lock without blocking. It returns ErrBusy
// when another run holds it, in any process.
func (l *Lock) Acquire(runID string) (State, error) {
	if err := os.MkdirAll(filepath.Dir(l.statePath), 0o755); err != nil {
		return State{}, fmt.Errorf("create lock directory: %w", err)
	}

	held, err := l.guard.TryLock()
	if err != nil {
		return State{}, fmt.Errorf("acquire lock guard: %w", err)
	}
	if !held {
		return State{}, ErrBusy
	}
	defer func() { _ = l.guard.Unlock() }()

	state := State{
		RunID:     runID,
		PID:       os.Getpid(),
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(state)
	if err != nil {
		return State{}, fmt.Errorf("marshal lock state: %w", err)
	}

	// O_EXCL keeps a token left by a crashed run authoritative: a new run is
	// rejected until the stale token is removed by an operator.
	file, err := os.OpenFile(l.statePath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return State{}, ErrBusy
		}
		return State{}, fmt.Errorf("create lock token: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(l.statePath)
		return State{}, fmt.Errorf("write lock token: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(l.statePath)
		return State{}, fmt.Errorf("close lock token: %w", err)
	}
	return state, nil
}

// Release removes the token unconditionally. It must run on every exit path
// of a pipeline run; releasing an unheld lock is not an error.
func (l *Lock) Release() error {
	if err := l.guard.Lock(); err == nil {
		defer func() { _ = l.guard.Unlock() }()
	}
	if err := os.Remove(l.statePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove lock token: %w", err)
	}
	return nil
}

// IsHeld is a cheap non-mutating probe of the token.
func (l *Lock) IsHeld() bool {
	_, err := os.Stat(l.statePath)
	return err == nil
}

// Current returns the active token state, if any.
func (l *Lock) Current() (State, bool, error) {
	data, err := os.ReadFile(l.statePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return State{}, false, nil
		}
		return State{}, false, fmt.Errorf("read lock token: %w", err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		// A corrupt token still means something holds the lock.
		return State{}, true, fmt.Errorf("parse lock token: %w", err)
	}
	return state, true, nil
}

// HeldSince reports how long the current token has existed.
func (l *Lock) HeldSince() (time.Duration, bool) {
	state, held, err := l.Current()
	if err != nil || !held {
		return 0, held
	}
	return time.Since(state.CreatedAt), true
}

// Path returns the token file location.
func (l *Lock) Path() string {
	return l.statePath
}
