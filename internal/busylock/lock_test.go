package busylock_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gradetl/internal/busylock"
)

func newLock(t *testing.T) *busylock.Lock {
	t.Helper()
	return busylock.New(filepath.Join(t.TempDir(), "pipeline.lock"))
}

func TestAcquireRelease(t *testing.T) {
	lock := newLock(t)

	state, err := lock.Acquire("run-1")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if state.RunID != "run-1" || state.PID != os.Getpid() {
		t.Fatalf("unexpected token state: %+v", state)
	}
	if !lock.IsHeld() {
		t.Fatal("expected lock to be held after acquire")
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if lock.IsHeld() {
		t.Fatal("expected lock to be free after release")
	}

	// Releasing an unheld lock is not an error.
	if err := lock.Release(); err != nil {
		t.Fatalf("double release: %v", err)
	}
}

func TestAcquireWhileHeldIsBusy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.lock")
	first := busylock.New(path)
	second := busylock.New(path)

	if _, err := first.Acquire("run-1"); err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if _, err := second.Acquire("run-2"); err != busylock.ErrBusy {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := second.Acquire("run-2"); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
}

func TestConcurrentAcquireGrantsExactlyOne(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.lock")

	const attempts = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0
	busy := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lock := busylock.New(path)
			_, err := lock.Acquire("contender")
			mu.Lock()
			defer mu.Unlock()
			switch err {
			case nil:
				granted++
			case busylock.ErrBusy:
				busy++
			default:
				t.Errorf("unexpected acquire error: %v", err)
			}
		}()
	}
	wg.Wait()

	if granted != 1 {
		t.Fatalf("expected exactly one grant, got %d (busy %d)", granted, busy)
	}
	if busy != attempts-1 {
		t.Fatalf("expected %d busy rejections, got %d", attempts-1, busy)
	}
}

func TestCurrentAndHeldSince(t *testing.T) {
	lock := newLock(t)

	if _, held, err := lock.Current(); held || err != nil {
		t.Fatalf("expected no token, got held=%v err=%v", held, err)
	}
	if _, held := lock.HeldSince(); held {
		t.Fatal("expected HeldSince to report unheld")
	}

	if _, err := lock.Acquire("run-1"); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	state, held, err := lock.Current()
	if err != nil || !held {
		t.Fatalf("expected token, got held=%v err=%v", held, err)
	}
	if state.RunID != "run-1" {
		t.Fatalf("unexpected state: %+v", state)
	}
	if time.Since(state.CreatedAt) < 0 {
		t.Fatalf("token created in the future: %v", state.CreatedAt)
	}

	age, held := lock.HeldSince()
	if !held || age < 0 {
		t.Fatalf("expected positive age while held, got age=%v held=%v", age, held)
	}
}

func TestCurrentCorruptTokenStillHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.lock")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write corrupt token: %v", err)
	}

	lock := busylock.New(path)
	_, held, err := lock.Current()
	if !held {
		t.Fatal("a corrupt token still means the lock is held")
	}
	if err == nil {
		t.Fatal("expected parse error for corrupt token")
	}
	if _, acquireErr := lock.Acquire("run-1"); acquireErr != busylock.ErrBusy {
		t.Fatalf("expected ErrBusy against corrupt token, got %v", acquireErr)
	}
}
