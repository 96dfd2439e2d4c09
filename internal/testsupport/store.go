package testsupport

import (
	"testing"

	"gradetl/internal/config"
	"gradetl/internal/store"
)

// MustOpenStore opens the applicants store for a test config and closes it
// when the test finishes.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return st
}
