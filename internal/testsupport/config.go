package testsupport

import (
	"path/filepath"
	"testing"

	"gradetl/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = base
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.DatabasePath = filepath.Join(base, "applicants.db")
	cfg.Paths.LockPath = filepath.Join(base, "pipeline.lock")
	cfg.Paths.ReportPath = filepath.Join(base, "load_report.json")
	cfg.Paths.SourceFile = filepath.Join(base, "applicant_data.json")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.Loader.BatchSize = 50

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}
