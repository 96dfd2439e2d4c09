package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing config")
	}
	if path == "" {
		t.Fatal("expected resolved path even when file is missing")
	}
	if cfg.Loader.BatchSize != defaultBatchSize {
		t.Fatalf("expected default batch size %d, got %d", defaultBatchSize, cfg.Loader.BatchSize)
	}
	if cfg.Standardizer.URL != defaultStandardizerURL {
		t.Fatalf("expected default standardizer url, got %q", cfg.Standardizer.URL)
	}
	if cfg.Paths.APIBind != defaultAPIBind {
		t.Fatalf("expected default api bind, got %q", cfg.Paths.APIBind)
	}
	if !filepath.IsAbs(cfg.Paths.DataDir) {
		t.Fatalf("data dir must be absolute after normalize, got %q", cfg.Paths.DataDir)
	}
}

func TestLoadParsesFileAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + dir + `/data"

[standardizer]
url = "http://standardizer.internal:8000/"
timeout_seconds = 30

[loader]
batch_size = 500

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config found at %s, got %s exists=%v", path, resolved, exists)
	}
	if cfg.Loader.BatchSize != 500 || cfg.Standardizer.TimeoutSeconds != 30 {
		t.Fatalf("values not applied: %+v", cfg)
	}
	if cfg.Standardizer.URL != "http://standardizer.internal:8000" {
		t.Fatalf("trailing slash must be trimmed, got %q", cfg.Standardizer.URL)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging values not lowercased: %+v", cfg.Logging)
	}

	// File paths default under the custom data dir.
	wantDB := filepath.Join(dir, "data", "applicants.db")
	if cfg.Paths.DatabasePath != wantDB {
		t.Fatalf("expected database under data dir: got %q want %q", cfg.Paths.DatabasePath, wantDB)
	}
	wantLock := filepath.Join(dir, "data", "pipeline.lock")
	if cfg.Paths.LockPath != wantLock {
		t.Fatalf("expected lock under data dir: got %q want %q", cfg.Paths.LockPath, wantLock)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad log format",
			content: "[logging]\nformat = \"xml\"\n",
			wantErr: "logging.format",
		},
		{
			name:    "bad standardizer scheme",
			content: "[standardizer]\nurl = \"ftp://host\"\n",
			wantErr: "standardizer.url",
		},
		{
			name:    "malformed toml",
			content: "[paths\n",
			wantErr: "parse config",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := Load(path)
			if err == nil {
				t.Fatal("expected load to fail")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestStandardizerURLFromEnv(t *testing.T) {
	t.Setenv("GRADETL_STANDARDIZER_URL", "http://env-host:9000/")

	cfg := Config{}
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Standardizer.URL != "http://env-host:9000" {
		t.Fatalf("expected env url, got %q", cfg.Standardizer.URL)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	got, err := expandPath("~/data/file.db")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, "data", "file.db") {
		t.Fatalf("tilde not expanded: %q", got)
	}

	got, err = expandPath("~")
	if err != nil {
		t.Fatalf("expand bare tilde: %v", err)
	}
	if got != home {
		t.Fatalf("expected home for bare tilde, got %q", got)
	}
}

func TestValidateLockAndDatabaseDistinct(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	cfg.Paths.LockPath = cfg.Paths.DatabasePath
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation to reject lock path equal to database path")
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}

	// The sample must itself be loadable.
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}
