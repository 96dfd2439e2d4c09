package config

const (
	defaultDataDir            = "~/.local/share/gradetl"
	defaultLogDir             = "~/.local/share/gradetl/logs"
	defaultDatabaseFile       = "applicants.db"
	defaultLockFile           = "pipeline.lock"
	defaultReportFile         = "load_report.json"
	defaultSourceFile         = "applicant_data.json"
	defaultAPIBind            = "127.0.0.1:7733"
	defaultStandardizerURL    = "http://127.0.0.1:8000"
	defaultStandardizerWaitSc = 120
	defaultBatchSize          = 2000
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults. File paths
// under the data directory are resolved during normalization so that a
// custom data_dir carries them along.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Standardizer: Standardizer{
			URL:            defaultStandardizerURL,
			TimeoutSeconds: defaultStandardizerWaitSc,
		},
		Loader: Loader{
			BatchSize: defaultBatchSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
