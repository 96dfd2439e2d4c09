package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateStandardizer(); err != nil {
		return err
	}
	if err := c.validateLoader(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.DatabasePath == "" {
		return errors.New("paths.database_path must be set")
	}
	if c.Paths.LockPath == "" {
		return errors.New("paths.lock_path must be set")
	}
	if c.Paths.LockPath == c.Paths.DatabasePath {
		return errors.New("paths.lock_path must not equal paths.database_path")
	}
	return nil
}

func (c *Config) validateStandardizer() error {
	parsed, err := url.Parse(c.Standardizer.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("standardizer.url %q is not a valid http(s) URL", c.Standardizer.URL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("standardizer.url scheme %q must be http or https", parsed.Scheme)
	}
	if c.Standardizer.TimeoutSeconds <= 0 {
		return errors.New("standardizer.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLoader() error {
	if c.Loader.BatchSize <= 0 {
		return errors.New("loader.batch_size must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not a recognized level", c.Logging.Level)
	}
	return nil
}
