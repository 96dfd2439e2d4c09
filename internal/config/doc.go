// Package config loads, normalizes, and validates gradetl's TOML
// configuration. Paths are tilde-expanded and resolved to absolute form;
// file locations default to the data directory so a single data_dir
// override relocates everything together.
package config
