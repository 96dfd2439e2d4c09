// Package logging builds the slog loggers used across gradetl. It provides
// a console handler for interactive use, a JSON handler for machine
// consumption, attribute helpers, and component-scoped loggers.
package logging
