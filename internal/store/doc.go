// Package store persists normalized applicant rows in SQLite. The table is
// append-only from the pipeline's perspective: rows are inserted if their
// identity is absent and never updated or deleted. Schema changes bump the
// version in schema.go; the data is re-ingestable, so there are no
// migrations.
package store
