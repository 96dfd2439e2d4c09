// Package pipeline orchestrates one ingestion run: acquire the busy lock,
// fetch raw records, diff against persisted identities, standardize the new
// delta, and load the merged set idempotently. A run is a single sequential
// unit of work; concurrent requests receive an immediate Busy outcome
// instead of queuing, and the lock is released on every exit path.
package pipeline
