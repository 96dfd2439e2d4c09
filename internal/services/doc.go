// Package services provides the shared error taxonomy for pipeline stages
// and external collaborators. Errors are tagged with sentinel markers so the
// orchestrator and callers can distinguish configuration mistakes from
// transient outages without string matching.
package services
