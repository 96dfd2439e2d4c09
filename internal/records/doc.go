// Package records defines the admissions-result data model shared across
// the pipeline: the loosely-typed raw row produced by the fetch source, the
// fully-typed applicant row persisted to the database, and the data-quality
// issue taxonomy tallied by the loader.
package records
