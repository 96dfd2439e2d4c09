// Command gradetl ingests admissions-result records into SQLite and exposes
// pipeline status, the load report, and an HTTP trigger surface.
package main
