// Package normalize coerces raw admissions rows into typed, range-validated
// applicant records. It is pure: no I/O, no clock, no randomness. Every
// rejected value becomes absent and is reported as a counted issue, never
// stored as an implausible value.
package normalize

import (
	"strings"

	"gradetl/internal/records"
)

// Record normalizes one raw row. The returned applicant has no identity set;
// identity resolution is a separate concern. Issues report per-field
// discards so the loader can tally them.
func Record(raw records.Raw) (records.Applicant, []records.IssueKind) {
	var issues []records.IssueKind

	app := records.Applicant{
		Program:     ComposeProgram(raw.University, raw.Program),
		Comments:    strings.TrimSpace(raw.Comments),
		URL:         strings.TrimSpace(raw.URL),
		Status:      strings.TrimSpace(raw.Status),
		Term:        Term(raw.Term),
		StudentType: strings.TrimSpace(raw.StudentType),
		Degree:      strings.TrimSpace(raw.Degree),
	}

	if trimmed := strings.TrimSpace(raw.DateAdded); trimmed != "" {
		// Month/day forms borrow the year from the term or status fields.
		if date, ok := parseDate(trimmed, yearHint(raw.Term, raw.Status)); ok {
			app.DateAdded = &date
		} else {
			issues = append(issues, records.IssueDateParse)
		}
	}

	if value, supplied := parseMetric(raw.GPA, gpaRanges); supplied {
		if value != nil {
			app.GPA = value
		} else {
			issues = append(issues, records.IssueGPAOutOfRange)
		}
	}
	if value, supplied := parseMetric(raw.GRE, greRanges); supplied {
		if value != nil {
			app.GRE = value
		} else {
			issues = append(issues, records.IssueGREOutOfRange)
		}
	}
	if value, supplied := parseMetric(raw.GREVerbal, greVRanges); supplied {
		if value != nil {
			app.GREVerbal = value
		} else {
			issues = append(issues, records.IssueGREVOutOfRange)
		}
	}
	if value, supplied := parseMetric(raw.GREAW, greAWRanges); supplied {
		if value != nil {
			app.GREAW = value
		} else {
			issues = append(issues, records.IssueGREAWOutOfRange)
		}
	}

	return app, issues
}

// ComposeProgram joins university and program names as
// "University - Program" when both are present; otherwise it returns
// whichever one is.
func ComposeProgram(university, program string) string {
	u := strings.TrimSpace(university)
	p := strings.TrimSpace(program)
	if u != "" && p != "" {
		return u + " - " + p
	}
	if p != "" {
		return p
	}
	return u
}
