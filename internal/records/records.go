package records

import "time"

// Raw is one admissions result as handed over by the fetch source. Every
// field is free text; an empty string means the source did not supply the
// field. No field is guaranteed present.
type Raw struct {
	University  string
	Program     string
	Degree      string
	DateAdded   string
	URL         string
	Status      string
	Term        string
	StudentType string
	GRE         string
	GREVerbal   string
	GREAW       string
	GPA         string
	Comments    string
	ExplicitID  string
}

// Applicant is the typed, range-validated row persisted to the applicants
// table. ID is the stable identity and sole uniqueness key. Optional fields
// are nil when the raw value was missing or rejected during normalization.
type Applicant struct {
	ID            int64
	Program       string
	Comments      string
	DateAdded     *time.Time
	URL           string
	Status        string
	Term          string
	StudentType   string
	GPA           *float64
	GRE           *float64
	GREVerbal     *float64
	GREAW         *float64
	Degree        string
	LLMProgram    string
	LLMUniversity string
}
