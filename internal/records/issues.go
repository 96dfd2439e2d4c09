package records

// IssueKind categorizes a data-quality rejection. Issues are counted, never
// raised as errors; a record keeps flowing through the pipeline with the
// offending field cleared.
type IssueKind string

const (
	IssueMissingIdentity IssueKind = "missing_identity"
	IssueAlreadyPresent  IssueKind = "already_present"
	IssueDateParse       IssueKind = "date_parse_failure"
	IssueGPAOutOfRange   IssueKind = "gpa_out_of_range"
	IssueGREOutOfRange   IssueKind = "gre_out_of_range"
	IssueGREVOutOfRange  IssueKind = "gre_v_out_of_range"
	IssueGREAWOutOfRange IssueKind = "gre_aw_out_of_range"
)

// Candidate pairs a normalized applicant with the issues observed while
// normalizing it. Identified reports whether a stable identity was resolved;
// unidentified candidates are counted by the loader but never persisted.
type Candidate struct {
	Record     Applicant
	Issues     []IssueKind
	Identified bool
}
