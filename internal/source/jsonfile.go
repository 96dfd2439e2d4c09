// Package source implements the fetch collaborator over the cleaned-JSON
// handoff file produced by the upstream scraper. The file is a restartable
// sequence: it may repeat records from earlier pulls, which the diff stage
// narrows back down to the delta.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gradetl/internal/records"
	"gradetl/internal/services"
)

// FileSource reads raw admissions records from a JSON array file.
type FileSource struct {
	path string
}

// New constructs a source over the given handoff file.
func New(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch parses the handoff file into raw records. Upstream scrapers have
// shipped several key spellings over time; all are tolerated here so a
// re-scrape never silently drops fields.
func (f *FileSource) Fetch(ctx context.Context) ([]records.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "fetch", "open source", f.path, err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber()

	var rows []map[string]any
	if err := decoder.Decode(&rows); err != nil {
		return nil, services.Wrap(services.ErrValidation, "fetch", "parse source", "expected a JSON array of records", err)
	}

	raws := make([]records.Raw, 0, len(rows))
	for _, row := range rows {
		raws = append(raws, mapRow(row))
	}
	return raws, nil
}

func mapRow(row map[string]any) records.Raw {
	pick := func(keys ...string) string {
		for _, key := range keys {
			if value, ok := row[key]; ok {
				if s := coerce(value); s != "" {
					return s
				}
			}
		}
		return ""
	}

	return records.Raw{
		University:  pick("university", "university_name"),
		Program:     pick("program", "program_name"),
		Degree:      pick("degree", "Degree", "masters_phd"),
		DateAdded:   pick("date_added", "added_on"),
		URL:         pick("url", "entry_url", "applicant_url"),
		Status:      pick("status"),
		Term:        pick("term", "start_term"),
		StudentType: pick("US/International", "us_or_international", "student_type"),
		GRE:         pick("gre", "GRE"),
		GREVerbal:   pick("gre_v", "GRE V"),
		GREAW:       pick("gre_aw", "GRE AW"),
		GPA:         pick("GPA", "gpa"),
		Comments:    pick("comments"),
		ExplicitID:  pick("p_id"),
	}
}

func coerce(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
