package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gradetl/internal/services"
	"gradetl/internal/source"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "applicant_data.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write source file: %v", err)
	}
	return path
}

func TestFetchParsesRecords(t *testing.T) {
	path := writeSource(t, `[
		{
			"university": "Johns Hopkins University",
			"program": "Computer Science",
			"degree": "PhD",
			"date_added": "2025-07-14",
			"url": "https://www.thegradcafe.com/result/12345",
			"status": "Accepted",
			"term": "f25",
			"US/International": "International",
			"gre": 330,
			"gre_v": 165,
			"gre_aw": 4.5,
			"GPA": 3.76,
			"comments": "so relieved"
		}
	]`)

	raws, err := source.New(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(raws) != 1 {
		t.Fatalf("expected 1 record, got %d", len(raws))
	}
	raw := raws[0]
	if raw.University != "Johns Hopkins University" || raw.Program != "Computer Science" {
		t.Fatalf("names not mapped: %+v", raw)
	}
	if raw.URL != "https://www.thegradcafe.com/result/12345" {
		t.Fatalf("url not mapped: %+v", raw)
	}
	if raw.GRE != "330" || raw.GREVerbal != "165" || raw.GREAW != "4.5" || raw.GPA != "3.76" {
		t.Fatalf("numeric fields must survive as exact strings: %+v", raw)
	}
	if raw.StudentType != "International" || raw.Term != "f25" {
		t.Fatalf("fields not mapped: %+v", raw)
	}
}

func TestFetchToleratesAlternateKeySpellings(t *testing.T) {
	path := writeSource(t, `[
		{
			"university_name": "MIT",
			"program_name": "Physics",
			"masters_phd": "Masters",
			"added_on": "July 14, 2025",
			"entry_url": "/result/777",
			"start_term": "Fall 2025",
			"student_type": "American",
			"GRE V": "158",
			"GRE AW": "4.0",
			"gpa": "3.5",
			"p_id": 777
		}
	]`)

	raws, err := source.New(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	raw := raws[0]
	if raw.University != "MIT" || raw.Program != "Physics" || raw.Degree != "Masters" {
		t.Fatalf("alternate name keys not mapped: %+v", raw)
	}
	if raw.DateAdded != "July 14, 2025" || raw.URL != "/result/777" || raw.Term != "Fall 2025" {
		t.Fatalf("alternate keys not mapped: %+v", raw)
	}
	if raw.StudentType != "American" || raw.GREVerbal != "158" || raw.GREAW != "4.0" || raw.GPA != "3.5" {
		t.Fatalf("alternate keys not mapped: %+v", raw)
	}
	if raw.ExplicitID != "777" {
		t.Fatalf("numeric p_id not coerced: %+v", raw)
	}
}

func TestFetchNullAndMissingFields(t *testing.T) {
	path := writeSource(t, `[{"university": "MIT", "gpa": null}]`)

	raws, err := source.New(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if raws[0].GPA != "" || raws[0].Program != "" {
		t.Fatalf("null and missing fields must map to empty strings: %+v", raws[0])
	}
}

func TestFetchMissingFile(t *testing.T) {
	_, err := source.New(filepath.Join(t.TempDir(), "absent.json")).Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found marker, got %v", err)
	}
}

func TestFetchMalformedFile(t *testing.T) {
	path := writeSource(t, `{"not": "an array"}`)
	_, err := source.New(path).Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error for non-array payload")
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
}

func TestFetchCanceledContext(t *testing.T) {
	path := writeSource(t, `[]`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := source.New(path).Fetch(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}
