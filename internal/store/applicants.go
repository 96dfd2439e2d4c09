package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gradetl/internal/records"
)

const insertApplicantSQL = `INSERT INTO applicants (
    p_id, program, comments, date_added, url, status, term, us_or_international,
    gpa, gre, gre_v, gre_aw, degree, llm_generated_program, llm_generated_university
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (p_id) DO NOTHING`

// InsertBatch writes one batch of applicants in a single transaction using
// insert-if-absent semantics: a row whose identity already exists is a
// silent no-op, not an error. It returns the identities actually inserted.
// On error the whole batch is rolled back.
func (s *Store) InsertBatch(ctx context.Context, batch []records.Applicant) ([]int64, error) {
	ctx = ensureContext(ctx)
	if len(batch) == 0 {
		return nil, nil
	}

	var inserted []int64
	err := retryOnBusy(ctx, func() error {
		inserted = inserted[:0]

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin batch tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		stmt, err := tx.PrepareContext(ctx, insertApplicantSQL)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, app := range batch {
			res, err := stmt.ExecContext(ctx,
				app.ID,
				nullableString(app.Program),
				nullableString(app.Comments),
				nullableDate(app.DateAdded),
				nullableString(app.URL),
				nullableString(app.Status),
				nullableString(app.Term),
				nullableString(app.StudentType),
				nullableFloat(app.GPA),
				nullableFloat(app.GRE),
				nullableFloat(app.GREVerbal),
				nullableFloat(app.GREAW),
				nullableString(app.Degree),
				nullableString(app.LLMProgram),
				nullableString(app.LLMUniversity),
			)
			if err != nil {
				return fmt.Errorf("insert applicant %d: %w", app.ID, err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected for %d: %w", app.ID, err)
			}
			if affected > 0 {
				inserted = append(inserted, app.ID)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit batch: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inserted, nil
}

// Count returns the number of rows in the applicants table.
func (s *Store) Count(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM applicants").Scan(&count); err != nil {
		return 0, fmt.Errorf("count applicants: %w", err)
	}
	return count, nil
}

// KnownIdentities returns the set of identities already persisted.
func (s *Store) KnownIdentities(ctx context.Context) (map[int64]struct{}, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, "SELECT p_id FROM applicants")
	if err != nil {
		return nil, fmt.Errorf("query identities: %w", err)
	}
	defer rows.Close()

	known := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan identity: %w", err)
		}
		known[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate identities: %w", err)
	}
	return known, nil
}

func nullableString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func nullableFloat(value *float64) sql.NullFloat64 {
	if value == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *value, Valid: true}
}

func nullableDate(value *time.Time) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: value.Format("2006-01-02"), Valid: true}
}
