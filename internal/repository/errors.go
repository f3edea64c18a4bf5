package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"smsguide/internal/interfaces"
)

const pqUniqueViolation = "23505"

// mapError converts driver errors into the repository error vocabulary.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return interfaces.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return fmt.Errorf("%w: %s", interfaces.ErrDuplicate, pqErr.Constraint)
	}
	return err
}

func expectOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

// submissionReferences counts submissions pointing at a dimension row through
// column. Deletes of referenced rows are refused.
func submissionReferences(ctx context.Context, db *sql.DB, resource, column, id string) error {
	var count int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM submissions WHERE %s = $1`, column)
	if err := db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return fmt.Errorf("failed to check %s references: %w", resource, err)
	}
	if count > 0 {
		return &interfaces.DeletionBlockedError{
			Resource:   resource,
			References: map[string]int64{"submissions": count},
		}
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
