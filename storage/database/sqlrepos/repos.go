// Package sqlrepos implements the domain repositories on PostgreSQL via sqlx.
package sqlrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// postgres error codes we translate into domain errors
const (
	pqUniqueViolation = pq.ErrorCode("23505")
	pqFKViolation     = pq.ErrorCode("23503")
)

func isPqError(err error, code pq.ErrorCode) bool {
	pqErr, ok := errors.Cause(err).(*pq.Error)
	return ok && pqErr.Code == code
}

// inTx runs fn inside a transaction, rolling back on error or panic.
func inTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

func courseExists(ctx context.Context, db *sqlx.DB, id string) (bool, error) {
	var exists bool
	err := db.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM course WHERE course_id = $1)", id)
	return exists, errors.Wrap(err, "checking course")
}
