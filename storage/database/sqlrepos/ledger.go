package sqlrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/acadtrack/advising/core/advising"
	"github.com/acadtrack/advising/core/ledger"
)

type ledgerRepository struct {
	db *sqlx.DB
}

var _ ledger.Repository = (*ledgerRepository)(nil) // interface compliance check

func NewLedgerRepository(db *sqlx.DB) *ledgerRepository {
	return &ledgerRepository{db: db}
}

const entryColumns = "student_number, course_id, course_status, grade, date_submitted, time_submitted"

// ApplyBatch records the idempotency key, withdraws the pending rows listed
// for deletion and inserts the new submissions, all in one transaction. Any
// failure rolls the whole batch back, the key included, so a corrected retry
// may reuse it.
func (repo ledgerRepository) ApplyBatch(ctx context.Context, bu ledger.BatchUpdate, now time.Time) error {
	return inTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO advising_batch (idempotency_key, student_number) VALUES ($1, $2)",
			bu.IdempotencyKey, bu.StudentNumber,
		)
		if err != nil {
			if isPqError(err, pqUniqueViolation) {
				return ledger.ErrBatchReplayed
			}
			return errors.Wrap(err, "recording batch")
		}

		for _, courseID := range bu.CoursesToDelete {
			if err := deleteEntry(ctx, tx, bu.StudentNumber, courseID); err != nil {
				return err
			}
		}
		for _, courseID := range bu.CoursesToAdd {
			if err := insertEntry(ctx, tx, bu.StudentNumber, courseID, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// deleteEntry withdraws one pending submission. Only pending rows may be
// withdrawn; a taken row is immutable.
func deleteEntry(ctx context.Context, tx *sqlx.Tx, studentNumber, courseID string) error {
	res, err := tx.ExecContext(ctx, `
		DELETE FROM student_course_list
		WHERE student_number = $1 AND course_id = $2 AND course_status = $3`,
		studentNumber, courseID, ledger.StatusForAdvising,
	)
	if err != nil {
		return errors.Wrapf(err, "deleting entry %s", courseID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "deleting entry %s", courseID)
	}
	if n > 0 {
		return nil
	}

	var status string
	err = tx.GetContext(ctx, &status,
		"SELECT course_status FROM student_course_list WHERE student_number = $1 AND course_id = $2",
		studentNumber, courseID,
	)
	switch {
	case err == sql.ErrNoRows:
		return ledger.ErrEntryNotFound
	case err != nil:
		return errors.Wrapf(err, "checking entry %s", courseID)
	default:
		return ledger.ErrAlreadyTaken
	}
}

// insertEntry submits one course for advising. The existing-row check gives
// the friendly error; the primary key stays the authoritative guard under
// concurrent submissions.
func insertEntry(ctx context.Context, tx *sqlx.Tx, studentNumber, courseID string, now time.Time) error {
	var status string
	err := tx.GetContext(ctx, &status,
		"SELECT course_status FROM student_course_list WHERE student_number = $1 AND course_id = $2",
		studentNumber, courseID,
	)
	switch {
	case err == nil:
		if status == ledger.StatusTaken {
			return ledger.ErrAlreadyTaken
		}
		return ledger.ErrEntryExists
	case err != sql.ErrNoRows:
		return errors.Wrapf(err, "checking entry %s", courseID)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO student_course_list (student_number, course_id, course_status, grade, date_submitted, time_submitted)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		studentNumber, courseID, ledger.StatusForAdvising, ledger.GradeNotAvailable,
		now, now.Format("15:04:05"),
	)
	if err != nil {
		if isPqError(err, pqUniqueViolation) {
			return ledger.ErrEntryExists
		}
		return errors.Wrapf(err, "inserting entry %s", courseID)
	}
	return nil
}

func (repo ledgerRepository) ApproveForStudent(ctx context.Context, studentNumber string) (int64, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE student_course_list SET course_status = $1
		WHERE student_number = $2 AND course_status = $3`,
		ledger.StatusTaken, studentNumber, ledger.StatusForAdvising,
	)
	if err != nil {
		return 0, errors.Wrap(err, "approving course list")
	}
	n, err := res.RowsAffected()
	return n, errors.Wrap(err, "approving course list")
}

func (repo ledgerRepository) QueryEntriesForStudent(ctx context.Context, studentNumber string) ([]ledger.Entry, error) {
	entries := make([]ledger.Entry, 0)
	err := repo.db.SelectContext(ctx, &entries,
		"SELECT "+entryColumns+" FROM student_course_list WHERE student_number = $1 ORDER BY course_id",
		studentNumber,
	)
	return entries, errors.Wrap(err, "querying course list")
}

func (repo ledgerRepository) QueryEntries(ctx context.Context, studentNumber, courseID string) ([]ledger.Entry, error) {
	query := "SELECT " + entryColumns + " FROM student_course_list"
	args := make([]interface{}, 0, 2)
	switch {
	case studentNumber != "" && courseID != "":
		query += " WHERE student_number = $1 AND course_id = $2"
		args = append(args, studentNumber, courseID)
	case studentNumber != "":
		query += " WHERE student_number = $1"
		args = append(args, studentNumber)
	case courseID != "":
		query += " WHERE course_id = $1"
		args = append(args, courseID)
	}
	query += " ORDER BY student_number, course_id"

	entries := make([]ledger.Entry, 0)
	err := repo.db.SelectContext(ctx, &entries, query, args...)
	return entries, errors.Wrap(err, "querying course list")
}

func (repo ledgerRepository) CourseExists(ctx context.Context, courseID string) (bool, error) {
	return courseExists(ctx, repo.db, courseID)
}

type advisingRepository struct {
	db *sqlx.DB
}

var _ advising.Repository = (*advisingRepository)(nil) // interface compliance check

func NewAdvisingRepository(db *sqlx.DB) *advisingRepository {
	return &advisingRepository{db: db}
}

// QueryStudentsForAdvising takes the max over the combined (date, time) pair
// so the reported timestamp always belongs to one actual submission; date and
// time maxed separately could pair the latest date with another row's time.
func (repo advisingRepository) QueryStudentsForAdvising(ctx context.Context, program string) ([]advising.StudentSubmission, error) {
	subs := make([]advising.StudentSubmission, 0)
	err := repo.db.SelectContext(ctx, &subs, `
		SELECT s.student_number, s.s_first_name, s.s_last_name, s.student_program, s.current_standing,
		       max(l.date_submitted + l.time_submitted)::date AS date_submitted,
		       max(l.date_submitted + l.time_submitted)::time AS time_submitted
		FROM student s
		JOIN student_course_list l ON l.student_number = s.student_number
		WHERE s.student_program = $1 AND l.course_status = $2
		GROUP BY s.student_number, s.s_first_name, s.s_last_name, s.student_program, s.current_standing
		ORDER BY max(l.date_submitted + l.time_submitted), s.student_number`,
		program, ledger.StatusForAdvising,
	)
	return subs, errors.Wrap(err, "querying advising queue")
}
