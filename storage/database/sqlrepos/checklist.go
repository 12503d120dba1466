package sqlrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/acadtrack/advising/core"
	"github.com/acadtrack/advising/core/checklist"
)

type checklistRepository struct {
	db *sqlx.DB
}

var _ checklist.Repository = (*checklistRepository)(nil) // interface compliance check

func NewChecklistRepository(db *sqlx.DB) *checklistRepository {
	return &checklistRepository{db: db}
}

const itemColumns = `pc.student_program, pc.course_id, pc.course_type, pc.prescribed_year,
	pc.prescribed_semester, pc.date_last_updated, pc.time_last_updated,
	c.course_description, c.units`

func (repo checklistRepository) CreateItem(ctx context.Context, itm checklist.Item) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO program_checklist (student_program, course_id, course_type, prescribed_year, prescribed_semester)
		VALUES ($1, $2, $3, $4, $5)`,
		itm.Program, itm.CourseID, itm.CourseType, itm.PrescribedYear, itm.PrescribedSemester,
	)
	if err != nil {
		if isPqError(err, pqUniqueViolation) {
			return core.NewConflictError(checklist.ErrDuplicateEntry.Error())
		}
		if isPqError(err, pqFKViolation) {
			return checklist.ErrCourseNotFound
		}
		return errors.Wrap(err, "inserting checklist entry")
	}
	return nil
}

func (repo checklistRepository) QueryItems(ctx context.Context, program string) ([]checklist.Item, error) {
	items := make([]checklist.Item, 0)
	var err error
	if program == "" {
		err = repo.db.SelectContext(ctx, &items, `
			SELECT `+itemColumns+`
			FROM program_checklist pc
			JOIN course c ON c.course_id = pc.course_id
			ORDER BY pc.student_program, pc.course_id`)
	} else {
		err = repo.db.SelectContext(ctx, &items, `
			SELECT `+itemColumns+`
			FROM program_checklist pc
			JOIN course c ON c.course_id = pc.course_id
			WHERE pc.student_program = $1
			ORDER BY pc.course_id`,
			program)
	}
	return items, errors.Wrap(err, "querying checklist")
}

func (repo checklistRepository) GetItem(ctx context.Context, program, courseID string) (checklist.Item, error) {
	var itm checklist.Item
	err := repo.db.GetContext(ctx, &itm, `
		SELECT `+itemColumns+`
		FROM program_checklist pc
		JOIN course c ON c.course_id = pc.course_id
		WHERE pc.student_program = $1 AND pc.course_id = $2`,
		program, courseID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return checklist.Item{}, checklist.ErrNotFound
		}
		return checklist.Item{}, errors.Wrap(err, "fetching checklist entry")
	}
	return itm, nil
}

func (repo checklistRepository) UpdateItem(ctx context.Context, program, courseID string, upd checklist.UpdateItem) error {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE program_checklist
		SET student_program = $1, course_id = $2, course_type = $3, prescribed_year = $4,
		    prescribed_semester = $5, date_last_updated = CURRENT_DATE, time_last_updated = CURRENT_TIME
		WHERE student_program = $6 AND course_id = $7`,
		upd.NewProgram, upd.NewCourseID, upd.CourseType, upd.PrescribedYear, upd.PrescribedSemester,
		program, courseID,
	)
	if err != nil {
		if isPqError(err, pqUniqueViolation) {
			return core.NewConflictError(checklist.ErrDuplicateEntry.Error())
		}
		if isPqError(err, pqFKViolation) {
			return checklist.ErrCourseNotFound
		}
		return errors.Wrap(err, "updating checklist entry")
	}
	if n, err := res.RowsAffected(); err != nil {
		return errors.Wrap(err, "updating checklist entry")
	} else if n == 0 {
		return checklist.ErrNotFound
	}
	return nil
}

func (repo checklistRepository) DeleteItem(ctx context.Context, program, courseID string) error {
	res, err := repo.db.ExecContext(ctx,
		"DELETE FROM program_checklist WHERE student_program = $1 AND course_id = $2", program, courseID)
	if err != nil {
		return errors.Wrap(err, "deleting checklist entry")
	}
	if n, err := res.RowsAffected(); err != nil {
		return errors.Wrap(err, "deleting checklist entry")
	} else if n == 0 {
		return checklist.ErrNotFound
	}
	return nil
}

func (repo checklistRepository) CourseExists(ctx context.Context, courseID string) (bool, error) {
	return courseExists(ctx, repo.db, courseID)
}
