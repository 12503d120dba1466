package sqlrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/acadtrack/advising/core/course"
)

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

const courseColumns = "c.course_id, c.course_description, c.units, c.course_components, c.college, c.department, c.grading_basis"

func (repo courseRepository) CreateCourse(
	ctx context.Context, crs course.Course, prereqs, coreqs []string, placement *course.ChecklistPlacement,
) error {
	return inTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO course (course_id, course_description, units, course_components, college, department, grading_basis)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			crs.ID, crs.Description, crs.Units, crs.Components, crs.College, crs.Department, crs.GradingBasis,
		)
		if err != nil {
			if isPqError(err, pqUniqueViolation) {
				return course.ErrCourseExists
			}
			return errors.Wrap(err, "inserting course")
		}

		if err := insertRequisites(ctx, tx, crs.ID, prereqs, coreqs); err != nil {
			return err
		}

		if placement != nil {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO program_checklist (student_program, course_id, course_type, prescribed_year, prescribed_semester)
				VALUES ($1, $2, $3, $4, $5)`,
				placement.Program, crs.ID, placement.CourseType, placement.PrescribedYear, placement.PrescribedSemester,
			)
			if err != nil {
				return errors.Wrap(err, "inserting checklist placement")
			}
		}
		return nil
	})
}

func insertRequisites(ctx context.Context, tx *sqlx.Tx, id string, prereqs, coreqs []string) error {
	for _, p := range prereqs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO course_prerequisite (course_id, prerequisite_id) VALUES ($1, $2)", id, p,
		); err != nil {
			return errors.Wrapf(err, "inserting prerequisite %s", p)
		}
	}
	for _, c := range coreqs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO course_corequisite (course_id, corequisite_id) VALUES ($1, $2)", id, c,
		); err != nil {
			return errors.Wrapf(err, "inserting corequisite %s", c)
		}
	}
	return nil
}

func (repo courseRepository) GetCourseRow(ctx context.Context, id, program string) (course.Course, error) {
	var crs course.Course
	var err error
	if program == "" {
		err = repo.db.GetContext(ctx, &crs,
			"SELECT "+courseColumns+" FROM course c WHERE c.course_id = $1", id)
	} else {
		err = repo.db.GetContext(ctx, &crs, `
			SELECT `+courseColumns+`, COALESCE(pc.course_type, '') AS course_type
			FROM course c
			LEFT JOIN program_checklist pc ON pc.course_id = c.course_id AND pc.student_program = $2
			WHERE c.course_id = $1`,
			id, program)
	}
	if err != nil {
		if err == sql.ErrNoRows {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "fetching course")
	}
	return crs, nil
}

func (repo courseRepository) QueryCourseRowsByProgram(ctx context.Context, program string) ([]course.Course, error) {
	courses := make([]course.Course, 0)
	err := repo.db.SelectContext(ctx, &courses, `
		SELECT `+courseColumns+`, pc.course_type
		FROM course c
		JOIN program_checklist pc ON pc.course_id = c.course_id
		WHERE pc.student_program = $1
		ORDER BY c.course_id`,
		program)
	return courses, errors.Wrap(err, "querying program courses")
}

func (repo courseRepository) RequisiteIDs(ctx context.Context, id string) (prereqs, coreqs []string, err error) {
	prereqs = make([]string, 0)
	if err = repo.db.SelectContext(ctx, &prereqs,
		"SELECT prerequisite_id FROM course_prerequisite WHERE course_id = $1 ORDER BY prerequisite_id", id,
	); err != nil {
		return nil, nil, errors.Wrap(err, "querying prerequisites")
	}
	coreqs = make([]string, 0)
	if err = repo.db.SelectContext(ctx, &coreqs,
		"SELECT corequisite_id FROM course_corequisite WHERE course_id = $1 ORDER BY corequisite_id", id,
	); err != nil {
		return nil, nil, errors.Wrap(err, "querying corequisites")
	}
	return prereqs, coreqs, nil
}

func (repo courseRepository) CourseExists(ctx context.Context, id string) (bool, error) {
	return courseExists(ctx, repo.db, id)
}

func (repo courseRepository) UpdateCourse(ctx context.Context, currentID string, upd course.UpdateCourse, program string) error {
	return inTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE course SET course_id = $1, course_description = $2, units = $3
			WHERE course_id = $4`,
			upd.NewID, upd.Description, upd.Units, currentID,
		)
		if err != nil {
			if isPqError(err, pqUniqueViolation) {
				return course.ErrCourseExists
			}
			return errors.Wrap(err, "updating course")
		}
		if n, err := res.RowsAffected(); err != nil {
			return errors.Wrap(err, "updating course")
		} else if n == 0 {
			return course.ErrNotFound
		}

		// requisite edge sets are replaced entirely
		if _, err := tx.ExecContext(ctx, "DELETE FROM course_prerequisite WHERE course_id = $1", upd.NewID); err != nil {
			return errors.Wrap(err, "clearing prerequisites")
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM course_corequisite WHERE course_id = $1", upd.NewID); err != nil {
			return errors.Wrap(err, "clearing corequisites")
		}
		if err := insertRequisites(ctx, tx, upd.NewID, upd.Prerequisites, upd.Corequisites); err != nil {
			return err
		}

		if program != "" && upd.CourseType != "" {
			_, err := tx.ExecContext(ctx, `
				UPDATE program_checklist
				SET course_type = $1, date_last_updated = CURRENT_DATE, time_last_updated = CURRENT_TIME
				WHERE student_program = $2 AND course_id = $3`,
				upd.CourseType, program, upd.NewID,
			)
			if err != nil {
				return errors.Wrap(err, "updating checklist course type")
			}
		}
		return nil
	})
}

func (repo courseRepository) DeleteCourse(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, "DELETE FROM course WHERE course_id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting course")
	}
	if n, err := res.RowsAffected(); err != nil {
		return errors.Wrap(err, "deleting course")
	} else if n == 0 {
		return course.ErrNotFound
	}
	return nil
}
