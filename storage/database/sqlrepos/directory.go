package sqlrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/acadtrack/advising/core"
	"github.com/acadtrack/advising/core/directory"
)

type directoryRepository struct {
	db *sqlx.DB
}

var _ directory.Repository = (*directoryRepository)(nil) // interface compliance check

func NewDirectoryRepository(db *sqlx.DB) *directoryRepository {
	return &directoryRepository{db: db}
}

func (repo directoryRepository) CreateStudent(ctx context.Context, s directory.Student) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO student (student_number, s_first_name, s_middle_name, s_last_name,
		                     student_program, adviser_id, current_standing, total_units_taken)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.Number, s.FirstName, s.MiddleName, s.LastName,
		s.Program, s.AdviserID, s.CurrentStanding, s.TotalUnitsTaken,
	)
	if err != nil {
		if isPqError(err, pqUniqueViolation) {
			return core.NewConflictError("a student with this number already exists")
		}
		return errors.Wrap(err, "inserting student")
	}
	return nil
}

func (repo directoryRepository) GetStudent(ctx context.Context, number string) (directory.Student, error) {
	var s directory.Student
	err := repo.db.GetContext(ctx, &s, `
		SELECT student_number, s_first_name, s_middle_name, s_last_name,
		       student_program, adviser_id, current_standing, total_units_taken
		FROM student WHERE student_number = $1`,
		number,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return directory.Student{}, directory.ErrStudentNotFound
		}
		return directory.Student{}, errors.Wrap(err, "fetching student")
	}
	return s, nil
}

func (repo directoryRepository) CreateAdviser(ctx context.Context, a directory.Adviser) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO adviser (adviser_id, a_first_name, a_middle_name, a_last_name, advising_program)
		VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.FirstName, a.MiddleName, a.LastName, a.Program,
	)
	if err != nil {
		if isPqError(err, pqUniqueViolation) {
			return core.NewConflictError("an adviser with this ID already exists")
		}
		return errors.Wrap(err, "inserting adviser")
	}
	return nil
}

func (repo directoryRepository) GetAdviser(ctx context.Context, id string) (directory.Adviser, error) {
	var a directory.Adviser
	err := repo.db.GetContext(ctx, &a, `
		SELECT adviser_id, a_first_name, a_middle_name, a_last_name, advising_program
		FROM adviser WHERE adviser_id = $1`,
		id,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return directory.Adviser{}, directory.ErrAdviserNotFound
		}
		return directory.Adviser{}, errors.Wrap(err, "fetching adviser")
	}
	return a, nil
}
